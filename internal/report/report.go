// Package report exports a console session: a YAML snapshot written on
// shutdown, a plain-text summary and markdown renderings of drafts and
// workflow results.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
)

const snapshotHeader = "# devcontent session snapshot. This file is an export and is never read back.\n"

// EncodeSnapshot writes snap as YAML.
func EncodeSnapshot(w io.Writer, snap console.Snapshot) error {
	if _, err := io.WriteString(w, snapshotHeader); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// WriteSnapshot atomically replaces path with the YAML snapshot.
func WriteSnapshot(path string, snap console.Snapshot) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Package clip copies draft text out of the console: native clipboard
// first, then the terminal's OSC52 clipboard, then a temp file.
package clip

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"golang.org/x/term"
)

// Method represents the mechanism used to make content copyable.
type Method string

const (
	MethodNative Method = "native" // OS clipboard
	MethodOSC52  Method = "osc52"  // Terminal clipboard via OSC52 escape sequence
	MethodFile   Method = "file"   // Temp file fallback
)

// ErrNothingToCopy is returned for empty text.
var ErrNothingToCopy = errors.New("nothing to copy")

// Result reports how text was made available.
type Result struct {
	Method   Method
	Target   Target
	Bytes    int
	FilePath string // only set when Method == MethodFile
}

// Conservative default; terminals can have strict OSC52 limits.
const osc52LimitBytes = 100_000

// Copier copies text using the first mechanism that works.
type Copier struct {
	native  func(text string) error
	osc52   func(text string) error
	tempDir string
}

// Option configures a Copier.
type Option func(*Copier)

// WithTempDir sets the directory of the file fallback.
func WithTempDir(dir string) Option {
	return func(c *Copier) { c.tempDir = dir }
}

// WithTerminal sends OSC52 sequences to w when it is a terminal. Bubble Tea
// owns stdout, so callers pass stderr.
func WithTerminal(w io.Writer) Option {
	return func(c *Copier) {
		c.osc52 = func(text string) error { return writeOSC52(w, text) }
	}
}

// New creates a Copier that writes OSC52 to stderr.
func New(opts ...Option) *Copier {
	c := &Copier{
		native:  writeNative,
		tempDir: os.TempDir(),
	}
	c.osc52 = func(text string) error { return writeOSC52(os.Stderr, text) }
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy makes text available. The file fallback only fails when the temp
// directory is unwritable.
func (c *Copier) Copy(target Target, text string) (Result, error) {
	if text == "" {
		return Result{}, fmt.Errorf("%s: %w", target, ErrNothingToCopy)
	}
	res := Result{Target: target, Bytes: len(text)}

	if c.native != nil {
		if err := c.native(text); err == nil {
			res.Method = MethodNative
			return res, nil
		}
	}
	if c.osc52 != nil {
		if err := c.osc52(text); err == nil {
			res.Method = MethodOSC52
			return res, nil
		}
	}

	path := filepath.Join(c.tempDir, fmt.Sprintf("devcontent-%s-%s.txt", target, uuid.NewString()[:8]))
	if err := renameio.WriteFile(path, []byte(text), 0o600); err != nil {
		return Result{}, fmt.Errorf("writing clipboard file: %w", err)
	}
	res.Method = MethodFile
	res.FilePath = path
	return res, nil
}

func writeNative(text string) error {
	if atotto.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return atotto.WriteAll(text)
}

func writeOSC52(w io.Writer, text string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("not a terminal")
	}
	if len(text) > osc52LimitBytes {
		return fmt.Errorf("text too large for OSC52 (%d bytes > %d)", len(text), osc52LimitBytes)
	}

	seq := osc52.New(text).Limit(osc52LimitBytes)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

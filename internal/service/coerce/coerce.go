// Package coerce turns the loosely typed result of an agent invocation into
// one of the console's response shapes.
//
// Agents return either a JSON-encoded string or an already-structured value.
// Malformed text is never an error here: it degrades to a raw-text result
// the console can still display.
package coerce

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// Outcome describes how faithfully a payload matched its shape.
type Outcome string

const (
	// Exact means the payload decoded and carried at least one key section.
	Exact Outcome = "exact"
	// Partial means the payload decoded but every key section was absent.
	Partial Outcome = "partial"
	// Degraded means the payload was not a usable object; only Raw is set.
	Degraded Outcome = "degraded"
)

// Shape is implemented by pointers to the four response types.
type Shape[T any] interface {
	*T
	Normalize()
	HasRequired() bool
	SetRaw(string)
}

// Coerce decodes raw into T. An empty result is the only error.
func Coerce[T any, P Shape[T]](raw json.RawMessage) (T, Outcome, error) {
	var out T
	data := bytes.TrimSpace(raw)
	if isBlank(data) {
		return out, "", core.ErrCoercion(core.CodeEmptyResult, "agent returned an empty result")
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return degrade[T, P](text), Degraded, nil
		}
		text = s
		data = []byte(StripFences(s))
		if len(bytes.TrimSpace(data)) == 0 {
			return out, "", core.ErrCoercion(core.CodeEmptyResult, "agent returned an empty result")
		}
		data = bytes.TrimSpace(data)
	}

	if len(data) == 0 || data[0] != '{' {
		return degrade[T, P](text), Degraded, nil
	}

	obj, ok := unwrapResult(data)
	if !ok {
		return degrade[T, P](text), Degraded, nil
	}
	if err := json.Unmarshal(obj, P(&out)); err != nil {
		return degrade[T, P](text), Degraded, nil
	}

	// Normalize fills placeholders into the checked sections, so the
	// check runs on the decoded value.
	p := P(&out)
	complete := p.HasRequired()
	p.Normalize()
	if !complete {
		p.SetRaw(text)
		return out, Partial, nil
	}
	return out, Exact, nil
}

func degrade[T any, P Shape[T]](text string) T {
	var out T
	p := P(&out)
	p.Normalize()
	p.SetRaw(text)
	return out
}

func isBlank(data []byte) bool {
	return len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`))
}

// unwrapResult strips one {"result": {...}} envelope if the object holds
// nothing else. It reports false when data is not a JSON object.
func unwrapResult(data []byte) ([]byte, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	if inner, ok := fields["result"]; ok && len(fields) == 1 {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return inner, true
		}
		if len(inner) > 0 && inner[0] == '"' {
			var s string
			if err := json.Unmarshal(inner, &s); err == nil {
				s = strings.TrimSpace(StripFences(s))
				if strings.HasPrefix(s, "{") && json.Valid([]byte(s)) {
					return []byte(s), true
				}
			}
		}
	}
	return data, true
}

// StripFences removes a surrounding markdown code fence such as ```json.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		// Drop the info string (json, JSON, ...).
		t = t[nl+1:]
	} else {
		t = strings.TrimLeft(t, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// Value coerces raw into the response shape of kind and returns it as the
// runner's untyped result.
func Value(kind core.WorkflowKind, raw json.RawMessage) (any, Outcome, error) {
	switch kind {
	case core.KindGenerate:
		return unify(Coerce[core.ContentArtifact](raw))
	case core.KindDeliver:
		return unify(Coerce[core.DeliveryResult](raw))
	case core.KindAnalyze:
		return unify(Coerce[core.OptimizationResult](raw))
	case core.KindScan:
		return unify(Coerce[core.TrendScanResult](raw))
	default:
		return nil, "", core.ErrValidation(core.CodeInvalidKind, "unknown workflow kind "+kind.String())
	}
}

func unify[T any](v T, o Outcome, err error) (any, Outcome, error) {
	if err != nil {
		return nil, "", err
	}
	return v, o, nil
}

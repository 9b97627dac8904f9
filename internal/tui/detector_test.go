package tui

import "testing"

func newTestDetector(env map[string]string, tty bool) *Detector {
	d := NewDetector()
	d.getenv = func(k string) string { return env[k] }
	d.isTTY = func() bool { return tty }
	return d
}

func TestOutputMode_String(t *testing.T) {
	t.Parallel()
	tests := map[OutputMode]string{ModeTUI: "tui", ModePlain: "plain", ModeJSON: "json", OutputMode(999): "unknown"}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", mode, got, want)
		}
	}
}

func TestParseOutputMode(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]OutputMode{"plain": ModePlain, "json": ModeJSON, "tui": ModeTUI, "bogus": ModeTUI} {
		if got := ParseOutputMode(in); got != want {
			t.Errorf("ParseOutputMode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want OutputMode
	}{
		{"interactive", nil, true, ModeTUI},
		{"piped", nil, false, ModePlain},
		{"ci", map[string]string{"CI": "true"}, true, ModePlain},
		{"github actions", map[string]string{"GITHUB_ACTIONS": "true"}, true, ModePlain},
		{"env json", map[string]string{"DEVCONTENT_OUTPUT": "json"}, true, ModeJSON},
		{"env plain", map[string]string{"DEVCONTENT_OUTPUT": "plain"}, true, ModePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newTestDetector(tt.env, tt.tty).Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetector_ForceMode(t *testing.T) {
	t.Parallel()
	d := newTestDetector(map[string]string{"CI": "1"}, false).ForceMode(ModeJSON)
	if got := d.Detect(); got != ModeJSON {
		t.Errorf("Detect() = %v", got)
	}
}

func TestDetector_ShouldUseColor(t *testing.T) {
	t.Parallel()
	if !newTestDetector(nil, true).ShouldUseColor() {
		t.Error("tty should use color")
	}
	if newTestDetector(nil, false).ShouldUseColor() {
		t.Error("non-tty should not use color")
	}
	if newTestDetector(map[string]string{"NO_COLOR": "1"}, true).ShouldUseColor() {
		t.Error("NO_COLOR should disable color")
	}
	if newTestDetector(map[string]string{"TERM": "dumb"}, true).ShouldUseColor() {
		t.Error("dumb terminal should not use color")
	}
	if newTestDetector(nil, true).NoColor(true).ShouldUseColor() {
		t.Error("NoColor should disable color")
	}
}

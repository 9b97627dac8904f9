package clip

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

var errFake = errors.New("unavailable")

func newStubCopier(t *testing.T, native, osc error) (*Copier, *[]string) {
	t.Helper()
	var calls []string
	c := New(WithTempDir(t.TempDir()))
	c.native = func(string) error {
		calls = append(calls, "native")
		return native
	}
	c.osc52 = func(string) error {
		calls = append(calls, "osc52")
		return osc
	}
	return c, &calls
}

func TestCopy_NativeFirst(t *testing.T) {
	c, calls := newStubCopier(t, nil, nil)
	got, err := c.Copy(TargetTwitter, "hello")
	if err != nil {
		t.Fatalf("Copy returned error: %v", err)
	}
	if got.Method != MethodNative {
		t.Fatalf("Method=%q, want %q", got.Method, MethodNative)
	}
	if got.Bytes != 5 || got.Target != TargetTwitter {
		t.Errorf("Result=%+v", got)
	}
	if len(*calls) != 1 {
		t.Errorf("calls=%v, want native only", *calls)
	}
}

func TestCopy_OSC52Fallback(t *testing.T) {
	c, _ := newStubCopier(t, errFake, nil)
	got, err := c.Copy(TargetEmail, "hello")
	if err != nil {
		t.Fatalf("Copy returned error: %v", err)
	}
	if got.Method != MethodOSC52 {
		t.Fatalf("Method=%q, want %q", got.Method, MethodOSC52)
	}
}

func TestCopy_FileFallback(t *testing.T) {
	c, _ := newStubCopier(t, errFake, errFake)
	got, err := c.Copy(TargetBlog, "# Title\n\nBody")
	if err != nil {
		t.Fatalf("Copy returned error: %v", err)
	}
	if got.Method != MethodFile {
		t.Fatalf("Method=%q, want %q", got.Method, MethodFile)
	}
	if !strings.Contains(got.FilePath, "devcontent-blog-") {
		t.Errorf("FilePath=%q", got.FilePath)
	}
	data, err := os.ReadFile(got.FilePath)
	if err != nil {
		t.Fatalf("read fallback file: %v", err)
	}
	if string(data) != "# Title\n\nBody" {
		t.Errorf("file content=%q", data)
	}
}

func TestCopy_Empty(t *testing.T) {
	c, calls := newStubCopier(t, nil, nil)
	if _, err := c.Copy(TargetEmail, ""); !errors.Is(err, ErrNothingToCopy) {
		t.Fatalf("err=%v, want ErrNothingToCopy", err)
	}
	if len(*calls) != 0 {
		t.Errorf("calls=%v, want none", *calls)
	}
}

func TestWriteOSC52_RequiresTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOSC52(&buf, "hello"); err == nil {
		t.Fatal("expected error for non-terminal writer")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q to non-terminal", buf.String())
	}
}

func TestTarget_Text(t *testing.T) {
	set := drafts.Set{
		Email:  drafts.EditableEmail{Subject: "Release 2.0", Body: "Hi all"},
		Social: drafts.EditableSocial{Twitter: "tweet", LinkedIn: "post", DevtoTitle: "", DevtoBody: "devto body"},
		Blog:   drafts.EditableBlog{Title: "Inside 2.0", Body: "Details."},
	}
	tests := []struct {
		target Target
		want   string
	}{
		{TargetEmail, "Release 2.0\n\nHi all"},
		{TargetTwitter, "tweet"},
		{TargetLinkedIn, "post"},
		{TargetDevto, "devto body"},
		{TargetBlog, "# Inside 2.0\n\nDetails."},
	}
	for _, tt := range tests {
		if got := tt.target.Text(set); got != tt.want {
			t.Errorf("%s.Text() = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestParseTarget(t *testing.T) {
	if got, err := ParseTarget(" LinkedIn "); err != nil || got != TargetLinkedIn {
		t.Errorf("ParseTarget = %q, %v", got, err)
	}
	if _, err := ParseTarget("fax"); err == nil {
		t.Error("expected error for unknown target")
	}
}

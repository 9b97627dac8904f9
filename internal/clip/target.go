package clip

import (
	"fmt"
	"strings"

	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

// Target names a copyable piece of the drafts.
type Target string

const (
	TargetEmail    Target = "email"
	TargetTwitter  Target = "twitter"
	TargetLinkedIn Target = "linkedin"
	TargetDevto    Target = "devto"
	TargetBlog     Target = "blog"
)

// Targets lists every target.
func Targets() []Target {
	return []Target{TargetEmail, TargetTwitter, TargetLinkedIn, TargetDevto, TargetBlog}
}

// ParseTarget converts a string into a Target.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown copy target %q", s)
}

// Text extracts the target's text from set. The email copy is subject plus
// body; dev.to and blog copies lead with their title as a heading.
func (t Target) Text(set drafts.Set) string {
	switch t {
	case TargetEmail:
		return joinNonEmpty("\n\n", set.Email.Subject, set.Email.Body)
	case TargetTwitter:
		return set.Social.Twitter
	case TargetLinkedIn:
		return set.Social.LinkedIn
	case TargetDevto:
		return joinNonEmpty("\n\n", heading(set.Social.DevtoTitle), set.Social.DevtoBody)
	case TargetBlog:
		return joinNonEmpty("\n\n", heading(set.Blog.Title), set.Blog.Body)
	}
	return ""
}

// CopyDraft copies the target's text from set.
func (c *Copier) CopyDraft(set drafts.Set, target Target) (Result, error) {
	return c.Copy(target, target.Text(set))
}

func heading(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	return "# " + title
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NotAvailable is the placeholder rendered for an absent result field.
const NotAvailable = "N/A"

// EmailDraft is the email sub-document of a ContentArtifact.
type EmailDraft struct {
	Subject      string `json:"subject_line" yaml:"subject_line"`
	Preview      string `json:"preview_text" yaml:"preview_text"`
	Body         string `json:"body" yaml:"body"`
	CallToAction string `json:"cta" yaml:"cta"`
}

// IsZero reports whether every field is empty.
func (e EmailDraft) IsZero() bool {
	return e == EmailDraft{}
}

// SocialDraft is the social sub-document of a ContentArtifact.
type SocialDraft struct {
	Twitter    string `json:"twitter" yaml:"twitter"`
	LinkedIn   string `json:"linkedin" yaml:"linkedin"`
	DevtoTitle string `json:"devto_title" yaml:"devto_title"`
	DevtoBody  string `json:"devto_body" yaml:"devto_body"`
}

// IsZero reports whether every field is empty.
func (s SocialDraft) IsZero() bool {
	return s == SocialDraft{}
}

// BlogDraft is the blog sub-document of a ContentArtifact.
type BlogDraft struct {
	Title           string   `json:"title" yaml:"title"`
	MetaDescription string   `json:"meta_description" yaml:"meta_description"`
	Body            string   `json:"body" yaml:"body"`
	Tags            []string `json:"tags" yaml:"tags"`
}

// IsZero reports whether every field is empty.
func (b BlogDraft) IsZero() bool {
	return b.Title == "" && b.MetaDescription == "" && b.Body == "" && len(b.Tags) == 0
}

// ContentArtifact is the output of a generate workflow. It is never mutated
// after the runner stores it; editable copies live in the draft store.
type ContentArtifact struct {
	ExecutiveSummary     string      `json:"executive_summary" yaml:"executive_summary"`
	KeyThemes            []string    `json:"key_themes" yaml:"key_themes"`
	Email                EmailDraft  `json:"email_content" yaml:"email_content"`
	Social               SocialDraft `json:"social_content" yaml:"social_content"`
	Blog                 BlogDraft   `json:"blog_content" yaml:"blog_content"`
	GitHubContextSummary string      `json:"github_context_summary" yaml:"github_context_summary"`
	Raw                  string      `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Normalize replaces absent collections with empty ones. Text fields stay as
// they are because they seed editable drafts.
func (a *ContentArtifact) Normalize() {
	if a.KeyThemes == nil {
		a.KeyThemes = []string{}
	}
	if a.Blog.Tags == nil {
		a.Blog.Tags = []string{}
	}
}

// HasRequired reports whether at least one sub-document is present.
func (a *ContentArtifact) HasRequired() bool {
	return !a.Email.IsZero() || !a.Social.IsZero() || !a.Blog.IsZero()
}

// SetRaw records the original payload text for degraded display.
func (a *ContentArtifact) SetRaw(raw string) { a.Raw = raw }

// CampaignTitle resolves the ledger title: blog title, then email subject,
// then a fixed fallback.
func (a ContentArtifact) CampaignTitle() string {
	if t := strings.TrimSpace(a.Blog.Title); t != "" {
		return a.Blog.Title
	}
	if s := strings.TrimSpace(a.Email.Subject); s != "" {
		return a.Email.Subject
	}
	return DefaultCampaignTitle
}

// DefaultCampaignTitle is used when an artifact carries neither a blog title
// nor an email subject.
const DefaultCampaignTitle = "Content Campaign"

// FlexString decodes a JSON string, number or boolean into text. Agents are
// inconsistent about quoting counters and scores.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexString(num.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatBool(b))
	return nil
}

func (f FlexString) String() string { return string(f) }

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func flexOrNA(s FlexString) FlexString {
	return FlexString(orNA(string(s)))
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

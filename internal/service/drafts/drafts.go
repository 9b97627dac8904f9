// Package drafts holds the operator-editable copies of generated content.
//
// The store is filled once per successful generation and afterwards only
// changes through operator edits. It never reads back from the artifact.
package drafts

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// TwitterLimit is the advisory length of a tweet, in characters.
const TwitterLimit = 280

// Bucket names.
const (
	BucketEmail  = "email"
	BucketSocial = "social"
	BucketBlog   = "blog"
)

// Buckets lists the bucket names in display order.
func Buckets() []string {
	return []string{BucketEmail, BucketSocial, BucketBlog}
}

// EditableEmail is the email draft as the operator edits it.
type EditableEmail struct {
	Subject      string `json:"subject" yaml:"subject"`
	Preview      string `json:"preview" yaml:"preview"`
	Body         string `json:"body" yaml:"body"`
	CallToAction string `json:"cta" yaml:"cta"`
}

// EditableSocial is the social draft as the operator edits it.
type EditableSocial struct {
	Twitter    string `json:"twitter" yaml:"twitter"`
	LinkedIn   string `json:"linkedin" yaml:"linkedin"`
	DevtoTitle string `json:"devto_title" yaml:"devto_title"`
	DevtoBody  string `json:"devto_body" yaml:"devto_body"`
}

// TwitterLength returns the tweet length in characters.
func (s EditableSocial) TwitterLength() int {
	return utf8.RuneCountInString(s.Twitter)
}

// OverTwitterLimit reports whether the tweet exceeds TwitterLimit. It is
// advisory only.
func (s EditableSocial) OverTwitterLimit() bool {
	return s.TwitterLength() > TwitterLimit
}

// EditableBlog is the blog draft as the operator edits it. Tags are a
// single comma-separated string.
type EditableBlog struct {
	Title           string `json:"title" yaml:"title"`
	MetaDescription string `json:"meta_description" yaml:"meta_description"`
	Body            string `json:"body" yaml:"body"`
	Tags            string `json:"tags" yaml:"tags"`
}

// TagList splits Tags back into an ordered list.
func (b EditableBlog) TagList() []string {
	return SplitTags(b.Tags)
}

// Set is the full content of all three buckets.
type Set struct {
	Email  EditableEmail  `json:"email" yaml:"email"`
	Social EditableSocial `json:"social" yaml:"social"`
	Blog   EditableBlog   `json:"blog" yaml:"blog"`
}

// FromArtifact projects an artifact into editable drafts.
func FromArtifact(a core.ContentArtifact) Set {
	return Set{
		Email: EditableEmail{
			Subject:      a.Email.Subject,
			Preview:      a.Email.Preview,
			Body:         a.Email.Body,
			CallToAction: a.Email.CallToAction,
		},
		Social: EditableSocial{
			Twitter:    a.Social.Twitter,
			LinkedIn:   a.Social.LinkedIn,
			DevtoTitle: a.Social.DevtoTitle,
			DevtoBody:  a.Social.DevtoBody,
		},
		Blog: EditableBlog{
			Title:           a.Blog.Title,
			MetaDescription: a.Blog.MetaDescription,
			Body:            a.Blog.Body,
			Tags:            JoinTags(a.Blog.Tags),
		},
	}
}

// JoinTags renders tags for editing.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// SplitTags parses an edited tag string: entries are trimmed and empty
// entries dropped, order is kept.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Publisher is the subset of the event bus the store needs.
type Publisher interface {
	Publish(event events.Event)
}

// Store holds the current draft set.
type Store struct {
	mu     sync.RWMutex
	set    Set
	events Publisher
}

// NewStore creates an empty store. pub may be nil.
func NewStore(pub Publisher) *Store {
	return &Store{events: pub}
}

// OnGenerateSucceeded replaces every bucket from a fresh artifact.
func (s *Store) OnGenerateSucceeded(a core.ContentArtifact) {
	s.Replace(FromArtifact(a))
}

// Replace sets every bucket at once.
func (s *Store) Replace(set Set) {
	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	s.publish(events.NewDraftsReplacedEvent())
}

// Reset empties every bucket.
func (s *Store) Reset() {
	s.Replace(Set{})
}

// Email returns the email bucket.
func (s *Store) Email() EditableEmail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Email
}

// Social returns the social bucket.
func (s *Store) Social() EditableSocial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Social
}

// Blog returns the blog bucket.
func (s *Store) Blog() EditableBlog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Blog
}

// Snapshot returns every bucket.
func (s *Store) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// UpdateEmail records an operator edit of the email bucket.
func (s *Store) UpdateEmail(e EditableEmail) {
	s.mu.Lock()
	s.set.Email = e
	s.mu.Unlock()
	s.publish(events.NewDraftUpdatedEvent(BucketEmail))
}

// UpdateSocial records an operator edit of the social bucket.
func (s *Store) UpdateSocial(v EditableSocial) {
	s.mu.Lock()
	s.set.Social = v
	s.mu.Unlock()
	s.publish(events.NewDraftUpdatedEvent(BucketSocial))
}

// UpdateBlog records an operator edit of the blog bucket.
func (s *Store) UpdateBlog(b EditableBlog) {
	s.mu.Lock()
	s.set.Blog = b
	s.mu.Unlock()
	s.publish(events.NewDraftUpdatedEvent(BucketBlog))
}

func (s *Store) publish(ev events.Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}

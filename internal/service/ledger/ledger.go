// Package ledger keeps the session's campaign history, most recent first.
package ledger

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// DateLayout is the format of CampaignRecord.CreatedDate.
const DateLayout = "2006-01-02"

// Publisher is the subset of the event bus the ledger needs.
type Publisher interface {
	Publish(event events.Event)
}

// Ledger is an in-memory list of campaign records. Index 0 is the newest.
type Ledger struct {
	mu      sync.RWMutex
	records []core.CampaignRecord
	seq     int64
	now     func() time.Time
	events  Publisher
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for creation dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates an empty ledger. pub may be nil.
func New(pub Publisher, opts ...Option) *Ledger {
	l := &Ledger{now: time.Now, events: pub}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnGenerateSucceeded prepends a Draft record for a fresh artifact.
func (l *Ledger) OnGenerateSucceeded(a core.ContentArtifact, repo string) core.CampaignRecord {
	l.mu.Lock()
	l.seq++
	rec := core.CampaignRecord{
		ID:          strconv.FormatInt(l.seq, 10),
		Title:       a.CampaignTitle(),
		CreatedDate: l.now().Format(DateLayout),
		Status:      core.CampaignDraft,
		SourceRepo:  strings.TrimSpace(repo),
		Formats:     core.DefaultFormats(),
	}
	l.records = append([]core.CampaignRecord{rec}, l.records...)
	l.mu.Unlock()

	l.publish(events.NewCampaignCreatedEvent(rec))
	return rec.Clone()
}

// OnDeliverSucceeded marks the newest record Sent. It reports false when
// the ledger is empty.
func (l *Ledger) OnDeliverSucceeded() (core.CampaignRecord, bool) {
	l.mu.Lock()
	if len(l.records) == 0 {
		l.mu.Unlock()
		return core.CampaignRecord{}, false
	}
	l.records[0].Status = core.CampaignSent
	rec := l.records[0].Clone()
	l.mu.Unlock()

	l.publish(events.NewCampaignUpdatedEvent(rec))
	return rec, true
}

// List returns copies of all records, newest first.
func (l *Ledger) List() []core.CampaignRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.CampaignRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Get returns the record with id.
func (l *Ledger) Get(id string) (core.CampaignRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return core.CampaignRecord{}, core.ErrNotFound("campaign", id)
}

// Replace swaps in a full record list, newest first. New IDs continue after
// the highest numeric ID seen so far.
func (l *Ledger) Replace(records []core.CampaignRecord) {
	l.mu.Lock()
	l.records = make([]core.CampaignRecord, len(records))
	for i, r := range records {
		l.records[i] = r.Clone()
		if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n > l.seq {
			l.seq = n
		}
	}
	l.mu.Unlock()
}

// Reset removes every record. The ID sequence keeps counting so IDs are
// never reused within a session.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.records = nil
	l.mu.Unlock()
}

// Search returns the records whose title or repository fuzzily match
// query, best match first. An empty query returns List().
func (l *Ledger) Search(query string) []core.CampaignRecord {
	query = strings.TrimSpace(query)
	all := l.List()
	if query == "" {
		return all
	}
	matches := fuzzy.FindFrom(query, searchSource(all))
	out := make([]core.CampaignRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

// searchSource adapts records to fuzzy.Source.
type searchSource []core.CampaignRecord

func (s searchSource) String(i int) string { return s[i].Title + " " + s[i].SourceRepo }
func (s searchSource) Len() int            { return len(s) }

func (l *Ledger) publish(ev events.Event) {
	if l.events != nil {
		l.events.Publish(ev)
	}
}

package events

import "github.com/hugo-lorenzo-mato/devcontent/internal/core"

// Event type constants for session-wide console events.
const (
	TypeCampaignCreated = "campaign_created"
	TypeCampaignUpdated = "campaign_updated"
	TypeViewChanged     = "view_changed"
	TypeDraftsReplaced  = "drafts_replaced"
	TypeDraftUpdated    = "draft_updated"
	TypeSampleMode      = "sample_mode"
	TypeFocusSeeded     = "focus_seeded"
)

// CampaignEvent reports a ledger change.
type CampaignEvent struct {
	BaseEvent
	Campaign core.CampaignRecord `json:"campaign"`
}

// NewCampaignCreatedEvent creates a new campaign created event.
func NewCampaignCreatedEvent(record core.CampaignRecord) CampaignEvent {
	return CampaignEvent{
		BaseEvent: NewBaseEvent(TypeCampaignCreated, ""),
		Campaign:  record.Clone(),
	}
}

// NewCampaignUpdatedEvent creates a new campaign updated event.
func NewCampaignUpdatedEvent(record core.CampaignRecord) CampaignEvent {
	return CampaignEvent{
		BaseEvent: NewBaseEvent(TypeCampaignUpdated, ""),
		Campaign:  record.Clone(),
	}
}

// ViewChangedEvent reports a navigation change.
type ViewChangedEvent struct {
	BaseEvent
	From core.View `json:"from"`
	To   core.View `json:"to"`
}

// NewViewChangedEvent creates a new view changed event.
func NewViewChangedEvent(from, to core.View) ViewChangedEvent {
	return ViewChangedEvent{
		BaseEvent: NewBaseEvent(TypeViewChanged, ""),
		From:      from,
		To:        to,
	}
}

// DraftEvent reports a change to the editable draft buckets. Bucket is
// empty when every bucket was replaced.
type DraftEvent struct {
	BaseEvent
	Bucket string `json:"bucket,omitempty"`
}

// NewDraftsReplacedEvent creates a new drafts replaced event.
func NewDraftsReplacedEvent() DraftEvent {
	return DraftEvent{BaseEvent: NewBaseEvent(TypeDraftsReplaced, string(core.KindGenerate))}
}

// NewDraftUpdatedEvent creates a new draft updated event.
func NewDraftUpdatedEvent(bucket string) DraftEvent {
	return DraftEvent{
		BaseEvent: NewBaseEvent(TypeDraftUpdated, ""),
		Bucket:    bucket,
	}
}

// SampleModeEvent reports a sample-data toggle.
type SampleModeEvent struct {
	BaseEvent
	Enabled bool `json:"enabled"`
}

// NewSampleModeEvent creates a new sample mode event.
func NewSampleModeEvent(enabled bool) SampleModeEvent {
	return SampleModeEvent{
		BaseEvent: NewBaseEvent(TypeSampleMode, ""),
		Enabled:   enabled,
	}
}

// FocusSeededEvent reports a trend loaded into the content focus.
type FocusSeededEvent struct {
	BaseEvent
	Focus string `json:"focus"`
}

// NewFocusSeededEvent creates a new focus seeded event.
func NewFocusSeededEvent(focus string) FocusSeededEvent {
	return FocusSeededEvent{
		BaseEvent: NewBaseEvent(TypeFocusSeeded, string(core.KindGenerate)),
		Focus:     focus,
	}
}

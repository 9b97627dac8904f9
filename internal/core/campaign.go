package core

// CampaignStatus is the delivery status of a campaign record.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Draft"
	CampaignScheduled CampaignStatus = "Scheduled"
	CampaignSent      CampaignStatus = "Sent"
)

// CampaignRecord is one entry of the session's campaign history.
type CampaignRecord struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	CreatedDate string         `json:"date" yaml:"date"`
	Status      CampaignStatus `json:"status" yaml:"status"`
	SourceRepo  string         `json:"repo" yaml:"repo"`
	Formats     []string       `json:"formats" yaml:"formats"`
}

// Clone returns a copy that shares no slices with r.
func (r CampaignRecord) Clone() CampaignRecord {
	out := r
	if r.Formats != nil {
		out.Formats = append([]string(nil), r.Formats...)
	}
	return out
}

// DefaultFormats lists the formats produced by one generate run.
func DefaultFormats() []string {
	return []string{"Email", "Social", "Blog"}
}

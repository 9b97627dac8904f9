package core

import (
	"fmt"
	"strings"
)

// WorkflowInput is the operator-supplied payload of one workflow start.
type WorkflowInput interface {
	// Kind returns the workflow this input belongs to.
	Kind() WorkflowKind

	// Validate checks the kind-specific precondition. It returns a
	// validation DomainError whose message is shown to the operator.
	Validate() error

	// Message renders the task description sent to the agent.
	Message() string
}

// GenerateInput starts a generate workflow.
type GenerateInput struct {
	Repo  string `json:"repo" yaml:"repo"`
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

func (GenerateInput) Kind() WorkflowKind { return KindGenerate }

func (in GenerateInput) Validate() error {
	if strings.TrimSpace(in.Repo) == "" {
		return ErrValidation(CodeMissingRepository, StatusText(KindGenerate).Validation)
	}
	return nil
}

func (in GenerateInput) Message() string {
	repo := strings.TrimSpace(in.Repo)
	if focus := strings.TrimSpace(in.Focus); focus != "" {
		return fmt.Sprintf("Generate developer marketing content for the GitHub repository: %s. Focus on: %s", repo, focus)
	}
	return fmt.Sprintf("Generate developer marketing content for the GitHub repository: %s. Cover recent activity including releases, commits, and PRs.", repo)
}

// DefaultCalendar is used when a delivery names no calendar.
const DefaultCalendar = "primary"

// DeliverInput starts a deliver workflow. Subject and Body are copied from
// the email draft at start time.
type DeliverInput struct {
	Recipient     string `json:"recipient" yaml:"recipient"`
	Subject       string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body          string `json:"body,omitempty" yaml:"body,omitempty"`
	EventTitle    string `json:"event_title,omitempty" yaml:"event_title,omitempty"`
	EventDateTime string `json:"event_datetime,omitempty" yaml:"event_datetime,omitempty"`
	Calendar      string `json:"calendar,omitempty" yaml:"calendar,omitempty"`
}

func (DeliverInput) Kind() WorkflowKind { return KindDeliver }

func (in DeliverInput) Validate() error {
	if strings.TrimSpace(in.Recipient) == "" {
		return ErrValidation(CodeMissingRecipient, StatusText(KindDeliver).Validation)
	}
	return nil
}

// WantsCalendarEvent reports whether both event title and time are present.
func (in DeliverInput) WantsCalendarEvent() bool {
	return strings.TrimSpace(in.EventTitle) != "" && strings.TrimSpace(in.EventDateTime) != ""
}

func (in DeliverInput) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Send the following email via Gmail:\n- To: %s\n- Subject: %s\n- Body: %s\n\n",
		strings.TrimSpace(in.Recipient), in.Subject, in.Body)
	if in.WantsCalendarEvent() {
		calendar := strings.TrimSpace(in.Calendar)
		if calendar == "" {
			calendar = DefaultCalendar
		}
		fmt.Fprintf(&b, "Also create a Google Calendar event:\n- Title: %s\n- Date/Time: %s\n- Calendar: %s",
			strings.TrimSpace(in.EventTitle), strings.TrimSpace(in.EventDateTime), calendar)
	}
	return b.String()
}

// AnalyzeInput starts an analyze workflow. Metrics are free text as typed
// by the operator.
type AnalyzeInput struct {
	CampaignName string `json:"campaign_name" yaml:"campaign_name"`
	OpenRate     string `json:"open_rate,omitempty" yaml:"open_rate,omitempty"`
	ClickRate    string `json:"click_rate,omitempty" yaml:"click_rate,omitempty"`
	Shares       string `json:"shares,omitempty" yaml:"shares,omitempty"`
	Conversions  string `json:"conversions,omitempty" yaml:"conversions,omitempty"`
}

func (AnalyzeInput) Kind() WorkflowKind { return KindAnalyze }

func (in AnalyzeInput) Validate() error {
	if strings.TrimSpace(in.CampaignName) == "" {
		return ErrValidation(CodeMissingCampaignName, StatusText(KindAnalyze).Validation)
	}
	return nil
}

func (in AnalyzeInput) Message() string {
	return fmt.Sprintf("Analyze the engagement metrics for the campaign \"%s\": Open Rate: %s%%, Click Rate: %s%%, Total Shares: %s, Conversions: %s. "+
		"Provide performance analysis, A/B testing suggestions, engagement predictions, and optimization strategies.",
		in.CampaignName, metricOrNA(in.OpenRate), metricOrNA(in.ClickRate), metricOrNA(in.Shares), metricOrNA(in.Conversions))
}

func metricOrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// ScanInput starts a scan workflow. Domain is optional.
type ScanInput struct {
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

func (ScanInput) Kind() WorkflowKind { return KindScan }

func (ScanInput) Validate() error { return nil }

func (in ScanInput) Message() string {
	if domain := strings.TrimSpace(in.Domain); domain != "" {
		return fmt.Sprintf("Find the latest developer trends and trending topics in the %s space. "+
			"Include trending GitHub repos, hot topics from Hacker News/Reddit/Twitter, emerging technologies, and content recommendations.", domain)
	}
	return "Find the latest developer trends across all areas. Include trending GitHub repos this week, hot topics from Hacker News/Reddit/Twitter, " +
		"emerging technologies, major industry movements, and content recommendations for developer advocates."
}

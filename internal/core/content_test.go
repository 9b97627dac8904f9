package core

import (
	"encoding/json"
	"testing"
)

func TestContentArtifact_CampaignTitle(t *testing.T) {
	a := ContentArtifact{Blog: BlogDraft{Title: "Blog"}, Email: EmailDraft{Subject: "Mail"}}
	if a.CampaignTitle() != "Blog" {
		t.Fatalf("expected blog title first")
	}
	a.Blog.Title = " "
	if a.CampaignTitle() != "Mail" {
		t.Fatalf("expected email subject second")
	}
	a.Email.Subject = ""
	if a.CampaignTitle() != DefaultCampaignTitle {
		t.Fatalf("expected fallback title")
	}
}

func TestContentArtifact_HasRequired(t *testing.T) {
	var a ContentArtifact
	if a.HasRequired() {
		t.Fatalf("empty artifact has no sub-document")
	}
	a.Social.Twitter = "hi"
	if !a.HasRequired() {
		t.Fatalf("social alone is enough")
	}
}

func TestFlexString_Unmarshal(t *testing.T) {
	var out struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12","b":847,"c":true,"d":null}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.A != "12" || out.B != "847" || out.C != "true" || out.D != "" {
		t.Fatalf("unexpected values %+v", out)
	}
	if err := json.Unmarshal([]byte(`{"a":[1]}`), &out); err == nil {
		t.Fatalf("expected error for array")
	}
}

func TestResultNormalize_Placeholders(t *testing.T) {
	d := DeliveryResult{CalendarEvents: []CalendarEvent{{EventTitle: "x"}}}
	d.Normalize()
	if d.EmailDelivery.Status != NotAvailable || d.CalendarEvents[0].Calendar != NotAvailable {
		t.Fatalf("expected N/A placeholders: %+v", d)
	}

	o := OptimizationResult{OptimizationStrategies: []OptimizationStrategy{{Strategy: "s"}}}
	o.Normalize()
	if o.OptimizationStrategies[0].Priority != "P3" {
		t.Fatalf("expected default priority")
	}
	if o.ABTestingSuggestions == nil || o.PerformanceAnalysis.TopPerformers == nil {
		t.Fatalf("expected empty slices")
	}

	var s TrendScanResult
	s.Normalize()
	if s.TrendsSummary != NotAvailable || s.TrendingTopics == nil {
		t.Fatalf("unexpected scan normalize: %+v", s)
	}
}

func TestStaticDirectory(t *testing.T) {
	d := DefaultDirectory()
	info, ok := d.Agent(KindScan)
	if !ok || info.ID != DefaultScanAgentID || info.Name != "Trend Scout" {
		t.Fatalf("unexpected scan agent %+v", info)
	}
	if len(d.List()) != 4 || d.List()[0].Kind != KindGenerate {
		t.Fatalf("expected four agents in kind order")
	}
	sparse := NewStaticDirectory(map[WorkflowKind]string{KindGenerate: ""})
	if _, ok := sparse.Agent(KindGenerate); ok {
		t.Fatalf("empty id should not resolve")
	}
}

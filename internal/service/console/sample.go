package console

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

//go:embed sample.yaml
var sampleYAML []byte

// ActivityItem is one line of the repository activity feed.
type ActivityItem struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
	Time    string `json:"time" yaml:"time"`
	Author  string `json:"author" yaml:"author"`
}

// Presets holds the form values offered to the operator for each workflow.
type Presets struct {
	Generate core.GenerateInput `json:"generate" yaml:"generate"`
	Deliver  core.DeliverInput  `json:"deliver" yaml:"deliver"`
	Analyze  core.AnalyzeInput  `json:"analyze" yaml:"analyze"`
	Scan     core.ScanInput     `json:"scan" yaml:"scan"`
}

// EmptyPresets returns the forms shown when sample mode is off.
func EmptyPresets() Presets {
	return Presets{Deliver: core.DeliverInput{Calendar: core.DefaultCalendar}}
}

// SampleData is the canned session loaded by sample mode.
type SampleData struct {
	Presets      Presets                 `yaml:"presets"`
	Content      core.ContentArtifact    `yaml:"content"`
	Delivery     core.DeliveryResult     `yaml:"delivery"`
	Optimization core.OptimizationResult `yaml:"optimization"`
	Trends       core.TrendScanResult    `yaml:"trends"`
	Campaigns    []core.CampaignRecord   `yaml:"campaigns"`
	Activity     []ActivityItem          `yaml:"activity"`
}

// LoadSampleData decodes the built-in sample session.
func LoadSampleData() (*SampleData, error) {
	return ParseSampleData(sampleYAML)
}

// ParseSampleData decodes a sample session from YAML.
func ParseSampleData(data []byte) (*SampleData, error) {
	var sd SampleData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parsing sample data: %w", err)
	}
	sd.Content.Normalize()
	sd.Delivery.Normalize()
	sd.Optimization.Normalize()
	sd.Trends.Normalize()
	return &sd, nil
}

// trendsAt returns the canned scan stamped with now.
func (sd *SampleData) trendsAt(now time.Time) core.TrendScanResult {
	t := sd.Trends
	t.ScanTimestamp = now.UTC().Format(time.RFC3339)
	return t
}

func (sd *SampleData) campaigns() []core.CampaignRecord {
	out := make([]core.CampaignRecord, len(sd.Campaigns))
	for i, c := range sd.Campaigns {
		out[i] = c.Clone()
	}
	return out
}

package core

// EmailDelivery reports the email half of a delivery.
type EmailDelivery struct {
	Status          string     `json:"status" yaml:"status"`
	RecipientsCount FlexString `json:"recipients_count" yaml:"recipients_count"`
	Subject         string     `json:"subject" yaml:"subject"`
	SentAt          string     `json:"sent_at" yaml:"sent_at"`
}

// CalendarEvent reports one calendar entry created during delivery.
type CalendarEvent struct {
	EventTitle string `json:"event_title" yaml:"event_title"`
	DateTime   string `json:"date_time" yaml:"date_time"`
	Calendar   string `json:"calendar" yaml:"calendar"`
	Status     string `json:"status" yaml:"status"`
}

// DeliveryResult is the payload of a successful deliver workflow.
type DeliveryResult struct {
	EmailDelivery   EmailDelivery   `json:"email_delivery" yaml:"email_delivery"`
	CalendarEvents  []CalendarEvent `json:"calendar_events" yaml:"calendar_events"`
	DeliverySummary string          `json:"delivery_summary" yaml:"delivery_summary"`
	Raw             string          `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Normalize fills display placeholders.
func (d *DeliveryResult) Normalize() {
	d.EmailDelivery.Status = orNA(d.EmailDelivery.Status)
	d.EmailDelivery.RecipientsCount = flexOrNA(d.EmailDelivery.RecipientsCount)
	d.EmailDelivery.Subject = orNA(d.EmailDelivery.Subject)
	d.EmailDelivery.SentAt = orNA(d.EmailDelivery.SentAt)
	if d.CalendarEvents == nil {
		d.CalendarEvents = []CalendarEvent{}
	}
	for i := range d.CalendarEvents {
		ev := &d.CalendarEvents[i]
		ev.EventTitle = orNA(ev.EventTitle)
		ev.DateTime = orNA(ev.DateTime)
		ev.Calendar = orNA(ev.Calendar)
		ev.Status = orNA(ev.Status)
	}
	d.DeliverySummary = orNA(d.DeliverySummary)
}

// HasRequired reports whether the agent described any delivery at all.
func (d *DeliveryResult) HasRequired() bool {
	return d.EmailDelivery != (EmailDelivery{}) || len(d.CalendarEvents) > 0 || d.DeliverySummary != ""
}

// SetRaw records the original payload text for degraded display.
func (d *DeliveryResult) SetRaw(raw string) { d.Raw = raw }

// PerformanceAnalysis summarizes how a campaign performed.
type PerformanceAnalysis struct {
	OverallScore        FlexString `json:"overall_score" yaml:"overall_score"`
	Summary             string     `json:"summary" yaml:"summary"`
	TopPerformers       []string   `json:"top_performers" yaml:"top_performers"`
	AreasForImprovement []string   `json:"areas_for_improvement" yaml:"areas_for_improvement"`
}

// ABTestSuggestion is one proposed experiment.
type ABTestSuggestion struct {
	TestName       string `json:"test_name" yaml:"test_name"`
	Hypothesis     string `json:"hypothesis" yaml:"hypothesis"`
	VariantA       string `json:"variant_a" yaml:"variant_a"`
	VariantB       string `json:"variant_b" yaml:"variant_b"`
	ExpectedImpact string `json:"expected_impact" yaml:"expected_impact"`
	MetricToTrack  string `json:"metric_to_track" yaml:"metric_to_track"`
}

// EngagementPrediction forecasts engagement for a topic.
type EngagementPrediction struct {
	Topic              string     `json:"topic" yaml:"topic"`
	PredictedOpenRate  FlexString `json:"predicted_open_rate" yaml:"predicted_open_rate"`
	PredictedClickRate FlexString `json:"predicted_click_rate" yaml:"predicted_click_rate"`
	Confidence         string     `json:"confidence" yaml:"confidence"`
	Reasoning          string     `json:"reasoning" yaml:"reasoning"`
}

// OptimizationStrategy is one recommended change.
type OptimizationStrategy struct {
	Strategy             string `json:"strategy" yaml:"strategy"`
	Description          string `json:"description" yaml:"description"`
	ExpectedImpact       string `json:"expected_impact" yaml:"expected_impact"`
	ImplementationEffort string `json:"implementation_effort" yaml:"implementation_effort"`
	Priority             string `json:"priority" yaml:"priority"`
}

// OptimizationResult is the payload of a successful analyze workflow.
type OptimizationResult struct {
	PerformanceAnalysis    PerformanceAnalysis    `json:"performance_analysis" yaml:"performance_analysis"`
	ABTestingSuggestions   []ABTestSuggestion     `json:"ab_testing_suggestions" yaml:"ab_testing_suggestions"`
	EngagementPredictions  []EngagementPrediction `json:"engagement_predictions" yaml:"engagement_predictions"`
	OptimizationStrategies []OptimizationStrategy `json:"optimization_strategies" yaml:"optimization_strategies"`
	Raw                    string                 `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Normalize fills display placeholders.
func (o *OptimizationResult) Normalize() {
	pa := &o.PerformanceAnalysis
	pa.OverallScore = flexOrNA(pa.OverallScore)
	pa.Summary = orNA(pa.Summary)
	pa.TopPerformers = stringsOrEmpty(pa.TopPerformers)
	pa.AreasForImprovement = stringsOrEmpty(pa.AreasForImprovement)
	if o.ABTestingSuggestions == nil {
		o.ABTestingSuggestions = []ABTestSuggestion{}
	}
	if o.EngagementPredictions == nil {
		o.EngagementPredictions = []EngagementPrediction{}
	}
	for i := range o.EngagementPredictions {
		p := &o.EngagementPredictions[i]
		p.PredictedOpenRate = flexOrNA(p.PredictedOpenRate)
		p.PredictedClickRate = flexOrNA(p.PredictedClickRate)
		p.Confidence = orNA(p.Confidence)
	}
	if o.OptimizationStrategies == nil {
		o.OptimizationStrategies = []OptimizationStrategy{}
	}
	for i := range o.OptimizationStrategies {
		s := &o.OptimizationStrategies[i]
		s.ExpectedImpact = orNA(s.ExpectedImpact)
		s.ImplementationEffort = orNA(s.ImplementationEffort)
		if s.Priority == "" {
			s.Priority = "P3"
		}
	}
}

// HasRequired reports whether any analysis section is present.
func (o *OptimizationResult) HasRequired() bool {
	pa := o.PerformanceAnalysis
	return pa.OverallScore != "" || pa.Summary != "" || len(pa.TopPerformers) > 0 ||
		len(o.ABTestingSuggestions) > 0 || len(o.EngagementPredictions) > 0 ||
		len(o.OptimizationStrategies) > 0
}

// SetRaw records the original payload text for degraded display.
func (o *OptimizationResult) SetRaw(raw string) { o.Raw = raw }

// TrendingTopic is a single trend the scout found.
type TrendingTopic struct {
	TrendName    string `json:"trend_name" yaml:"trend_name"`
	Category     string `json:"category" yaml:"category"`
	Description  string `json:"description" yaml:"description"`
	WhyItMatters string `json:"why_it_matters" yaml:"why_it_matters"`
	Momentum     string `json:"momentum" yaml:"momentum"`
	ContentAngle string `json:"content_angle" yaml:"content_angle"`
	Source       string `json:"source" yaml:"source"`
}

// TrendingRepo is a repository gaining attention.
type TrendingRepo struct {
	RepoName    string     `json:"repo_name" yaml:"repo_name"`
	Description string     `json:"description" yaml:"description"`
	Stars       FlexString `json:"stars" yaml:"stars"`
	Language    string     `json:"language" yaml:"language"`
	WhyTrending string     `json:"why_trending" yaml:"why_trending"`
}

// ContentRecommendation suggests a piece of content to produce.
type ContentRecommendation struct {
	Topic               string `json:"topic" yaml:"topic"`
	Format              string `json:"format" yaml:"format"`
	TargetAudience      string `json:"target_audience" yaml:"target_audience"`
	Urgency             string `json:"urgency" yaml:"urgency"`
	EstimatedEngagement string `json:"estimated_engagement" yaml:"estimated_engagement"`
}

// TrendScanResult is the payload of a successful scan workflow.
type TrendScanResult struct {
	TrendsSummary          string                  `json:"trends_summary" yaml:"trends_summary"`
	TrendingTopics         []TrendingTopic         `json:"trending_topics" yaml:"trending_topics"`
	TrendingRepos          []TrendingRepo          `json:"trending_repos" yaml:"trending_repos"`
	ContentRecommendations []ContentRecommendation `json:"content_recommendations" yaml:"content_recommendations"`
	ScanTimestamp          string                  `json:"scan_timestamp" yaml:"scan_timestamp"`
	Raw                    string                  `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Normalize fills display placeholders.
func (t *TrendScanResult) Normalize() {
	t.TrendsSummary = orNA(t.TrendsSummary)
	if t.TrendingTopics == nil {
		t.TrendingTopics = []TrendingTopic{}
	}
	for i := range t.TrendingTopics {
		tp := &t.TrendingTopics[i]
		tp.Category = orNA(tp.Category)
		tp.Momentum = orNA(tp.Momentum)
		tp.Source = orNA(tp.Source)
	}
	if t.TrendingRepos == nil {
		t.TrendingRepos = []TrendingRepo{}
	}
	for i := range t.TrendingRepos {
		r := &t.TrendingRepos[i]
		r.Stars = flexOrNA(r.Stars)
		r.Language = orNA(r.Language)
	}
	if t.ContentRecommendations == nil {
		t.ContentRecommendations = []ContentRecommendation{}
	}
	t.ScanTimestamp = orNA(t.ScanTimestamp)
}

// HasRequired reports whether any trend section is present.
func (t *TrendScanResult) HasRequired() bool {
	return t.TrendsSummary != "" || len(t.TrendingTopics) > 0 ||
		len(t.TrendingRepos) > 0 || len(t.ContentRecommendations) > 0
}

// SetRaw records the original payload text for degraded display.
func (t *TrendScanResult) SetRaw(raw string) { t.Raw = raw }

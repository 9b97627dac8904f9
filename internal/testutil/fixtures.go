package testutil

import "github.com/hugo-lorenzo-mato/devcontent/internal/core"

// NewTestArtifact returns a fully populated ContentArtifact. Options
// override specific fields.
func NewTestArtifact(opts ...func(*core.ContentArtifact)) core.ContentArtifact {
	a := core.ContentArtifact{
		ExecutiveSummary: "Release 2.0 ships a new plugin API.",
		KeyThemes:        []string{"plugins", "performance"},
		Email: core.EmailDraft{
			Subject:      "Release 2.0 is here",
			Preview:      "Plugins, faster builds and more",
			Body:         "Hi there,\n\nRelease 2.0 is out.",
			CallToAction: "Read the changelog",
		},
		Social: core.SocialDraft{
			Twitter:    "Release 2.0 is out! #golang",
			LinkedIn:   "We just shipped release 2.0.",
			DevtoTitle: "What's new in 2.0",
			DevtoBody:  "## Plugins\n\nA new API.",
		},
		Blog: core.BlogDraft{
			Title:           "Inside Release 2.0",
			MetaDescription: "A tour of the 2.0 release.",
			Body:            "# Inside Release 2.0\n\nDetails.",
			Tags:            []string{"release", "plugins", "go"},
		},
		GitHubContextSummary: "12 merged PRs, 1 release",
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestTrends returns a trend scan result with one topic.
func NewTestTrends() core.TrendScanResult {
	return core.TrendScanResult{
		TrendsSummary: "Agents are everywhere.",
		TrendingTopics: []core.TrendingTopic{{
			TrendName:    "AI Agents",
			Category:     "AI/ML",
			Momentum:     "rising",
			ContentAngle: "How to build one in Go",
		}},
		TrendingRepos:          []core.TrendingRepo{},
		ContentRecommendations: []core.ContentRecommendation{},
		ScanTimestamp:          "2025-01-15T10:00:00Z",
	}
}

package report

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

// frontmatter renders ordered YAML frontmatter with delimiters.
type frontmatter struct {
	node yaml.Node
}

func newFrontmatter() *frontmatter {
	return &frontmatter{node: yaml.Node{Kind: yaml.MappingNode}}
}

// Set appends key. Values are encoded by yaml.v3, so quoting follows YAML.
func (f *frontmatter) Set(key string, value interface{}) {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		v = yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(value)}
	}
	f.node.Content = append(f.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
}

func (f *frontmatter) Render() string {
	if len(f.node.Content) == 0 {
		return ""
	}
	out, err := yaml.Marshal(&f.node)
	if err != nil {
		return ""
	}
	return "---\n" + string(out) + "---\n\n"
}

// DraftsMarkdown renders the editable drafts as one markdown document.
func DraftsMarkdown(set drafts.Set) string {
	var b strings.Builder

	if set.Blog.Title != "" || set.Blog.Tags != "" {
		fm := newFrontmatter()
		fm.Set("title", set.Blog.Title)
		if set.Blog.MetaDescription != "" {
			fm.Set("description", set.Blog.MetaDescription)
		}
		fm.Set("tags", set.Blog.TagList())
		b.WriteString(fm.Render())
	}

	b.WriteString("## Email\n\n")
	writeField(&b, "Subject", set.Email.Subject)
	writeField(&b, "Preview", set.Email.Preview)
	writeBody(&b, set.Email.Body)
	writeField(&b, "Call to action", set.Email.CallToAction)

	b.WriteString("## Social\n\n")
	if set.Social.Twitter != "" {
		limit := ""
		if set.Social.OverTwitterLimit() {
			limit = " (over limit)"
		}
		fmt.Fprintf(&b, "**Twitter** %d/%d%s\n\n> %s\n\n", set.Social.TwitterLength(), drafts.TwitterLimit, limit, set.Social.Twitter)
	}
	writeField(&b, "LinkedIn", set.Social.LinkedIn)
	writeField(&b, "Dev.to title", set.Social.DevtoTitle)
	writeBody(&b, set.Social.DevtoBody)

	b.WriteString("## Blog\n\n")
	if set.Blog.Title != "" {
		fmt.Fprintf(&b, "### %s\n\n", set.Blog.Title)
	}
	writeBody(&b, set.Blog.Body)
	return b.String()
}

// ResultMarkdown renders the last result of a workflow. It returns "" when
// the workflow holds no result.
func ResultMarkdown(st core.WorkflowState) string {
	var b strings.Builder
	if st.Degraded {
		if raw := rawOf(st.Result); raw != "" {
			b.WriteString("_The agent returned unstructured text._\n\n")
			fmt.Fprintf(&b, "```\n%s\n```\n", raw)
			return b.String()
		}
	}

	switch r := st.Result.(type) {
	case core.ContentArtifact:
		writeArtifact(&b, r)
	case core.DeliveryResult:
		writeDelivery(&b, r)
	case core.OptimizationResult:
		writeOptimization(&b, r)
	case core.TrendScanResult:
		writeTrends(&b, r)
	}
	return b.String()
}

func rawOf(result any) string {
	switch r := result.(type) {
	case core.ContentArtifact:
		return r.Raw
	case core.DeliveryResult:
		return r.Raw
	case core.OptimizationResult:
		return r.Raw
	case core.TrendScanResult:
		return r.Raw
	}
	return ""
}

func writeArtifact(b *strings.Builder, a core.ContentArtifact) {
	b.WriteString("## Executive summary\n\n")
	writeBody(b, a.ExecutiveSummary)
	writeList(b, "Key themes", a.KeyThemes)
	if a.GitHubContextSummary != "" {
		b.WriteString("### GitHub context\n\n")
		writeBody(b, a.GitHubContextSummary)
	}
}

func writeDelivery(b *strings.Builder, d core.DeliveryResult) {
	b.WriteString("## Delivery\n\n")
	writeBody(b, d.DeliverySummary)
	e := d.EmailDelivery
	fmt.Fprintf(b, "| Email | |\n|---|---|\n| Status | %s |\n| Recipients | %s |\n| Subject | %s |\n| Sent at | %s |\n\n",
		cell(e.Status), cell(e.RecipientsCount.String()), cell(e.Subject), cell(e.SentAt))
	if len(d.CalendarEvents) == 0 {
		return
	}
	b.WriteString("### Calendar events\n\n| Title | Date/Time | Calendar | Status |\n|---|---|---|---|\n")
	for _, ev := range d.CalendarEvents {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(ev.EventTitle), cell(ev.DateTime), cell(ev.Calendar), cell(ev.Status))
	}
	b.WriteString("\n")
}

func writeOptimization(b *strings.Builder, o core.OptimizationResult) {
	pa := o.PerformanceAnalysis
	fmt.Fprintf(b, "## Performance (score %s)\n\n", pa.OverallScore)
	writeBody(b, pa.Summary)
	writeList(b, "Top performers", pa.TopPerformers)
	writeList(b, "Areas for improvement", pa.AreasForImprovement)

	if len(o.ABTestingSuggestions) > 0 {
		b.WriteString("### A/B tests\n\n")
		for _, s := range o.ABTestingSuggestions {
			fmt.Fprintf(b, "- **%s**: %s\n  - A: %s\n  - B: %s\n  - Impact: %s, track %s\n",
				s.TestName, s.Hypothesis, s.VariantA, s.VariantB, s.ExpectedImpact, s.MetricToTrack)
		}
		b.WriteString("\n")
	}
	if len(o.EngagementPredictions) > 0 {
		b.WriteString("### Predictions\n\n| Topic | Open | Click | Confidence |\n|---|---|---|---|\n")
		for _, p := range o.EngagementPredictions {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(p.Topic), cell(p.PredictedOpenRate.String()), cell(p.PredictedClickRate.String()), cell(p.Confidence))
		}
		b.WriteString("\n")
	}
	if len(o.OptimizationStrategies) > 0 {
		b.WriteString("### Strategies\n\n")
		for _, s := range o.OptimizationStrategies {
			fmt.Fprintf(b, "- `%s` **%s**: %s (impact %s, effort %s)\n", s.Priority, s.Strategy, s.Description, s.ExpectedImpact, s.ImplementationEffort)
		}
		b.WriteString("\n")
	}
}

func writeTrends(b *strings.Builder, t core.TrendScanResult) {
	fmt.Fprintf(b, "## Trends (scanned %s)\n\n", t.ScanTimestamp)
	writeBody(b, t.TrendsSummary)
	if len(t.TrendingTopics) > 0 {
		b.WriteString("### Topics\n\n")
		for _, tp := range t.TrendingTopics {
			fmt.Fprintf(b, "- **%s** [%s, %s]: %s\n", tp.TrendName, tp.Category, tp.Momentum, tp.Description)
			if tp.ContentAngle != "" {
				fmt.Fprintf(b, "  - Angle: %s\n", tp.ContentAngle)
			}
		}
		b.WriteString("\n")
	}
	if len(t.TrendingRepos) > 0 {
		b.WriteString("### Repositories\n\n| Repo | Stars | Language | Why |\n|---|---|---|---|\n")
		for _, r := range t.TrendingRepos {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(r.RepoName), cell(r.Stars.String()), cell(r.Language), cell(r.WhyTrending))
		}
		b.WriteString("\n")
	}
	if len(t.ContentRecommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for _, c := range t.ContentRecommendations {
			fmt.Fprintf(b, "- %s (%s for %s, urgency %s)\n", c.Topic, c.Format, c.TargetAudience, c.Urgency)
		}
		b.WriteString("\n")
	}
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "**%s:** %s\n\n", label, value)
}

func writeBody(b *strings.Builder, body string) {
	if body = strings.TrimSpace(body); body == "" {
		return
	}
	b.WriteString(body)
	b.WriteString("\n\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

// cell escapes a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

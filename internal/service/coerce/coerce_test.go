package coerce

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

func quoted(t *testing.T, s string) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return b
}

func TestCoerce_StructuredObject(t *testing.T) {
	raw := json.RawMessage(`{"email_content":{"subject_line":"Hi","body":"Body"},"key_themes":["a"]}`)

	got, outcome, err := Coerce[core.ContentArtifact](raw)
	require.NoError(t, err)
	assert.Equal(t, Exact, outcome)
	assert.Equal(t, "Hi", got.Email.Subject)
	assert.Equal(t, []string{"a"}, got.KeyThemes)
	assert.NotNil(t, got.Blog.Tags)
	assert.Empty(t, got.Raw)
}

func TestCoerce_JSONEncodedString(t *testing.T) {
	raw := quoted(t, `{"trends_summary":"AI everywhere","trending_topics":[{"trend_name":"Agents"}]}`)

	got, outcome, err := Coerce[core.TrendScanResult](raw)
	require.NoError(t, err)
	assert.Equal(t, Exact, outcome)
	assert.Equal(t, "AI everywhere", got.TrendsSummary)
	require.Len(t, got.TrendingTopics, 1)
	assert.Equal(t, core.NotAvailable, got.TrendingTopics[0].Momentum)
}

func TestCoerce_FencedString(t *testing.T) {
	raw := quoted(t, "```json\n{\"delivery_summary\":\"sent\"}\n```")

	got, outcome, err := Coerce[core.DeliveryResult](raw)
	require.NoError(t, err)
	assert.Equal(t, Exact, outcome)
	assert.Equal(t, "sent", got.DeliverySummary)
	assert.NotNil(t, got.CalendarEvents)
}

func TestCoerce_ResultEnvelopeUnwrapped(t *testing.T) {
	raw := json.RawMessage(`{"result":{"performance_analysis":{"overall_score":82,"summary":"ok"}}}`)

	got, outcome, err := Coerce[core.OptimizationResult](raw)
	require.NoError(t, err)
	assert.Equal(t, Exact, outcome)
	assert.Equal(t, core.FlexString("82"), got.PerformanceAnalysis.OverallScore)
}

func TestCoerce_MalformedTextDegrades(t *testing.T) {
	raw := quoted(t, "Sorry, I could not reach GitHub right now.")

	got, outcome, err := Coerce[core.ContentArtifact](raw)
	require.NoError(t, err)
	assert.Equal(t, Degraded, outcome)
	assert.Equal(t, "Sorry, I could not reach GitHub right now.", got.Raw)
	assert.True(t, got.Email.IsZero())
}

func TestCoerce_TypeMismatchDegrades(t *testing.T) {
	raw := json.RawMessage(`{"trending_topics":"not a list"}`)

	got, outcome, err := Coerce[core.TrendScanResult](raw)
	require.NoError(t, err)
	assert.Equal(t, Degraded, outcome)
	assert.Equal(t, string(raw), got.Raw)
	assert.NotNil(t, got.TrendingTopics)
}

func TestCoerce_NonObjectValuesDegrade(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `42`, `true`} {
		got, outcome, err := Coerce[core.DeliveryResult](json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, Degraded, outcome, raw)
		assert.Equal(t, raw, got.Raw)
	}
}

func TestCoerce_EmptyObjectIsPartial(t *testing.T) {
	tests := []struct {
		kind core.WorkflowKind
		raw  string
	}{
		{core.KindGenerate, `{}`},
		{core.KindDeliver, `{}`},
		{core.KindAnalyze, `{"foo":1}`},
		{core.KindScan, `{"note":"nothing today"}`},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			v, outcome, err := Value(tt.kind, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, Partial, outcome)

			var raw string
			switch r := v.(type) {
			case core.ContentArtifact:
				raw = r.Raw
			case core.DeliveryResult:
				raw = r.Raw
				assert.Equal(t, "N/A", r.DeliverySummary)
			case core.OptimizationResult:
				raw = r.Raw
				assert.Equal(t, "N/A", r.PerformanceAnalysis.Summary)
			case core.TrendScanResult:
				raw = r.Raw
				assert.Equal(t, "N/A", r.TrendsSummary)
			default:
				t.Fatalf("unexpected result type %T", v)
			}
			assert.Equal(t, tt.raw, raw)
		})
	}
}

func TestCoerce_SectionPresentIsExact(t *testing.T) {
	tests := []struct {
		kind core.WorkflowKind
		raw  string
	}{
		{core.KindDeliver, `{"delivery_summary":"Sent"}`},
		{core.KindAnalyze, `{"performance_analysis":{"overall_score":"8/10"}}`},
		{core.KindScan, `{"trends_summary":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			_, outcome, err := Value(tt.kind, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, Exact, outcome)
		})
	}
}

func TestCoerce_EmptyResultFails(t *testing.T) {
	for _, raw := range []string{``, `null`, `""`, `"   "`, "  \n"} {
		_, _, err := Coerce[core.ContentArtifact](json.RawMessage(raw))
		require.Error(t, err, "input %q", raw)
		assert.True(t, core.IsCategory(err, core.ErrCatCoercion))
	}
}

func TestValue_DispatchesByKind(t *testing.T) {
	v, outcome, err := Value(core.KindScan, json.RawMessage(`{"trends_summary":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, Exact, outcome)
	assert.IsType(t, core.TrendScanResult{}, v)

	_, _, err = Value(core.WorkflowKind("publish"), json.RawMessage(`{}`))
	assert.Error(t, err)

	_, _, err = Value(core.KindGenerate, nil)
	assert.Error(t, err)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}```"))
	assert.Equal(t, "plain", StripFences("plain"))
}

// Arbitrary text never produces an error; it either decodes or degrades.
func TestCoerce_NeverFailsOnNonEmptyText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[ -~]{1,64}`).Draw(t, "text")
		if trimmed(s) == "" {
			return
		}
		raw, _ := json.Marshal(s)
		got, outcome, err := Coerce[core.OptimizationResult](raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
		if outcome == Degraded && got.Raw != s {
			t.Fatalf("degraded raw %q, want %q", got.Raw, s)
		}
	})
}

func trimmed(s string) string {
	return strings.TrimSpace(StripFences(s))
}

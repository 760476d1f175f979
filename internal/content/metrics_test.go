package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceMetrics(t *testing.T) {
	t.Run("NilInput", func(t *testing.T) {
		metrics, err := CoerceMetrics(nil, true)
		require.NoError(t, err)
		assert.Empty(t, metrics)
	})

	t.Run("StringValuesDeriveTitles", func(t *testing.T) {
		metrics, err := CoerceMetrics(map[string]any{
			"roi":          "3x return in the first quarter",
			"LCP":          "Largest Contentful Paint under 1.2s",
			"user_growth":  "40% month over month",
			"time-to-ship": "Two weeks from kickoff",
		}, true)
		require.NoError(t, err)

		assert.Equal(t, "ROI", metrics["roi"].Title)
		assert.Equal(t, "LCP", metrics["LCP"].Title)
		assert.Equal(t, "User Growth", metrics["user_growth"].Title)
		assert.Equal(t, "Time To Ship", metrics["time-to-ship"].Title)
		assert.Equal(t, "3x return in the first quarter", metrics["roi"].Description)
	})

	t.Run("ObjectValuesEitherCase", func(t *testing.T) {
		metrics, err := CoerceMetrics(map[string]any{
			"uptime": map[string]any{"title": "Uptime", "description": "99.99% over 12 months"},
			"nps":    map[string]any{"Title": "Net Promoter Score", "Description": "72 after relaunch"},
		}, true)
		require.NoError(t, err)

		assert.Equal(t, "Uptime", metrics["uptime"].Title)
		assert.Equal(t, "Net Promoter Score", metrics["nps"].Title)
		assert.Equal(t, "72 after relaunch", metrics["nps"].Description)
	})

	t.Run("ObjectWithoutTitleDerivesFromKey", func(t *testing.T) {
		metrics, err := CoerceMetrics(map[string]any{
			"conversion_rate": map[string]any{"description": "Doubled after the redesign"},
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "Conversion Rate", metrics["conversion_rate"].Title)
	})

	t.Run("StrictRejectsBadEntryNamingKey", func(t *testing.T) {
		_, err := CoerceMetrics(map[string]any{
			"good": "fine description",
			"bad":  map[string]any{"title": "No description here"},
		}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
	})

	t.Run("LenientDropsBadEntries", func(t *testing.T) {
		metrics, err := CoerceMetrics(map[string]any{
			"good":    "fine description",
			"broken":  map[string]any{"title": "No description here"},
			"weirder": 42,
		}, false)
		require.NoError(t, err)
		assert.Len(t, metrics, 1)
		assert.Contains(t, metrics, "good")
	})

	t.Run("StrictRejectsUnsupportedValueType", func(t *testing.T) {
		_, err := CoerceMetrics(map[string]any{"count": 42}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "count")
	})

	t.Run("JSONTextInput", func(t *testing.T) {
		metrics, err := CoerceMetrics(`{"roi": "3x return", "uptime": {"title": "Uptime", "description": "99.99%"}}`, true)
		require.NoError(t, err)
		assert.Len(t, metrics, 2)
		assert.Equal(t, "ROI", metrics["roi"].Title)
		assert.Equal(t, "Uptime", metrics["uptime"].Title)
	})

	t.Run("InvalidJSONText", func(t *testing.T) {
		_, err := CoerceMetrics(`{not json`, false)
		require.Error(t, err)
	})

	t.Run("EmptyJSONText", func(t *testing.T) {
		metrics, err := CoerceMetrics("  ", true)
		require.NoError(t, err)
		assert.Empty(t, metrics)
	})
}

func TestMetricsRoundTrip(t *testing.T) {
	original := map[string]Metric{
		"roi":    {Title: "ROI", Description: "3x return"},
		"uptime": {Title: "Uptime", Description: "99.99%"},
	}

	text, err := MetricsToJSON(original)
	require.NoError(t, err)

	parsed, err := ParseMetricsJSON(text, true)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestMetricsToJSONEmpty(t *testing.T) {
	text, err := MetricsToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestDeriveMetricTitle(t *testing.T) {
	cases := map[string]string{
		"LCP":             "LCP",
		"ROI2":            "ROI2",
		"roi":             "ROI",
		"nps":             "NPS",
		"uptime":          "Uptime",
		"user_growth":     "User Growth",
		"time-to-market":  "Time To Market",
		"conversion.rate": "Conversion Rate",
	}
	for key, expected := range cases {
		assert.Equal(t, expected, DeriveMetricTitle(key), "key: %s", key)
	}
}

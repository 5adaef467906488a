package render

import (
	"strings"
	"testing"

	"bmicalc/internal/bmi"
	"bmicalc/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results(t *testing.T, weights ...float64) []bmi.Result {
	t.Helper()
	out := make([]bmi.Result, 0, len(weights))
	for _, w := range weights {
		r, err := bmi.Compute(w, 1.75, 30, bmi.GenderMale)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestReferenceRows(t *testing.T) {
	rows := ReferenceRows()
	require.Len(t, rows, 4)
	assert.Equal(t, ReferenceRow{Category: bmi.CategoryUnderweight, Label: "Underweight", Range: "< 18.5", Color: "#3498db"}, rows[0])
	assert.Equal(t, "18.5 - 24.9", rows[1].Range)
	assert.Equal(t, "25 - 29.9", rows[2].Range)
	assert.Equal(t, "≥ 30", rows[3].Range)

	text := RenderReferenceTable(rows)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Category"))
	assert.Contains(t, lines[4], "#e74c3c")
}

func TestRenderHistoryTable(t *testing.T) {
	assert.Empty(t, RenderHistoryTable(nil))

	rows := history.Rows(results(t, 70, 100))
	text := RenderHistoryTable(rows)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "22.86")
	assert.Contains(t, lines[1], "Healthy")
	assert.Contains(t, lines[2], "Obese")
}

func TestAdviceHTML(t *testing.T) {
	info, ok := bmi.Lookup(bmi.CategoryHealthy)
	require.True(t, ok)
	html := string(AdviceHTML(info.Tips))
	assert.Equal(t, 5, strings.Count(html, "<li>"))
	assert.Contains(t, html, "Get 7-9 hours of quality sleep every night.")

	escaped := string(Markdown("<script>alert(1)</script>"))
	assert.NotContains(t, escaped, "<script>")

	assert.Contains(t, string(Markdown(Disclaimer)), "<strong>Note:</strong>")
}

func TestTrendChart_Empty(t *testing.T) {
	_, err := TrendChart(nil, TrendOptions{})
	assert.ErrorIs(t, err, ErrEmptyHistory)
	_, err = TrendHTML(nil, TrendOptions{})
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestTrendHTML_SeriesPerCategory(t *testing.T) {
	html, err := TrendHTML(results(t, 50, 70, 85, 100), TrendOptions{SMAWindow: 3})
	require.NoError(t, err)
	page := string(html)
	for _, label := range []string{"Underweight", "Healthy Weight", "Overweight", "Obese", "SMA(3)", "Your BMI Over Time"} {
		assert.Contains(t, page, label)
	}
	assert.Contains(t, page, "#e74c3c")
}

func TestTrendHTML_OmitsAbsentCategoriesAndShortSMA(t *testing.T) {
	html, err := TrendHTML(results(t, 70, 71), TrendOptions{SMAWindow: 3})
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, "Healthy Weight")
	assert.NotContains(t, page, "Obese")
	assert.NotContains(t, page, "SMA(")
}

func TestMovingAverage(t *testing.T) {
	assert.Nil(t, movingAverage([]float64{1, 2}, 3))
	assert.Nil(t, movingAverage([]float64{1, 2, 3}, 0))

	sma := movingAverage([]float64{20, 22, 24, 26}, 2)
	require.Len(t, sma, 4)
	assert.Nil(t, sma[0].Value)
	assert.Equal(t, 21.0, sma[1].Value)
	assert.Equal(t, 23.0, sma[2].Value)
	assert.Equal(t, 25.0, sma[3].Value)
}

package report

import (
	"strings"
	"testing"

	"gobenford/domain/benford"

	"github.com/stretchr/testify/assert"
)

func sampleResult() benford.Result {
	return benford.Analyze([]float64{123, 1450, 19, 234, 567, 891})
}

func TestMarkdownReport(t *testing.T) {
	r := NewRenderer("obs.svg", "dev.svg")
	md := string(r.Markdown(sampleResult()))

	assert.Contains(t, md, "# Benford Analysis Report")
	assert.Contains(t, md, "Total non-zero amounts analyzed: **6**")
	assert.Contains(t, md, "![Observed vs Expected](obs.svg)")
	assert.Contains(t, md, "![Observed - Expected Deviation](dev.svg)")

	// Digit 1 observed 3 of 6 = 50.00%, expected 30.10%
	assert.Contains(t, md, "| 1 | 3 | 50.00% | 30.10% | +19.90% |")
	// A digit with zero observations still appears in the table
	assert.Contains(t, md, "| 9 | 0 | 0.00% |")

	assert.Contains(t, md, "Mean absolute deviation (MAD):")
	assert.Contains(t, md, "Chi-square statistic:")
	assert.Contains(t, md, "Chi-square p-value (8 df):")
	assert.Contains(t, md, "MAD guidance (Nigrini):")
	assert.Contains(t, md, "0.012-0.015: Marginally acceptable")
}

func TestMarkdownReportZeroTotal(t *testing.T) {
	r := NewRenderer("obs.svg", "dev.svg")
	md := string(r.Markdown(benford.Analyze(nil)))

	assert.Contains(t, md, "Total non-zero amounts analyzed: **0**")
	assert.Contains(t, md, "| 1 | 0 | 0.00% | 30.10% | -30.10% |")
	assert.Contains(t, md, "Chi-square statistic: **0.00**")
}

func TestMarkdownThousandsSeparators(t *testing.T) {
	result := sampleResult()
	result.Total = 1234567
	result.Counts[1] = 1000

	r := NewRenderer("obs.svg", "dev.svg")
	md := string(r.Markdown(result))

	assert.Contains(t, md, "**1,234,567**")
	assert.Contains(t, md, "| 1 | 1,000 |")
}

func TestHTMLRendition(t *testing.T) {
	r := NewRenderer("obs.svg", "dev.svg")
	md := r.Markdown(sampleResult())
	page := string(r.HTML(md))

	assert.True(t, strings.Contains(page, "<html"), "expected a complete page")
	assert.Contains(t, page, "Benford Analysis Report")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, `src="obs.svg"`)
}

func TestChiSquarePValueBounds(t *testing.T) {
	assert.InDelta(t, 1.0, chiSquarePValue(0), 1e-12)
	assert.Less(t, chiSquarePValue(50), 0.001)
	assert.Greater(t, chiSquarePValue(2), chiSquarePValue(20))
}

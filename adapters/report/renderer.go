package report

import (
	"fmt"
	"strconv"
	"strings"

	"gobenford/domain/benford"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareDF is the degrees of freedom of the nine-bucket digit test
const chiSquareDF = 8

// Renderer turns an analysis result into the report document. It only
// produces bytes; writing artifacts is the pipeline's job.
type Renderer struct {
	observedChart  string
	deviationChart string
}

// NewRenderer creates a report renderer that links the given chart filenames
func NewRenderer(observedChart, deviationChart string) *Renderer {
	return &Renderer{
		observedChart:  observedChart,
		deviationChart: deviationChart,
	}
}

// Markdown renders the full markdown report: totals, per-digit table,
// conformity statistics and the Nigrini MAD guidance
func (r *Renderer) Markdown(result benford.Result) []byte {
	var sb strings.Builder

	sb.WriteString("# Benford Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("Total non-zero amounts analyzed: **%s**\n\n", groupThousands(result.Total)))
	sb.WriteString("## First-digit distribution\n\n")
	sb.WriteString(fmt.Sprintf("![Observed vs Expected](%s)\n\n", r.observedChart))
	sb.WriteString(fmt.Sprintf("![Observed - Expected Deviation](%s)\n\n", r.deviationChart))

	sb.WriteString("| Digit | Observed Count | Observed % | Expected % | Deviation (Obs - Exp) |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, digit := range benford.Digits {
		obsPct := result.ObservedPct[digit] * 100
		expPct := result.ExpectedPct[digit] * 100
		sb.WriteString(fmt.Sprintf("| %d | %s | %.2f%% | %.2f%% | %+.2f%% |\n",
			digit, groupThousands(result.Counts[digit]), obsPct, expPct, obsPct-expPct))
	}

	sb.WriteString(fmt.Sprintf("\nMean absolute deviation (MAD): **%.4f**\n", result.MAD))
	sb.WriteString(fmt.Sprintf("Chi-square statistic: **%.2f**\n", result.ChiSquare))
	sb.WriteString(fmt.Sprintf("Chi-square p-value (%d df): %.4f\n", chiSquareDF, chiSquarePValue(result.ChiSquare)))
	sb.WriteString("\nMAD guidance (Nigrini):\n\n")
	sb.WriteString("- 0.000-0.006: Close conformity\n")
	sb.WriteString("- 0.006-0.012: Acceptable conformity\n")
	sb.WriteString("- 0.012-0.015: Marginally acceptable\n")
	sb.WriteString("- >0.015: Nonconformity\n")

	return []byte(sb.String())
}

// HTML renders the markdown report as a standalone HTML page for the
// review server
func (r *Renderer) HTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Benford Analysis Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

// chiSquarePValue converts the statistic into a right-tail p-value under the
// chi-squared distribution with eight degrees of freedom
func chiSquarePValue(statistic float64) float64 {
	dist := distuv.ChiSquared{K: chiSquareDF}
	return 1 - dist.CDF(statistic)
}

// groupThousands formats an integer with comma separators (1234567 -> "1,234,567")
func groupThousands(n int) string {
	text := strconv.Itoa(n)
	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}
	var sb strings.Builder
	for i, ch := range text {
		if i > 0 && (len(text)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	if negative {
		return "-" + sb.String()
	}
	return sb.String()
}

package chart

import (
	"fmt"
	"math"
	"strings"

	"gobenford/domain/benford"
)

const (
	chartWidth  = 900
	chartHeight = 500
	margin      = 60
)

var seriesColors = []string{"#4c78a8", "#f58518", "#54a24b"}

const (
	positiveFill = "#54a24b"
	negativeFill = "#e45756"
)

// series is one named set of per-digit percentages in a grouped chart
type series struct {
	name   string
	values map[int]float64
}

// ObservedVsExpected renders the grouped bar chart comparing observed and
// expected percentage per digit
func ObservedVsExpected(result benford.Result) []byte {
	observed := make(map[int]float64, len(benford.Digits))
	expected := make(map[int]float64, len(benford.Digits))
	yMax := 0.0
	for _, digit := range benford.Digits {
		observed[digit] = result.ObservedPct[digit] * 100
		expected[digit] = result.ExpectedPct[digit] * 100
		if observed[digit] > yMax {
			yMax = observed[digit]
		}
		if expected[digit] > yMax {
			yMax = expected[digit]
		}
	}
	yMax *= 1.2

	return groupedBarChart(
		"First-Digit Distribution (Observed vs Expected)",
		[]series{
			{name: "Observed", values: observed},
			{name: "Expected", values: expected},
		},
		"Percent of totals",
		yMax,
	)
}

// Deviation renders the signed bar chart of per-digit observed-minus-expected
// percentage, green above zero and red below
func Deviation(result benford.Result) []byte {
	deviations := make(map[int]float64, len(benford.Digits))
	maxDev := 0.0
	for _, digit := range benford.Digits {
		deviations[digit] = result.Deviation(digit) * 100
		if abs := math.Abs(deviations[digit]); abs > maxDev {
			maxDev = abs
		}
	}
	// Flat deviations still need a visible axis range
	yMax := 0.05
	if maxDev > 0 {
		yMax = maxDev * 1.2
	}

	return deviationChart("Deviation from Benford (Observed - Expected)", deviations, yMax)
}

func groupedBarChart(title string, allSeries []series, yLabel string, yMax float64) []byte {
	plotWidth := float64(chartWidth - 2*margin)
	plotHeight := float64(chartHeight - 2*margin)
	groupWidth := plotWidth / float64(len(benford.Digits))
	barWidth := groupWidth / float64(len(allSeries)+1)

	yPos := func(value float64) float64 {
		return float64(chartHeight-margin) - (value/yMax)*plotHeight
	}

	var sb strings.Builder
	writeChartFrame(&sb, title)

	for idx, digit := range benford.Digits {
		xBase := float64(margin) + float64(idx)*groupWidth
		for sIdx, s := range allSeries {
			value := s.values[digit]
			x := xBase + (float64(sIdx)+0.5)*barWidth
			y := yPos(value)
			barHeight := float64(chartHeight-margin) - y
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				x, y, barWidth*0.8, barHeight, seriesColors[sIdx%len(seriesColors)])
		}
		fmt.Fprintf(&sb, `<text x="%.2f" y="%d" font-size="12" text-anchor="middle">%d</text>`+"\n",
			xBase+groupWidth/2, chartHeight-margin+20, digit)
	}

	for i := 0; i < 6; i++ {
		val := yMax * float64(i) / 5
		y := yPos(val)
		writeGridline(&sb, y, val)
	}

	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12">%s</text>`+"\n", margin, margin-20, yLabel)

	legendX := chartWidth - margin - 150
	for idx, s := range allSeries {
		y := margin + idx*20
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`+"\n",
			legendX, y-10, seriesColors[idx%len(seriesColors)])
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12" alignment-baseline="middle">%s</text>`+"\n",
			legendX+18, y, s.name)
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

func deviationChart(title string, deviations map[int]float64, yMax float64) []byte {
	plotWidth := float64(chartWidth - 2*margin)
	plotHeight := float64(chartHeight - 2*margin)
	groupWidth := plotWidth / float64(len(benford.Digits))
	barWidth := groupWidth * 0.6

	// Zero sits mid-axis; the y range is symmetric around it
	yPos := func(value float64) float64 {
		return float64(chartHeight-margin) - ((value+yMax)/(2*yMax))*plotHeight
	}

	var sb strings.Builder
	writeChartFrame(&sb, title)

	for idx, digit := range benford.Digits {
		dev := deviations[digit]
		x := float64(margin) + float64(idx)*groupWidth + (groupWidth-barWidth)/2
		top := dev
		if top < 0 {
			top = 0
		}
		y := yPos(top)
		barHeight := (dev / (2 * yMax)) * plotHeight
		if barHeight < 0 {
			barHeight = -barHeight
		}
		fill := positiveFill
		if dev < 0 {
			fill = negativeFill
		}
		fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			x, y, barWidth, barHeight, fill)
		fmt.Fprintf(&sb, `<text x="%.2f" y="%d" font-size="12" text-anchor="middle">%d</text>`+"\n",
			x+barWidth/2, chartHeight-margin+20, digit)
	}

	for i := 0; i < 5; i++ {
		val := yMax * float64(i-2) / 2
		y := yPos(val)
		writeGridline(&sb, y, val)
	}

	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12">Observed - Expected</text>`+"\n", margin, margin-20)
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

func writeChartFrame(sb *strings.Builder, title string) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", chartWidth, chartHeight)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	fmt.Fprintf(sb, `<text x="%d" y="30" font-size="18" text-anchor="middle">%s</text>`+"\n", chartWidth/2, title)
	fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		margin, chartHeight-margin, chartWidth-margin, chartHeight-margin)
	fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		margin, margin, margin, chartHeight-margin)
}

func writeGridline(sb *strings.Builder, y, val float64) {
	fmt.Fprintf(sb, `<line x1="%d" y1="%.2f" x2="%d" y2="%.2f" stroke="#ddd"/>`+"\n",
		margin, y, chartWidth-margin, y)
	fmt.Fprintf(sb, `<text x="%d" y="%.2f" font-size="10" text-anchor="end">%.1f%%</text>`+"\n",
		margin-10, y+4, val)
}

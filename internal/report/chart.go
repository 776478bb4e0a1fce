package report

import (
	"fmt"
	"strings"
)

// ChartSeries is one line on the net-worth history chart.
type ChartSeries struct {
	Name       string
	TargetYear int
	Values     []float64
}

const (
	chartWidth   = 640
	chartHeight  = 280
	chartPadding = 40
)

// LineChartSVG renders a minimal line chart as inline SVG: no legend, no
// clutter, end-of-line labels only. SVG keeps the email self-contained
// with no image attachments.
func LineChartSVG(quarters []string, series []ChartSeries) string {
	var maxValue float64
	points := 0
	for _, s := range series {
		if len(s.Values) > points {
			points = len(s.Values)
		}
		for _, v := range s.Values {
			if v > maxValue {
				maxValue = v
			}
		}
	}
	if points == 0 || maxValue == 0 {
		return ""
	}

	plotWidth := float64(chartWidth - 2*chartPadding)
	plotHeight := float64(chartHeight - 2*chartPadding)

	x := func(i int) float64 {
		if points == 1 {
			return chartPadding + plotWidth/2
		}
		return chartPadding + plotWidth*float64(i)/float64(points-1)
	}
	y := func(v float64) float64 {
		return float64(chartHeight-chartPadding) - plotHeight*v/maxValue
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		chartWidth, chartHeight, chartWidth, chartHeight)

	// Axes
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999" stroke-width="1"/>`,
		chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999" stroke-width="1"/>`,
		chartPadding, chartPadding, chartPadding, chartHeight-chartPadding)

	colors := []string{"#1f77b4", "#2ca02c", "#d62728", "#9467bd"}
	for si, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		color := colors[si%len(colors)]

		var path []string
		for i, v := range s.Values {
			path = append(path, fmt.Sprintf("%.1f,%.1f", x(i), y(v)))
		}
		fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="2" points="%s"/>`,
			color, strings.Join(path, " "))

		last := s.Values[len(s.Values)-1]
		label := fmt.Sprintf("%s — $%s", s.Name, FormatMoneyShort(last))
		if s.TargetYear > 0 {
			label = fmt.Sprintf("%s (Target: %d)", label, s.TargetYear)
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-family="Arial" font-size="11" fill="%s">%s</text>`,
			x(len(s.Values)-1)+6, y(last)+4, color, label)
	}

	// X-axis quarter labels
	for i, q := range quarters {
		if i >= points {
			break
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-family="Arial" font-size="10" fill="#666" text-anchor="middle">%s</text>`,
			x(i), chartHeight-chartPadding+16, q)
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// FormatMoneyShort abbreviates a dollar value: 1.25B, 2.40M, 365K.
func FormatMoneyShort(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.0fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

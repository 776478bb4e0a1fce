package report_test

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/report"
)

// TestRenderHTML tests the email body rendering.
//
// WHY: The rendered HTML is the product the family actually reads. Values
// must be formatted as whole dollars with separators, and a degraded
// calendar must be called out rather than hidden.
func TestRenderHTML(t *testing.T) {
	base := report.Report{
		QuarterLabel: "Q2 2026",
		GeneratedAt:  time.Date(2026, time.July, 1, 6, 0, 0, 0, time.UTC),
		RealEstate: []report.AssetRow{
			{Asset: "Primary Home", Owner: "Parents", CurrentValue: 500_000, QoQChange: 12_500},
			{Asset: "Securities (All Accounts)", Owner: "Kids", CurrentValue: 4_200, QoQChange: -300},
		},
		Securities: []report.SecurityRow{
			{
				Quarter:          "Q2 2026",
				Security:         "VTI",
				Accounts:         "M1 WeeklyDCA",
				MarketValue:      9_000,
				NewInvestment:    1_300,
				SharesAdded:      26,
				EndingQuantity:   36,
				AvgPurchasePrice: 50,
			},
		},
		TotalNetWorth: 513_200,
		TotalQoQ:      12_200,
	}

	t.Run("renders tables with formatted values", func(t *testing.T) {
		html, err := report.RenderHTML(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"Net Worth Report",
			"Q2 2026",
			"$500,000",
			"+$12,500",
			"-$300",
			"$513,200",
			"26.0000",
			"36.0000",
			"$50",
			"M1 WeeklyDCA",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("Rendered HTML should contain %q", want)
			}
		}
	})

	t.Run("marks a degraded calendar", func(t *testing.T) {
		degraded := base
		degraded.Degraded = true

		html, err := report.RenderHTML(degraded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(html, "degraded") {
			t.Error("Expected the degraded notice in the body")
		}

		clean, err := report.RenderHTML(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(clean, "degraded") {
			t.Error("Healthy runs must not show the degraded notice")
		}
	})

	t.Run("embeds the chart SVG unescaped", func(t *testing.T) {
		withChart := base
		withChart.ChartSVG = template.HTML(report.LineChartSVG(
			[]string{"Q1 2026", "Q2 2026"},
			[]report.ChartSeries{{Name: "Total Net Worth", Values: []float64{501_000, 513_200}}},
		))

		html, err := report.RenderHTML(withChart)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(html, "<svg") || strings.Contains(html, "&lt;svg") {
			t.Error("Chart SVG should be embedded without escaping")
		}
	})
}

// TestLineChartSVG tests the inline chart rendering.
func TestLineChartSVG(t *testing.T) {
	t.Run("plots each series with its label", func(t *testing.T) {
		svg := report.LineChartSVG(
			[]string{"Q1 2026", "Q2 2026"},
			[]report.ChartSeries{
				{Name: "Parents", TargetYear: 2040, Values: []float64{100_000, 110_000}},
				{Name: "Kids", Values: []float64{20_000, 21_000}},
			},
		)

		if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
			t.Fatalf("Expected a complete SVG document, got %.60q...", svg)
		}
		if got := strings.Count(svg, "<polyline"); got != 2 {
			t.Errorf("Expected 2 polylines, got %d", got)
		}
		for _, want := range []string{"Parents", "Kids", "(Target: 2040)", "Q1 2026", "Q2 2026", "110K"} {
			if !strings.Contains(svg, want) {
				t.Errorf("SVG should contain %q", want)
			}
		}
	})

	t.Run("renders nothing without data", func(t *testing.T) {
		if svg := report.LineChartSVG(nil, nil); svg != "" {
			t.Errorf("Expected empty output, got %q", svg)
		}
		if svg := report.LineChartSVG([]string{"Q1 2026"}, []report.ChartSeries{{Name: "Zeroes", Values: []float64{0}}}); svg != "" {
			t.Errorf("Expected empty output for all-zero values, got %q", svg)
		}
	})

	t.Run("centers a single point", func(t *testing.T) {
		svg := report.LineChartSVG([]string{"Q2 2026"}, []report.ChartSeries{
			{Name: "Total Net Worth", Values: []float64{513_200}},
		})
		if !strings.Contains(svg, "<polyline") {
			t.Error("Expected a degenerate one-point polyline")
		}
	})
}

// TestFormatMoneyShort tests abbreviated dollar formatting.
func TestFormatMoneyShort(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1_250_000_000, "1.25B"},
		{2_400_000, "2.40M"},
		{365_000, "365K"},
		{950, "950"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := report.FormatMoneyShort(tt.value); got != tt.want {
			t.Errorf("FormatMoneyShort(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

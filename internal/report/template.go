// Package report renders the quarterly net-worth email: asset and DCA
// tables plus an inline SVG chart of snapshot history.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// AssetRow is one line of the net-worth table.
type AssetRow struct {
	Asset        string
	Owner        string
	CurrentValue float64
	QoQChange    float64
}

// SecurityRow is one line of the per-security DCA table.
type SecurityRow struct {
	Quarter          string
	Security         string
	Accounts         string
	MarketValue      float64
	NewInvestment    float64
	SharesAdded      float64
	EndingQuantity   float64
	AvgPurchasePrice float64
	Degraded         bool
}

// Report is everything the email template needs.
type Report struct {
	QuarterLabel  string
	GeneratedAt   time.Time
	RealEstate    []AssetRow
	Securities    []SecurityRow
	TotalNetWorth float64
	TotalQoQ      float64
	ChartSVG      template.HTML
	Degraded      bool
}

var funcs = template.FuncMap{
	"money":  formatMoney,
	"delta":  formatDelta,
	"shares": func(v float64) string { return fmt.Sprintf("%.4f", v) },
}

var emailTemplate = template.Must(template.New("email").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial, sans-serif; font-size:13px; color:#222;">
<h2>Net Worth Report — {{.QuarterLabel}}</h2>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} UTC{{if .Degraded}} <em>(trading-day calendar degraded: nominal Wednesdays used)</em>{{end}}</p>

{{if .ChartSVG}}<div>{{.ChartSVG}}</div>{{end}}

<h3>Assets</h3>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;">
<thead><tr>
<th style="text-align:left; background:#f2f2f2;">Asset</th>
<th style="text-align:left; background:#f2f2f2;">Owner</th>
<th style="text-align:right; background:#f2f2f2;">Current Value</th>
<th style="text-align:right; background:#f2f2f2;">QoQ Change</th>
</tr></thead>
<tbody>
{{range .RealEstate}}<tr>
<td>{{.Asset}}</td><td>{{.Owner}}</td>
<td style="text-align:right;">{{money .CurrentValue}}</td>
<td style="text-align:right;">{{delta .QoQChange}}</td>
</tr>
{{end}}<tr>
<td><b>TOTAL NET WORTH</b></td><td></td>
<td style="text-align:right;"><b>{{money .TotalNetWorth}}</b></td>
<td style="text-align:right;"><b>{{delta .TotalQoQ}}</b></td>
</tr>
</tbody></table>

<h3>Securities — DCA {{.QuarterLabel}}</h3>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;">
<thead><tr>
<th style="text-align:left; background:#f2f2f2;">Quarter</th>
<th style="text-align:left; background:#f2f2f2;">Security</th>
<th style="text-align:left; background:#f2f2f2;">In the Account(s)</th>
<th style="text-align:right; background:#f2f2f2;">Market Value</th>
<th style="text-align:right; background:#f2f2f2;">New Investment</th>
<th style="text-align:right; background:#f2f2f2;">Shares Added</th>
<th style="text-align:right; background:#f2f2f2;">Ending Qty</th>
<th style="text-align:right; background:#f2f2f2;">Avg Price</th>
</tr></thead>
<tbody>
{{range .Securities}}<tr>
<td>{{.Quarter}}</td><td>{{.Security}}</td><td>{{.Accounts}}</td>
<td style="text-align:right;">{{money .MarketValue}}</td>
<td style="text-align:right;">{{money .NewInvestment}}</td>
<td style="text-align:right;">{{shares .SharesAdded}}</td>
<td style="text-align:right;">{{shares .EndingQuantity}}</td>
<td style="text-align:right;">{{if gt .AvgPurchasePrice 0.0}}{{money .AvgPurchasePrice}}{{else}}—{{end}}</td>
</tr>
{{end}}</tbody></table>
</body>
</html>
`))

// RenderHTML renders the email body.
func RenderHTML(r Report) (string, error) {
	var b strings.Builder
	if err := emailTemplate.Execute(&b, r); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

// formatMoney renders $1,234,567 with thousands separators, no cents.
func formatMoney(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	whole := fmt.Sprintf("%.0f", v)

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// formatDelta renders a signed change, em-dash for exactly zero.
func formatDelta(v float64) string {
	if v == 0 {
		return "—"
	}
	if v > 0 {
		return "+" + formatMoney(v)
	}
	return formatMoney(v)
}

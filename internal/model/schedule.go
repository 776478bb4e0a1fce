package model

import "time"

// AdjustedCalendar is the result of resolving nominal Wednesdays to actual
// trading days for a quarter. When the price feed cannot supply trading days
// the builder falls back to the unshifted Wednesdays and marks the calendar
// degraded instead of aborting, so the rest of the pipeline can still run
// with approximate dates.
type AdjustedCalendar struct {
	Nominal  []time.Time `json:"nominal"`
	Adjusted []time.Time `json:"adjusted"`

	// Degraded is true when Adjusted equals Nominal because trading days
	// could not be resolved. FallbackReason carries the feed error text.
	Degraded       bool   `json:"degraded"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// ScheduledContribution expands one funding row into its concrete quarterly
// contribution plan. Dates is empty for NoMoreFunding rows.
type ScheduledContribution struct {
	SecurityFundingRow

	Dates           []time.Time `json:"investment_dates"`
	NumInvestments  int         `json:"num_investments"`
	InvestedDollars float64     `json:"invested_dollars"`
}

// ScheduleResult pairs the per-row contribution plans with the calendar they
// were derived from. Rows preserve the input row order.
type ScheduleResult struct {
	QuarterStart time.Time               `json:"quarter_start"`
	QuarterEnd   time.Time               `json:"quarter_end"`
	Calendar     AdjustedCalendar        `json:"calendar"`
	Rows         []ScheduledContribution `json:"rows"`
}

package model

import "time"

// QuarterQuantityResult extends a scheduled contribution with the share
// quantities resulting from dollar-cost-averaging at historical closing
// prices. AvgPurchasePrice is nil when no shares were added.
type QuarterQuantityResult struct {
	ScheduledContribution

	SharesAdded      float64  `json:"shares_added"`
	EndingQuantity   float64  `json:"ending_quantity"`
	AvgPurchasePrice *float64 `json:"avg_purchase_price"`
}

// QuarterQuantities is the full valuation output for one quarter, one result
// row per input funding row, in input order.
type QuarterQuantities struct {
	QuarterStart time.Time               `json:"quarter_start"`
	QuarterEnd   time.Time               `json:"quarter_end"`
	Calendar     AdjustedCalendar        `json:"calendar"`
	Rows         []QuarterQuantityResult `json:"rows"`
}

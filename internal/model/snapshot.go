package model

import "time"

// Snapshot is the single JSON document persisted between runs. It carries
// just enough state to compute quarter-over-quarter deltas on the next run.
type Snapshot struct {
	RunID          string             `json:"run_id"`
	GeneratedAtUTC time.Time          `json:"generated_at_utc"`
	QuarterLabel   string             `json:"quarter_label"`
	RealEstate     map[string]float64 `json:"real_estate"`
	Securities     map[string]float64 `json:"securities"`
	TotalNetWorth  float64            `json:"total_net_worth"`
}

// RealEstateValue is the computed valuation of one configured property.
type RealEstateValue struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	Mode          string  `json:"mode"`
	County        string  `json:"county"`
	OwnershipPct  float64 `json:"ownership_pct"`
	FallbackValue float64 `json:"fallback_value"`
	AdjustedValue float64 `json:"adjusted_value"`
	OwnedValue    float64 `json:"owned_value"`
}

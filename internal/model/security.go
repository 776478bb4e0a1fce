package model

// FundingType describes how a security is funded for the current quarter.
type FundingType string

const (
	// FundingActive marks a security receiving weekly DCA contributions.
	FundingActive FundingType = "Active"

	// FundingNoMoreFunding marks a security that is held but no longer funded.
	FundingNoMoreFunding FundingType = "NoMoreFunding"
)

// SecurityFundingRow is one validated row of the securities master: a
// security held in an account for an owner bucket, together with its funding
// plan for the quarter. Rows are immutable inputs to the scheduling and
// valuation pipeline.
//
// WeeklyInvestmentDollars is nil when the source cell was blank or not
// numeric; the schedule builder rejects nil amounts on Active rows.
type SecurityFundingRow struct {
	OwnerBucket             string      `json:"owner_bucket"`
	AccountName             string      `json:"account_name"`
	Security                string      `json:"security"`
	Type                    FundingType `json:"type"`
	StartingQuantity        float64     `json:"starting_quantity"`
	WeeklyInvestmentDollars *float64    `json:"weekly_investment_dollars"`
}

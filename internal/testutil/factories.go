package testutil

import (
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// FundingRowBuilder provides a fluent interface for creating test funding rows.
//
// Example usage:
//
//	row := testutil.NewFundingRow().
//	    WithSecurity("VTI").
//	    Active(100).
//	    WithStartingQuantity(10).
//	    Build()
type FundingRowBuilder struct {
	row model.SecurityFundingRow
}

// NewFundingRow creates a FundingRowBuilder with sensible defaults.
func NewFundingRow() *FundingRowBuilder {
	return &FundingRowBuilder{
		row: model.SecurityFundingRow{
			OwnerBucket: "Parents",
			AccountName: "M1 WeeklyDCA",
			Security:    "VTI",
			Type:        model.FundingNoMoreFunding,
		},
	}
}

// WithOwner sets the owner bucket.
func (b *FundingRowBuilder) WithOwner(owner string) *FundingRowBuilder {
	b.row.OwnerBucket = owner
	return b
}

// WithAccount sets the account name.
func (b *FundingRowBuilder) WithAccount(account string) *FundingRowBuilder {
	b.row.AccountName = account
	return b
}

// WithSecurity sets the ticker symbol.
func (b *FundingRowBuilder) WithSecurity(security string) *FundingRowBuilder {
	b.row.Security = security
	return b
}

// WithStartingQuantity sets the shares held before the quarter.
func (b *FundingRowBuilder) WithStartingQuantity(qty float64) *FundingRowBuilder {
	b.row.StartingQuantity = qty
	return b
}

// Active marks the row as actively funded with the given weekly dollars.
func (b *FundingRowBuilder) Active(weeklyDollars float64) *FundingRowBuilder {
	b.row.Type = model.FundingActive
	b.row.WeeklyInvestmentDollars = &weeklyDollars
	return b
}

// ActiveWithoutAmount marks the row Active but leaves the weekly amount nil,
// as produced by a non-numeric source cell.
func (b *FundingRowBuilder) ActiveWithoutAmount() *FundingRowBuilder {
	b.row.Type = model.FundingActive
	b.row.WeeklyInvestmentDollars = nil
	return b
}

// NoMoreFunding marks the row as held but no longer funded.
func (b *FundingRowBuilder) NoMoreFunding() *FundingRowBuilder {
	b.row.Type = model.FundingNoMoreFunding
	b.row.WeeklyInvestmentDollars = nil
	return b
}

// WithType sets an arbitrary funding type, including invalid ones.
func (b *FundingRowBuilder) WithType(t model.FundingType) *FundingRowBuilder {
	b.row.Type = t
	return b
}

// Build returns the constructed row.
func (b *FundingRowBuilder) Build() model.SecurityFundingRow {
	return b.row
}

// Date builds a midnight-UTC date; a concise literal for test tables.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a Now func pinned to the given date.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

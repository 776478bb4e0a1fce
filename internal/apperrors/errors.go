package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Input validation errors represent malformed funding rows.
// These errors are always fatal for the affected computation and are never
// downgraded to a partial result.
var (
	// ErrInvalidFundingType indicates a funding row whose type is neither
	// "Active" nor "NoMoreFunding".
	ErrInvalidFundingType = errors.New("invalid funding type")

	// ErrInvalidFundingAmount indicates an Active funding row whose weekly
	// investment amount is missing or not numeric.
	ErrInvalidFundingAmount = errors.New("weekly investment dollars must be numeric for Active rows")

	// ErrMissingRequiredColumn indicates the securities master is missing a
	// required column after alias normalization.
	ErrMissingRequiredColumn = errors.New("missing required column")

	// ErrMissingRequiredField indicates a required cell is blank in the
	// securities master.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Price feed errors represent upstream data availability problems.
var (
	// ErrDataUnavailable indicates the price feed returned no rows for a
	// requested symbol set and window. It is fatal for direct panel calls but
	// absorbed by the schedule builder's degraded-mode fallback.
	ErrDataUnavailable = errors.New("no price data returned for requested window")

	// ErrNoSymbols indicates a price fetch was requested with an empty or
	// all-blank symbol list.
	ErrNoSymbols = errors.New("no symbols provided for pricing")
)

// Calendar errors represent failures of the trading-day shifting algorithm.
// They propagate unless caught by the schedule builder's fallback wrapper.
var (
	// ErrNoTradingDayAfter indicates no trading day exists after a nominal
	// contribution date within the supplied trading-day set.
	ErrNoTradingDayAfter = errors.New("no trading day after date")

	// ErrEmptyTradingDayCalendar indicates the trading-day set is empty while
	// nominal dates still need shifting.
	ErrEmptyTradingDayCalendar = errors.New("no trading days available to shift contribution dates")
)

// Snapshot and configuration errors.
var (
	// ErrSnapshotNotFound indicates no snapshot has been written yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrMissingEnvVar indicates a required environment variable is unset.
	ErrMissingEnvVar = errors.New("missing required environment variable")
)

// MissingPrice identifies one absent (symbol, date) closing price.
type MissingPrice struct {
	Symbol string
	Date   time.Time
}

func (m MissingPrice) String() string {
	return fmt.Sprintf("%s@%s", m.Symbol, m.Date.Format("2006-01-02"))
}

// MissingClosePricesError reports every (symbol, date) pair for which a
// required closing price is absent after a successful panel fetch. It is a
// hard validation gate: silently skipping a contribution date would
// understate invested capital, so callers receive the full list instead of a
// partial computation.
type MissingClosePricesError struct {
	Pairs []MissingPrice
}

func (e *MissingClosePricesError) Error() string {
	formatted := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		formatted[i] = p.String()
	}
	return "missing close prices for: " + strings.Join(formatted, ", ")
}

// AsMissingClosePrices reports whether err wraps a MissingClosePricesError
// and returns it so callers can inspect the missing pairs.
func AsMissingClosePrices(err error) (*MissingClosePricesError, bool) {
	var mcp *MissingClosePricesError
	if errors.As(err, &mcp) {
		return mcp, true
	}
	return nil, false
}

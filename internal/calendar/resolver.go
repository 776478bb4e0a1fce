package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
)

// PriceSource is the slice of the price source adapter the resolver needs.
type PriceSource interface {
	FetchClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (marketdata.PricePanel, error)
}

// tradingDayBuffer extends the fetch window past the requested end so
// end-of-range feed lag cannot truncate the trading-day calendar.
const tradingDayBuffer = 7

// Resolver derives the trading-day calendar for a window from the price
// feed. Deriving trading days from the same panel used for valuations keeps
// "days we think are open" and "days we have prices for" consistent, at the
// cost of a little redundant fetching.
//
// Now is injectable so tests can pin the run's current date.
type Resolver struct {
	source PriceSource
	Now    func() time.Time
}

// NewResolver creates a Resolver backed by the given price source.
func NewResolver(source PriceSource) *Resolver {
	return &Resolver{
		source: source,
		Now:    time.Now,
	}
}

// ResolveTradingDays returns the sorted trading days for which the feed has
// closing prices for symbol in [start, end+buffer]. A window lying entirely
// in the future is answered with synthetic business days instead of a feed
// call, since no real trading data can exist yet. Fails with
// ErrDataUnavailable when the feed returns no rows for the window.
func (r *Resolver) ResolveTradingDays(ctx context.Context, symbol string, start, end time.Time) ([]time.Time, error) {
	first := marketdata.Date(start)
	last := marketdata.Date(end)
	if first.After(last) {
		return nil, nil
	}

	today := marketdata.Date(r.Now())
	if first.After(today) {
		return BusinessDays(first, last), nil
	}

	fetchEnd := last.AddDate(0, 0, tradingDayBuffer)
	panel, err := r.source.FetchClosingPrices(ctx, []string{symbol}, first, fetchEnd)
	if err != nil {
		return nil, fmt.Errorf("resolving trading days for %s: %w", symbol, err)
	}

	days := panel.Dates()
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %s between %s and %s",
			apperrors.ErrDataUnavailable, symbol,
			first.Format("2006-01-02"), fetchEnd.Format("2006-01-02"))
	}
	return days, nil
}

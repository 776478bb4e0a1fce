// Package marketdata adapts the Yahoo Finance client into the price panel
// abstraction the scheduling and valuation pipeline consumes: a sparse table
// of closing prices indexed by (trading date, normalized symbol).
package marketdata

import (
	"sort"
	"time"
)

// Date normalizes a timestamp to midnight UTC so time.Time values can be
// used as exact map keys and compared across packages.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PricePanel maps (trading date, normalized symbol) to a closing price.
// The panel is sparse: an absent pair means "no price", never zero. The
// panel is also the single point of truth for which days the market was
// open, so the calendar resolver derives trading days from it rather than
// keeping an independent holiday calendar.
type PricePanel struct {
	closes map[string]map[time.Time]float64
}

// NewPricePanel returns an empty panel.
func NewPricePanel() PricePanel {
	return PricePanel{closes: make(map[string]map[time.Time]float64)}
}

// Set records a closing price for a symbol on a date. Non-positive prices
// are dropped; Yahoo encodes missing days as nulls that decode to zero.
func (p PricePanel) Set(symbol string, date time.Time, close float64) {
	if close <= 0 {
		return
	}
	day := Date(date)
	if p.closes[symbol] == nil {
		p.closes[symbol] = make(map[time.Time]float64)
	}
	p.closes[symbol][day] = close
}

// Close returns the closing price for a symbol on a date, and whether the
// panel holds one.
func (p PricePanel) Close(symbol string, date time.Time) (float64, bool) {
	prices, ok := p.closes[symbol]
	if !ok {
		return 0, false
	}
	close, ok := prices[Date(date)]
	return close, ok
}

// IsEmpty reports whether the panel holds no prices at all.
func (p PricePanel) IsEmpty() bool {
	for _, prices := range p.closes {
		if len(prices) > 0 {
			return false
		}
	}
	return true
}

// Symbols returns the symbols with at least one price, sorted.
func (p PricePanel) Symbols() []string {
	symbols := make([]string, 0, len(p.closes))
	for symbol, prices := range p.closes {
		if len(prices) > 0 {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Dates returns the union of all dates with a price, sorted ascending.
// For a single-symbol panel this is exactly the trading-day calendar.
func (p PricePanel) Dates() []time.Time {
	seen := make(map[time.Time]bool)
	for _, prices := range p.closes {
		for day := range prices {
			seen[day] = true
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

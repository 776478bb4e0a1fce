package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
)

// StubPriceSource is a canned price source for service and calendar tests.
// It satisfies both the calendar and valuation PriceSource interfaces.
type StubPriceSource struct {
	// Panel is returned from FetchClosingPrices when Err is nil.
	Panel marketdata.PricePanel
	// Err is returned from FetchClosingPrices when set.
	Err error
	// SinglePrices maps symbol to the price FetchClosingPriceSingle returns.
	SinglePrices map[string]float64
	// SingleErr is returned from FetchClosingPriceSingle when set.
	SingleErr error

	mu           sync.Mutex
	fetchCalls   int
	fetchSymbols [][]string
}

// FetchClosingPrices returns the configured panel or error, recording the call.
func (s *StubPriceSource) FetchClosingPrices(_ context.Context, symbols []string, _, _ time.Time) (marketdata.PricePanel, error) {
	s.mu.Lock()
	s.fetchCalls++
	s.fetchSymbols = append(s.fetchSymbols, symbols)
	s.mu.Unlock()

	if s.Err != nil {
		return marketdata.PricePanel{}, s.Err
	}
	return s.Panel, nil
}

// FetchClosingPriceSingle returns the configured per-symbol price.
func (s *StubPriceSource) FetchClosingPriceSingle(_ context.Context, symbol string, _ time.Time) (float64, error) {
	if s.SingleErr != nil {
		return 0, s.SingleErr
	}
	return s.SinglePrices[marketdata.NormalizeSymbol(symbol)], nil
}

// FetchCalls reports how many panel fetches were made.
func (s *StubPriceSource) FetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls
}

// LastFetchSymbols returns the symbol list of the most recent panel fetch.
func (s *StubPriceSource) LastFetchSymbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fetchSymbols) == 0 {
		return nil
	}
	return s.fetchSymbols[len(s.fetchSymbols)-1]
}

// BuildPanel creates a panel with one symbol priced identically on every
// given date.
func BuildPanel(symbol string, dates []time.Time, price float64) marketdata.PricePanel {
	panel := marketdata.NewPricePanel()
	for _, date := range dates {
		panel.Set(symbol, date, price)
	}
	return panel
}

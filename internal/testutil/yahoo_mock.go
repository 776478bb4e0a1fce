package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/yahoo"
)

// MockFinanceClient is a mock implementation of yahoo.Client for testing.
// It returns predefined per-symbol responses instead of making API calls.
type MockFinanceClient struct {
	// Responses maps symbol to the response returned from QueryDailyRange.
	Responses map[string]yahoo.Response
	// Errs maps symbol to an error returned from QueryDailyRange.
	Errs map[string]error

	mu         sync.Mutex
	queryCount int
}

// NewMockFinanceClient creates an empty mock; configure it with WithChart.
func NewMockFinanceClient() *MockFinanceClient {
	return &MockFinanceClient{
		Responses: make(map[string]yahoo.Response),
		Errs:      make(map[string]error),
	}
}

// WithChart configures the mock to answer queries for symbol with the given
// daily closes.
func (m *MockFinanceClient) WithChart(symbol string, dates []time.Time, closes []float64) *MockFinanceClient {
	m.Responses[symbol] = MakeChartResponse(symbol, dates, closes)
	return m
}

// WithError configures the mock to fail queries for symbol.
func (m *MockFinanceClient) WithError(symbol string, err error) *MockFinanceClient {
	m.Errs[symbol] = err
	return m
}

// QueryDailyRange returns the canned response for the symbol.
func (m *MockFinanceClient) QueryDailyRange(_ context.Context, symbol string, _, _ time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	m.queryCount++
	m.mu.Unlock()

	if err, ok := m.Errs[symbol]; ok {
		return yahoo.Response{}, err
	}
	resp, ok := m.Responses[symbol]
	if !ok {
		return yahoo.Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return resp, nil
}

// ParseChart delegates to the real implementation since it is pure logic.
func (m *MockFinanceClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	client := yahoo.NewFinanceClient()
	return client.ParseChart(yahooResult)
}

// QueryCount reports how many queries were made.
func (m *MockFinanceClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// MakeChartResponse builds a raw chart API response with the given daily
// closes. Open/high/low mirror the close, volume is synthetic.
func MakeChartResponse(symbol string, dates []time.Time, closes []float64) yahoo.Response {
	timestamps := make([]int64, len(dates))
	volumes := make([]int64, len(dates))
	for i, date := range dates {
		timestamps[i] = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).Unix()
		volumes[i] = 1_000_000
	}

	// The nested response structs are anonymous, so the fixture is built
	// from equivalent JSON rather than struct literals.
	payload := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []map[string]interface{}{{
				"meta": map[string]interface{}{
					"currency": "USD",
					"symbol":   symbol,
				},
				"timestamp": timestamps,
				"indicators": map[string]interface{}{
					"quote": []map[string]interface{}{{
						"open":   closes,
						"close":  closes,
						"volume": volumes,
						"high":   closes,
						"low":    closes,
					}},
				},
			}},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("building mock chart response: %v", err))
	}
	var resp yahoo.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		panic(fmt.Sprintf("parsing mock chart response: %v", err))
	}
	return resp
}

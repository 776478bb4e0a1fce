package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// v8 chart API. It maps directly onto the wire format: an array of results
// (typically one), each carrying symbol metadata, Unix timestamps, and
// parallel arrays of price indicators, plus an optional API error.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
				LongName     string `json:"longName"`
				ShortName    string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// PriceChart is the parsed, application-facing form of a chart response:
// symbol metadata plus one Indicators entry per trading day.
type PriceChart struct {
	Currency     string       `json:"currency"`
	Symbol       string       `json:"symbol"`
	ExchangeName string       `json:"exchangeName"`
	LongName     string       `json:"longName"`
	ShortName    string       `json:"shortName"`
	Indicators   []Indicators `json:"indicators"`
}

// Indicators is one trading day's OHLCV data. Date is truncated to midnight
// UTC. A zero PriceClose means Yahoo returned null for that day.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}

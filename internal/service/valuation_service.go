package service

import (
	"context"
	"sort"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// PriceSource is the slice of the price source adapter the valuation engine
// needs. Implemented by marketdata.Source and mocked in tests.
type PriceSource interface {
	FetchClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (marketdata.PricePanel, error)
	FetchClosingPriceSingle(ctx context.Context, symbol string, date time.Time) (float64, error)
}

// ValuationService converts scheduled contributions into share quantities
// using historical closing prices: true dollar-cost-averaging, where each
// weekly dollar amount buys dollars/price shares on its specific day.
type ValuationService struct {
	scheduleService *ScheduleService
	source          PriceSource
}

// NewValuationService creates a ValuationService.
func NewValuationService(scheduleService *ScheduleService, source PriceSource) *ValuationService {
	return &ValuationService{
		scheduleService: scheduleService,
		source:          source,
	}
}

// ComputeQuarterQuantities builds the quarter's schedule, fetches one shared
// price panel covering every contribution date across all rows, and derives
// per-row share totals and ending quantities.
//
// All symbols are batched into a single panel fetch so the number of
// outbound window requests stays constant per run instead of growing with
// the number of securities. Missing (symbol, date) prices after a successful
// fetch are a hard failure naming every absent pair; a silently skipped
// contribution date would understate invested capital.
func (s *ValuationService) ComputeQuarterQuantities(ctx context.Context, rows []model.SecurityFundingRow, quarter calendar.Quarter) (model.QuarterQuantities, error) {
	schedule, err := s.scheduleService.BuildSchedule(ctx, rows, quarter)
	if err != nil {
		return model.QuarterQuantities{}, err
	}

	result := model.QuarterQuantities{
		QuarterStart: schedule.QuarterStart,
		QuarterEnd:   schedule.QuarterEnd,
		Calendar:     schedule.Calendar,
		Rows:         make([]model.QuarterQuantityResult, 0, len(schedule.Rows)),
	}

	investmentDates := collectInvestmentDates(schedule.Rows)

	var panel marketdata.PricePanel
	if len(investmentDates) > 0 {
		symbols := make([]string, 0, len(schedule.Rows))
		for _, row := range schedule.Rows {
			symbols = append(symbols, row.Security)
		}
		panel, err = s.source.FetchClosingPrices(ctx, symbols,
			investmentDates[0], investmentDates[len(investmentDates)-1])
		if err != nil {
			return model.QuarterQuantities{}, err
		}
	}

	// Validate coverage for every row before computing anything, so the
	// error names the complete set of missing pairs in one pass.
	if missing := findMissingPrices(panel, schedule.Rows); len(missing) > 0 {
		return model.QuarterQuantities{}, &apperrors.MissingClosePricesError{Pairs: missing}
	}

	for _, row := range schedule.Rows {
		computed := model.QuarterQuantityResult{ScheduledContribution: row}

		if row.Type == model.FundingActive {
			symbol := marketdata.NormalizeSymbol(row.Security)
			for _, date := range row.Dates {
				close, _ := panel.Close(symbol, date)
				computed.SharesAdded += *row.WeeklyInvestmentDollars / close
			}
			if computed.SharesAdded > 0 {
				avg := row.InvestedDollars / computed.SharesAdded
				computed.AvgPurchasePrice = &avg
			}
		}

		computed.EndingQuantity = row.StartingQuantity + computed.SharesAdded
		result.Rows = append(result.Rows, computed)
	}

	return result, nil
}

// MarketValue prices a holding at a specific date using the single-point
// lookup path: ending quantity times that day's close.
func (s *ValuationService) MarketValue(ctx context.Context, symbol string, quantity float64, date time.Time) (float64, error) {
	if quantity == 0 {
		return 0, nil
	}
	close, err := s.source.FetchClosingPriceSingle(ctx, symbol, date)
	if err != nil {
		return 0, err
	}
	return quantity * close, nil
}

// collectInvestmentDates returns the deduplicated, sorted union of all
// contribution dates across rows. It defines the price-fetch window.
func collectInvestmentDates(rows []model.ScheduledContribution) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, row := range rows {
		for _, date := range row.Dates {
			day := marketdata.Date(date)
			if !seen[day] {
				seen[day] = true
				dates = append(dates, day)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// findMissingPrices lists every (symbol, date) pair an Active row needs that
// the panel does not hold.
func findMissingPrices(panel marketdata.PricePanel, rows []model.ScheduledContribution) []apperrors.MissingPrice {
	var missing []apperrors.MissingPrice
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.Type != model.FundingActive {
			continue
		}
		symbol := marketdata.NormalizeSymbol(row.Security)
		for _, date := range row.Dates {
			if _, ok := panel.Close(symbol, date); ok {
				continue
			}
			pair := apperrors.MissingPrice{Symbol: symbol, Date: marketdata.Date(date)}
			if !seen[pair.String()] {
				seen[pair.String()] = true
				missing = append(missing, pair)
			}
		}
	}
	return missing
}

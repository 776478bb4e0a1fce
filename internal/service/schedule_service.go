package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// DefaultProbeSymbol is used to probe trading-day availability when every
// funding row has a blank security.
const DefaultProbeSymbol = "SPY"

// ScheduleService expands funding rows into concrete quarterly DCA
// contribution schedules: nominal Wednesdays shifted onto actual trading
// days, with a degraded fallback when the price feed cannot say which days
// the market was open.
type ScheduleService struct {
	resolver    *calendar.Resolver
	probeSymbol string
}

// NewScheduleService creates a ScheduleService. probeSymbol is the default
// ticker used to probe trading-day availability; blank selects
// DefaultProbeSymbol.
func NewScheduleService(resolver *calendar.Resolver, probeSymbol string) *ScheduleService {
	if probeSymbol == "" {
		probeSymbol = DefaultProbeSymbol
	}
	return &ScheduleService{
		resolver:    resolver,
		probeSymbol: probeSymbol,
	}
}

// BuildSchedule expands each funding row into its contribution dates and
// total invested dollars for the quarter. Output rows preserve input order.
//
// Contributions are nominally weekly on Wednesdays. When the feed supplies
// trading days, each Wednesday is shifted forward onto the nearest open day;
// when resolving or shifting fails for any reason the nominal Wednesdays are
// used unchanged and the calendar is marked degraded. Funding totals are
// unaffected by the fallback since the count of Wednesdays does not change,
// but downstream price lookups may then target non-trading dates.
func (s *ScheduleService) BuildSchedule(ctx context.Context, rows []model.SecurityFundingRow, quarter calendar.Quarter) (model.ScheduleResult, error) {
	wednesdays := calendar.ListWednesdays(quarter.Start, quarter.End)
	adjusted := s.resolveCalendar(ctx, wednesdays, probeSymbolFor(rows, s.probeSymbol))

	result := model.ScheduleResult{
		QuarterStart: quarter.Start,
		QuarterEnd:   quarter.End,
		Calendar:     adjusted,
		Rows:         make([]model.ScheduledContribution, 0, len(rows)),
	}

	for _, row := range rows {
		contribution := model.ScheduledContribution{SecurityFundingRow: row}

		switch row.Type {
		case model.FundingActive:
			if row.WeeklyInvestmentDollars == nil {
				return model.ScheduleResult{}, fmt.Errorf("%w: %s in %s",
					apperrors.ErrInvalidFundingAmount, row.Security, row.AccountName)
			}
			contribution.Dates = append([]time.Time(nil), adjusted.Adjusted...)
			contribution.NumInvestments = len(contribution.Dates)
			contribution.InvestedDollars = *row.WeeklyInvestmentDollars * float64(contribution.NumInvestments)

		case model.FundingNoMoreFunding:
			// Held but no longer funded: empty schedule, zero invested.

		default:
			return model.ScheduleResult{}, fmt.Errorf("%w: %q for %s",
				apperrors.ErrInvalidFundingType, row.Type, row.Security)
		}

		result.Rows = append(result.Rows, contribution)
	}

	return result, nil
}

// resolveCalendar shifts the nominal Wednesdays onto trading days. Feed and
// shifting failures are absorbed here: refusing to schedule would be
// strictly worse than an approximate schedule for a report that must still
// produce an answer, so the nominal dates are kept and the calendar is
// marked degraded.
func (s *ScheduleService) resolveCalendar(ctx context.Context, wednesdays []time.Time, probeSymbol string) model.AdjustedCalendar {
	result := model.AdjustedCalendar{
		Nominal:  wednesdays,
		Adjusted: wednesdays,
	}
	if len(wednesdays) == 0 {
		return result
	}

	tradingDays, err := s.resolver.ResolveTradingDays(ctx, probeSymbol,
		wednesdays[0], wednesdays[len(wednesdays)-1])
	if err == nil {
		var shifted []time.Time
		shifted, err = calendar.ShiftToTradingDays(wednesdays, tradingDays)
		if err == nil {
			result.Adjusted = shifted
			return result
		}
	}

	log.Printf("trading-day resolution failed, falling back to nominal Wednesdays: %v", err)
	result.Degraded = true
	result.FallbackReason = err.Error()
	return result
}

// probeSymbolFor picks the first non-blank security across rows, or the
// configured default when all are blank.
func probeSymbolFor(rows []model.SecurityFundingRow, fallback string) string {
	for _, row := range rows {
		if row.Security != "" {
			return row.Security
		}
	}
	return fallback
}

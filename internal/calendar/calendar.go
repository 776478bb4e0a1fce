// Package calendar turns calendar quarters into concrete trading-day
// contribution schedules: quarter bounds, weekly Wednesday enumeration, and
// forward-shifting of nominal dates onto days the market was actually open.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
)

// Quarter is one calendar quarter, both bounds inclusive. Start is always
// the first day of January, April, July, or October.
type Quarter struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// QuarterOf returns the calendar quarter containing the given date.
func QuarterOf(t time.Time) Quarter {
	day := marketdata.Date(t)
	quarter := (int(day.Month()) - 1) / 3
	startMonth := time.Month(quarter*3 + 1)
	start := time.Date(day.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	// First day of the next quarter, minus one day.
	end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	return Quarter{Start: start, End: end}
}

// Contains reports whether the date falls within the quarter.
func (q Quarter) Contains(t time.Time) bool {
	day := marketdata.Date(t)
	return !day.Before(q.Start) && !day.After(q.End)
}

// Label formats the quarter as "Q2 2026".
func (q Quarter) Label() string {
	n := (int(q.Start.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", n, q.Start.Year())
}

// ListWednesdays returns every Wednesday in [start, end], ascending. The
// result is empty when start is after end or the window holds no Wednesday.
func ListWednesdays(start, end time.Time) []time.Time {
	first := marketdata.Date(start)
	last := marketdata.Date(end)
	if first.After(last) {
		return nil
	}

	offset := (int(time.Wednesday) - int(first.Weekday()) + 7) % 7
	current := first.AddDate(0, 0, offset)

	var wednesdays []time.Time
	for !current.After(last) {
		wednesdays = append(wednesdays, current)
		current = current.AddDate(0, 0, 7)
	}
	return wednesdays
}

// BusinessDays returns every Monday through Friday in [start, end],
// ascending. Used when a window lies entirely in the future and no real
// trading data can exist yet.
func BusinessDays(start, end time.Time) []time.Time {
	first := marketdata.Date(start)
	last := marketdata.Date(end)

	var days []time.Time
	for current := first; !current.After(last); current = current.AddDate(0, 0, 1) {
		switch current.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days = append(days, current)
		}
	}
	return days
}

// ShiftToTradingDays maps each nominal Wednesday onto a trading day: the
// Wednesday itself when the market was open, otherwise the earliest trading
// day strictly after it. Shifting is forward-only so a contribution never
// executes earlier than intended. tradingDays must be sorted ascending.
func ShiftToTradingDays(wednesdays, tradingDays []time.Time) ([]time.Time, error) {
	if len(wednesdays) == 0 {
		return nil, nil
	}
	if len(tradingDays) == 0 {
		return nil, apperrors.ErrEmptyTradingDayCalendar
	}

	tradingSet := make(map[time.Time]bool, len(tradingDays))
	for _, day := range tradingDays {
		tradingSet[marketdata.Date(day)] = true
	}

	shifted := make([]time.Time, 0, len(wednesdays))
	for _, wed := range wednesdays {
		day := marketdata.Date(wed)
		if tradingSet[day] {
			shifted = append(shifted, day)
			continue
		}
		idx := sort.Search(len(tradingDays), func(i int) bool {
			return tradingDays[i].After(day)
		})
		if idx >= len(tradingDays) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoTradingDayAfter, day.Format("2006-01-02"))
		}
		shifted = append(shifted, marketdata.Date(tradingDays[idx]))
	}
	return shifted, nil
}

package handlers_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/testutil"
)

// q2 2026 is the fixture quarter; every request pins date=2026-06-30 so the
// handlers never fall back to the real clock.
var (
	fixtureQuarter = calendar.Quarter{
		Start: testutil.Date(2026, time.April, 1),
		End:   testutil.Date(2026, time.June, 30),
	}
	fixtureNow = testutil.Date(2026, time.June, 30)
)

// writeSecuritiesMaster writes a small master CSV and returns its path.
func writeSecuritiesMaster(t *testing.T, rows ...string) string {
	t.Helper()
	lines := append([]string{
		"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
	}, rows...)
	path := filepath.Join(t.TempDir(), "securities.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("writing securities master: %v", err)
	}
	return path
}

// newScheduleService builds a schedule service whose probe feed knows every
// business day of the fixture quarter.
func newScheduleService() *service.ScheduleService {
	stub := &testutil.StubPriceSource{
		Panel: testutil.BuildPanel("VTI",
			calendar.BusinessDays(fixtureQuarter.Start, fixtureQuarter.End.AddDate(0, 0, 7)), 50),
	}
	resolver := calendar.NewResolver(stub)
	resolver.Now = testutil.FixedClock(fixtureNow)
	return service.NewScheduleService(resolver, "")
}

// newValuationService builds a valuation service over the given panel.
func newValuationService(panel marketdata.PricePanel) *service.ValuationService {
	stub := &testutil.StubPriceSource{Panel: panel}
	return service.NewValuationService(newScheduleService(), stub)
}

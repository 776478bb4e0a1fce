package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/mailer"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/testutil"
)

// fakeMailer records the last message instead of delivering it.
type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) SendHTML(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// reportFixture wires a full report service over temp files and stub feeds,
// pinned to June 30 2026 so every run targets Q2 2026.
type reportFixture struct {
	service   *service.ReportService
	snapshots *service.SnapshotService
	mailer    *fakeMailer
	panelStub *testutil.StubPriceSource
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	dir := t.TempDir()
	masterPath := filepath.Join(dir, "securities.csv")
	master := strings.Join([]string{
		"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
		"Parents,M1 WeeklyDCA,VTI,Active,10,100",
		"Kids,529 Plan,VXUS,NoMoreFunding,42,",
	}, "\n")
	if err := os.WriteFile(masterPath, []byte(master), 0o644); err != nil {
		t.Fatalf("writing securities master: %v", err)
	}

	quarter := q2of2026()
	wednesdays := calendar.ListWednesdays(quarter.Start, quarter.End)
	now := testutil.Date(2026, time.June, 30)

	probeStub := &testutil.StubPriceSource{
		Panel: testutil.BuildPanel("VTI", calendar.BusinessDays(quarter.Start, quarter.End.AddDate(0, 0, 7)), 50),
	}
	resolver := calendar.NewResolver(probeStub)
	resolver.Now = testutil.FixedClock(now)
	scheduleService := service.NewScheduleService(resolver, "")

	panelStub := &testutil.StubPriceSource{
		Panel:        testutil.BuildPanel("VTI", wednesdays, 50),
		SinglePrices: map[string]float64{"VTI": 250, "VXUS": 100},
	}
	valuation := service.NewValuationService(scheduleService, panelStub)

	realEstate := service.NewRealEstateService(map[string]config.RealEstateConfig{
		"primary_home": {Mode: service.ModeFallbackOnly, FallbackValue: 500_000},
	}, config.Assumptions{})

	snapshots := service.NewSnapshotService(filepath.Join(dir, "snapshots"))
	sender := &fakeMailer{}

	cfg := &config.Config{
		Tracker: config.TrackerConfig{
			SecuritiesMaster: masterPath,
			Email: config.EmailConfig{
				From:  "tracker@example.com",
				ToEnv: "REPORT_RECIPIENT",
			},
		},
	}

	svc := service.NewReportService(cfg, valuation, realEstate, snapshots, sender)
	svc.Now = testutil.FixedClock(now)

	return &reportFixture{
		service:   svc,
		snapshots: snapshots,
		mailer:    sender,
		panelStub: panelStub,
	}
}

// TestReportService_Run tests the full quarterly orchestration.
//
// WHY: The run stitches every stage together. Totals must reflect holdings
// priced at quarter end plus real estate, and the snapshot must only be
// written after every other stage succeeded.
func TestReportService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("produces totals and persists the snapshot", func(t *testing.T) {
		f := newReportFixture(t)

		result, err := f.service.Run(ctx, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snap := result.Snapshot
		// VTI ends at 36 shares priced 250, VXUS holds 42 priced 100.
		if !relClose(snap.Securities["Parents"], 9_000) {
			t.Errorf("Securities[Parents] = %v, want 9000", snap.Securities["Parents"])
		}
		if !relClose(snap.Securities["Kids"], 4_200) {
			t.Errorf("Securities[Kids] = %v, want 4200", snap.Securities["Kids"])
		}
		if !relClose(snap.TotalNetWorth, 513_200) {
			t.Errorf("TotalNetWorth = %v, want 513200", snap.TotalNetWorth)
		}
		if snap.QuarterLabel != "Q2 2026" {
			t.Errorf("QuarterLabel = %q, want Q2 2026", snap.QuarterLabel)
		}
		if snap.RunID == "" {
			t.Error("Expected a run ID")
		}
		if result.EmailSent {
			t.Error("EmailSent should be false when email was not requested")
		}
		if !strings.Contains(result.HTML, "Q2 2026") || !strings.Contains(result.HTML, "<svg") {
			t.Error("Rendered HTML should contain the quarter label and chart")
		}

		persisted, err := f.snapshots.LoadLatest()
		if err != nil {
			t.Fatalf("LoadLatest after run: %v", err)
		}
		if persisted.RunID != snap.RunID {
			t.Errorf("Persisted RunID = %q, want %q", persisted.RunID, snap.RunID)
		}
	})

	t.Run("diffs against the previous snapshot", func(t *testing.T) {
		f := newReportFixture(t)
		previous := model.Snapshot{
			RunID:         "prev-run",
			QuarterLabel:  "Q1 2026",
			RealEstate:    map[string]float64{"primary_home": 500_000},
			Securities:    map[string]float64{"Parents": 8_000, "Kids": 4_200},
			TotalNetWorth: 512_200,
		}
		if err := f.snapshots.SaveLatest(previous); err != nil {
			t.Fatalf("seeding previous snapshot: %v", err)
		}

		result, err := f.service.Run(ctx, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Parents moved from 8000 to 9000.
		if !strings.Contains(result.HTML, "+$1,000") {
			t.Error("Expected the Parents QoQ delta in the rendered report")
		}
		if result.Snapshot.RunID == previous.RunID {
			t.Error("Expected a fresh run ID")
		}
	})

	t.Run("sends the report email when requested", func(t *testing.T) {
		f := newReportFixture(t)
		t.Setenv("REPORT_RECIPIENT", "family@example.com")

		result, err := f.service.Run(ctx, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.EmailSent {
			t.Error("Expected EmailSent to be true")
		}
		if len(f.mailer.sent) != 1 {
			t.Fatalf("Expected 1 email, got %d", len(f.mailer.sent))
		}
		msg := f.mailer.sent[0]
		if msg.To != "family@example.com" {
			t.Errorf("To = %q, want family@example.com", msg.To)
		}
		if msg.Subject != "Quarterly Net Worth Report" {
			t.Errorf("Subject = %q, want the default subject", msg.Subject)
		}
		if msg.HTMLBody != result.HTML {
			t.Error("Email body should be the rendered report")
		}
	})

	t.Run("fails without a recipient and keeps the old baseline", func(t *testing.T) {
		f := newReportFixture(t)

		_, err := f.service.Run(ctx, true)
		if !errors.Is(err, apperrors.ErrMissingEnvVar) {
			t.Fatalf("Expected ErrMissingEnvVar, got %v", err)
		}

		if _, err := f.snapshots.LoadLatest(); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("A failed run must not write a snapshot, got %v", err)
		}
	})

	t.Run("aborts before valuing when a close is missing", func(t *testing.T) {
		f := newReportFixture(t)
		quarter := q2of2026()
		wednesdays := calendar.ListWednesdays(quarter.Start, quarter.End)
		panel := marketdata.NewPricePanel()
		for _, day := range wednesdays[1:] {
			panel.Set("VTI", day, 50)
		}
		f.panelStub.Panel = panel

		_, err := f.service.Run(ctx, false)
		missing, ok := apperrors.AsMissingClosePrices(err)
		if !ok {
			t.Fatalf("Expected MissingClosePricesError, got %v", err)
		}
		if len(missing.Pairs) != 1 || missing.Pairs[0].Symbol != "VTI" {
			t.Errorf("Missing pairs = %v, want one VTI pair", missing.Pairs)
		}
		if _, err := f.snapshots.LoadLatest(); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("A failed run must not write a snapshot, got %v", err)
		}
	})
}

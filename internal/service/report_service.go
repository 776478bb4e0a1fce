package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/ingest"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/mailer"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/report"
)

// ReportMailer delivers a rendered report. Implemented by mailer.GmailSender.
type ReportMailer interface {
	SendHTML(ctx context.Context, msg mailer.Message) error
}

// RunResult is the outcome of one full report run.
type RunResult struct {
	Snapshot   model.Snapshot          `json:"snapshot"`
	Quantities model.QuarterQuantities `json:"quantities"`
	HTML       string                  `json:"-"`
	EmailSent  bool                    `json:"email_sent"`
}

// ReportService orchestrates a full quarterly run: ingest the securities
// master, compute the DCA schedule and share quantities, value holdings and
// real estate, diff against the previous snapshot, render the email, and
// persist the new snapshot.
type ReportService struct {
	cfg        *config.Config
	valuation  *ValuationService
	realEstate *RealEstateService
	snapshots  *SnapshotService
	mailer     ReportMailer

	// Now is injectable so tests can pin the run date.
	Now func() time.Time
}

// NewReportService creates a ReportService. mailer may be nil when email
// delivery is not configured.
func NewReportService(
	cfg *config.Config,
	valuation *ValuationService,
	realEstate *RealEstateService,
	snapshots *SnapshotService,
	reportMailer ReportMailer,
) *ReportService {
	return &ReportService{
		cfg:        cfg,
		valuation:  valuation,
		realEstate: realEstate,
		snapshots:  snapshots,
		mailer:     reportMailer,
		Now:        time.Now,
	}
}

// Run executes one report run for the quarter containing the current date.
// The snapshot is saved only after everything else succeeded, so a failed
// run never poisons the next run's quarter-over-quarter baseline.
func (s *ReportService) Run(ctx context.Context, sendEmail bool) (RunResult, error) {
	rows, err := ingest.LoadSecuritiesMaster(s.cfg.Tracker.SecuritiesMaster)
	if err != nil {
		return RunResult{}, err
	}

	quarter := calendar.QuarterOf(s.Now())
	quantities, err := s.valuation.ComputeQuarterQuantities(ctx, rows, quarter)
	if err != nil {
		return RunResult{}, err
	}

	securityRows, securitiesByOwner, err := s.valueHoldings(ctx, quarter, quantities)
	if err != nil {
		return RunResult{}, err
	}

	realEstate := s.realEstate.ComputeValues()
	realEstateByKey := make(map[string]float64, len(realEstate))
	for _, v := range realEstate {
		realEstateByKey[v.Key] = v.OwnedValue
	}

	previous, err := s.snapshots.LoadLatest()
	if err != nil && !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		return RunResult{}, err
	}

	snapshot := model.Snapshot{
		RunID:          uuid.NewString(),
		GeneratedAtUTC: s.Now().UTC(),
		QuarterLabel:   quarter.Label(),
		RealEstate:     realEstateByKey,
		Securities:     securitiesByOwner,
	}
	for _, v := range realEstateByKey {
		snapshot.TotalNetWorth += v
	}
	for _, v := range securitiesByOwner {
		snapshot.TotalNetWorth += v
	}

	html, err := s.render(quarter, quantities, realEstate, securityRows, securitiesByOwner, previous, snapshot)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Snapshot:   snapshot,
		Quantities: quantities,
		HTML:       html,
	}

	if sendEmail {
		if err := s.sendEmail(ctx, html); err != nil {
			return RunResult{}, err
		}
		result.EmailSent = true
	}

	if err := s.snapshots.SaveLatest(snapshot); err != nil {
		return RunResult{}, err
	}

	return result, nil
}

// valueHoldings prices every row's ending quantity and aggregates market
// value per owner bucket. Rows are valued at the last adjusted contribution
// date (a known trading day) when the quarter has one, otherwise at the run
// date.
func (s *ReportService) valueHoldings(ctx context.Context, quarter calendar.Quarter, quantities model.QuarterQuantities) ([]report.SecurityRow, map[string]float64, error) {
	valuationDate := s.Now()
	if n := len(quantities.Calendar.Adjusted); n > 0 {
		valuationDate = quantities.Calendar.Adjusted[n-1]
	}

	byOwner := make(map[string]float64)
	securityRows := make([]report.SecurityRow, 0, len(quantities.Rows))

	for _, row := range quantities.Rows {
		value, err := s.valuation.MarketValue(ctx, row.Security, row.EndingQuantity, valuationDate)
		if err != nil {
			return nil, nil, fmt.Errorf("valuing %s: %w", row.Security, err)
		}
		byOwner[row.OwnerBucket] += value

		var avg float64
		if row.AvgPurchasePrice != nil {
			avg = *row.AvgPurchasePrice
		}
		securityRows = append(securityRows, report.SecurityRow{
			Quarter:          quarter.Label(),
			Security:         row.Security,
			Accounts:         row.AccountName,
			MarketValue:      value,
			NewInvestment:    row.InvestedDollars,
			SharesAdded:      row.SharesAdded,
			EndingQuantity:   row.EndingQuantity,
			AvgPurchasePrice: avg,
			Degraded:         quantities.Calendar.Degraded,
		})
	}

	return securityRows, byOwner, nil
}

// render assembles the report model and produces the email HTML.
func (s *ReportService) render(
	quarter calendar.Quarter,
	quantities model.QuarterQuantities,
	realEstate []model.RealEstateValue,
	securityRows []report.SecurityRow,
	securitiesByOwner map[string]float64,
	previous model.Snapshot,
	snapshot model.Snapshot,
) (string, error) {
	reChanges := QoQChanges(previous.RealEstate, snapshot.RealEstate)
	secChanges := QoQChanges(previous.Securities, snapshot.Securities)

	assets := make([]report.AssetRow, 0, len(realEstate)+len(securitiesByOwner))
	for _, v := range realEstate {
		assets = append(assets, report.AssetRow{
			Asset:        v.Label,
			Owner:        "Parents",
			CurrentValue: v.OwnedValue,
			QoQChange:    reChanges[v.Key],
		})
	}

	owners := make([]string, 0, len(securitiesByOwner))
	for owner := range securitiesByOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	for _, owner := range owners {
		assets = append(assets, report.AssetRow{
			Asset:        "Securities (All Accounts)",
			Owner:        owner,
			CurrentValue: securitiesByOwner[owner],
			QoQChange:    secChanges[owner],
		})
	}

	chart := s.buildChart(previous, snapshot)

	r := report.Report{
		QuarterLabel:  quarter.Label(),
		GeneratedAt:   snapshot.GeneratedAtUTC,
		RealEstate:    assets,
		Securities:    securityRows,
		TotalNetWorth: snapshot.TotalNetWorth,
		TotalQoQ:      snapshot.TotalNetWorth - previous.TotalNetWorth,
		ChartSVG:      template.HTML(chart), //nolint:gosec // chart SVG is generated locally, never from user input
		Degraded:      quantities.Calendar.Degraded,
	}
	if previous.RunID == "" {
		r.TotalQoQ = 0
	}

	return report.RenderHTML(r)
}

// buildChart renders the configured series over the previous and current
// snapshots. With only one snapshot of history the chart is a two-point
// line at best.
func (s *ReportService) buildChart(previous, snapshot model.Snapshot) string {
	var quarters []string
	if previous.RunID != "" {
		quarters = append(quarters, previous.QuarterLabel)
	}
	quarters = append(quarters, snapshot.QuarterLabel)

	var series []report.ChartSeries
	for _, cs := range s.cfg.Tracker.Chart.Series {
		var values []float64
		if previous.RunID != "" {
			values = append(values, previous.Securities[cs.Name])
		}
		values = append(values, snapshot.Securities[cs.Name])
		series = append(series, report.ChartSeries{
			Name:       cs.Name,
			TargetYear: cs.TargetYear,
			Values:     values,
		})
	}
	if len(series) == 0 {
		var values []float64
		if previous.RunID != "" {
			values = append(values, previous.TotalNetWorth)
		}
		values = append(values, snapshot.TotalNetWorth)
		series = append(series, report.ChartSeries{Name: "Total Net Worth", Values: values})
	}

	return report.LineChartSVG(quarters, series)
}

// sendEmail resolves the recipient and delivers the rendered report.
func (s *ReportService) sendEmail(ctx context.Context, html string) error {
	if s.mailer == nil {
		return fmt.Errorf("email delivery not configured")
	}
	recipient, err := s.cfg.Tracker.Email.Recipient()
	if err != nil {
		return err
	}

	subject := s.cfg.Tracker.Email.Subject
	if subject == "" {
		subject = "Quarterly Net Worth Report"
	}

	msg := mailer.Message{
		Subject:  subject,
		From:     s.cfg.Tracker.Email.From,
		To:       recipient,
		HTMLBody: html,
	}
	if err := s.mailer.SendHTML(ctx, msg); err != nil {
		return err
	}
	log.Printf("report email sent to %s", maskRecipient(recipient))
	return nil
}

// maskRecipient hides most of an address in logs.
func maskRecipient(addr string) string {
	at := strings.IndexByte(addr, '@')
	if at <= 1 {
		return "***"
	}
	return addr[:1] + "***" + addr[at:]
}

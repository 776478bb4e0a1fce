// Package ingest reads and validates the securities master file: the list
// of (owner bucket, account, security) rows with their funding plans that
// drives scheduling and valuation.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// requiredColumns are the canonical column names after alias normalization.
var requiredColumns = []string{
	"owner_bucket",
	"account_name",
	"security",
	"type",
	"starting_quantity",
	"weekly_investment_dollars",
}

// columnAliases maps legacy column headers to their canonical names.
// Headers are normalized (lowercased, spaces to underscores) before lookup.
var columnAliases = map[string]string{
	"for":                          "owner_bucket",
	"category":                     "account_name",
	"symbol":                       "security",
	"quantity":                     "starting_quantity",
	"weekly_investment_in_dollars": "weekly_investment_dollars",
}

// LoadSecuritiesMaster reads funding rows from a CSV file.
func LoadSecuritiesMaster(path string) ([]model.SecurityFundingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening securities master: %w", err)
	}
	defer f.Close()

	rows, err := ReadSecuritiesMaster(f)
	if err != nil {
		return nil, fmt.Errorf("reading securities master %s: %w", path, err)
	}
	return rows, nil
}

// ReadSecuritiesMaster parses funding rows from CSV data. Column headers are
// normalized and aliased, required columns are enforced, string cells are
// trimmed, and per-row invariants are validated. Row order is preserved.
//
// weekly_investment_dollars cells that are blank or not numeric produce a
// nil amount; the schedule builder decides whether that is fatal based on
// the row's funding type.
func ReadSecuritiesMaster(r io.Reader) ([]model.SecurityFundingRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []model.SecurityFundingRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		line++

		row, err := buildRow(columns, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// resolveColumns maps canonical column names to record indices, applying
// the alias table, and verifies every required column is present.
func resolveColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, raw := range header {
		name := normalizeColumn(raw)
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		columns[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingRequiredColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func normalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func buildRow(columns map[string]int, record []string) (model.SecurityFundingRow, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := model.SecurityFundingRow{
		OwnerBucket: cell("owner_bucket"),
		AccountName: cell("account_name"),
		Security:    cell("security"),
		Type:        model.FundingType(cell("type")),
	}

	for _, field := range []struct{ name, value string }{
		{"owner_bucket", row.OwnerBucket},
		{"account_name", row.AccountName},
		{"security", row.Security},
		{"type", string(row.Type)},
	} {
		if field.value == "" {
			return model.SecurityFundingRow{}, fmt.Errorf("%w: %s", apperrors.ErrMissingRequiredField, field.name)
		}
	}

	switch row.Type {
	case model.FundingActive, model.FundingNoMoreFunding:
	default:
		return model.SecurityFundingRow{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFundingType, row.Type)
	}

	qty, err := strconv.ParseFloat(cell("starting_quantity"), 64)
	if err != nil {
		return model.SecurityFundingRow{}, fmt.Errorf("%w: starting_quantity %q", apperrors.ErrMissingRequiredField, cell("starting_quantity"))
	}
	row.StartingQuantity = qty

	// A blank or non-numeric cell becomes a nil amount, rejected later
	// only for Active rows.
	if weekly, err := strconv.ParseFloat(cell("weekly_investment_dollars"), 64); err == nil {
		row.WeeklyInvestmentDollars = &weekly
	}

	return row, nil
}

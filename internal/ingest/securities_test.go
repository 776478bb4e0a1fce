package ingest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/ingest"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// TestReadSecuritiesMaster tests CSV parsing of the securities master.
//
// WHY: The master file is the single input that drives everything else, so
// header aliasing, required-field enforcement, and the nil-amount coercion
// for unparseable weekly cells all need to hold.
func TestReadSecuritiesMaster(t *testing.T) {
	t.Run("parses canonical headers in row order", func(t *testing.T) {
		csv := strings.Join([]string{
			"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
			"Parents,M1 WeeklyDCA,VTI,Active,10.5,100",
			"Kids,529 Plan,VOO,NoMoreFunding,3,",
		}, "\n")

		rows, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}

		first := rows[0]
		if first.OwnerBucket != "Parents" || first.AccountName != "M1 WeeklyDCA" || first.Security != "VTI" {
			t.Errorf("Unexpected first row identity: %+v", first)
		}
		if first.Type != model.FundingActive {
			t.Errorf("Type = %q, want Active", first.Type)
		}
		if first.StartingQuantity != 10.5 {
			t.Errorf("StartingQuantity = %v, want 10.5", first.StartingQuantity)
		}
		if first.WeeklyInvestmentDollars == nil || *first.WeeklyInvestmentDollars != 100 {
			t.Errorf("WeeklyInvestmentDollars = %v, want 100", first.WeeklyInvestmentDollars)
		}

		second := rows[1]
		if second.Security != "VOO" || second.Type != model.FundingNoMoreFunding {
			t.Errorf("Unexpected second row: %+v", second)
		}
		if second.WeeklyInvestmentDollars != nil {
			t.Errorf("Expected nil weekly amount for blank cell, got %v", *second.WeeklyInvestmentDollars)
		}
	})

	t.Run("accepts legacy header aliases", func(t *testing.T) {
		csv := strings.Join([]string{
			"For,Category,Symbol,Type,Quantity,Weekly Investment In Dollars",
			"Parents,Brokerage,SCHD,Active,0,250.50",
		}, "\n")

		rows, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		row := rows[0]
		if row.OwnerBucket != "Parents" || row.AccountName != "Brokerage" || row.Security != "SCHD" {
			t.Errorf("Alias mapping failed: %+v", row)
		}
		if row.WeeklyInvestmentDollars == nil || *row.WeeklyInvestmentDollars != 250.50 {
			t.Errorf("WeeklyInvestmentDollars = %v, want 250.50", row.WeeklyInvestmentDollars)
		}
	})

	t.Run("fails listing every missing column", func(t *testing.T) {
		csv := "owner_bucket,security,type\nParents,VTI,Active"

		_, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrMissingRequiredColumn) {
			t.Fatalf("Expected ErrMissingRequiredColumn, got %v", err)
		}
		for _, col := range []string{"account_name", "starting_quantity", "weekly_investment_dollars"} {
			if !strings.Contains(err.Error(), col) {
				t.Errorf("Error %q should name missing column %s", err, col)
			}
		}
	})

	t.Run("fails on a blank required cell", func(t *testing.T) {
		csv := strings.Join([]string{
			"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
			"Parents,,VTI,Active,10,100",
		}, "\n")

		_, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Fatalf("Expected ErrMissingRequiredField, got %v", err)
		}
		if !strings.Contains(err.Error(), "account_name") {
			t.Errorf("Error %q should name the blank field", err)
		}
	})

	t.Run("fails on an unknown funding type", func(t *testing.T) {
		csv := strings.Join([]string{
			"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
			"Parents,Brokerage,VTI,Paused,10,100",
		}, "\n")

		_, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrInvalidFundingType) {
			t.Fatalf("Expected ErrInvalidFundingType, got %v", err)
		}
	})

	t.Run("fails on an unparseable starting quantity", func(t *testing.T) {
		csv := strings.Join([]string{
			"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
			"Parents,Brokerage,VTI,Active,ten,100",
		}, "\n")

		_, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if err == nil {
			t.Fatal("Expected error for non-numeric starting_quantity")
		}
	})

	t.Run("coerces an unparseable weekly amount to nil", func(t *testing.T) {
		csv := strings.Join([]string{
			"owner_bucket,account_name,security,type,starting_quantity,weekly_investment_dollars",
			"Parents,Brokerage,VTI,NoMoreFunding,10,n/a",
		}, "\n")

		rows, err := ingest.ReadSecuritiesMaster(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rows[0].WeeklyInvestmentDollars != nil {
			t.Errorf("Expected nil weekly amount, got %v", *rows[0].WeeklyInvestmentDollars)
		}
	})
}

package ledger

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"petcare-wallet/internal/models"

	"github.com/shopspring/decimal"
)

func TestStatement(t *testing.T) {
	older := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 6, 14, 30, 0, 0, time.UTC)

	transactions := []models.WalletTransaction{
		{
			Type:        models.TransactionTypeCredit,
			Amount:      decimal.NewFromInt(50),
			Currency:    "INR",
			Description: "Grooming payout",
			ReferenceID: "PAY-001",
			CreatedAt:   older,
		},
		{
			Type:        models.TransactionTypeDebit,
			Amount:      decimal.NewFromInt(20),
			Currency:    "INR",
			Description: "Withdrawal",
			CreatedAt:   newer,
		},
	}

	out, err := Statement(transactions)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("rows: got %d, want 3", len(records))
	}

	wantHeader := []string{"Date", "Type", "Description", "Amount", "Reference"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header col %d: got %q, want %q", i, records[0][i], col)
		}
	}

	// Newest first: the debit comes before the credit.
	if records[1][1] != models.TransactionTypeDebit || records[1][3] != "-20" {
		t.Fatalf("row 1: got %v", records[1])
	}
	if records[2][1] != models.TransactionTypeCredit || records[2][3] != "+50" {
		t.Fatalf("row 2: got %v", records[2])
	}
	if records[2][4] != "PAY-001" {
		t.Fatalf("reference: got %q", records[2][4])
	}
	if records[1][0] != "Mar 6, 2025, 14:30" {
		t.Fatalf("date cell: got %q", records[1][0])
	}
}

func TestStatement_Empty(t *testing.T) {
	out, err := Statement(nil)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestStatement_DoesNotMutateInput(t *testing.T) {
	transactions := []models.WalletTransaction{
		{ID: "old", Amount: decimal.NewFromInt(1), CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "new", Amount: decimal.NewFromInt(1), CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	if _, err := Statement(transactions); err != nil {
		t.Fatalf("statement: %v", err)
	}
	if transactions[0].ID != "old" {
		t.Fatal("input slice was reordered")
	}
}

func TestStatementFilename(t *testing.T) {
	now := time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC)
	if got := StatementFilename(now); got != "wallet-statement-2025-03-07.csv" {
		t.Fatalf("got %q", got)
	}
}

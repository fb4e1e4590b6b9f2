package ledger

import (
	"testing"
	"time"

	"petcare-wallet/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		amount   string
		currency string
		want     string
	}{
		{"credit", models.TransactionTypeCredit, "100.5", "INR", "+₹100.50"},
		{"debit", models.TransactionTypeDebit, "20", "INR", "-₹20.00"},
		{"indian grouping", models.TransactionTypeCredit, "100000.5", "INR", "+₹1,00,000.50"},
		{"larger grouping", models.TransactionTypeDebit, "12345678.9", "INR", "-₹1,23,45,678.90"},
		{"usd symbol", models.TransactionTypeCredit, "99.99", "USD", "+$99.99"},
		{"unknown currency falls back to code", models.TransactionTypeCredit, "10", "AED", "+AED 10.00"},
		{"stored negative debit is not double-signed", models.TransactionTypeDebit, "-20", "INR", "-₹20.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(models.WalletTransaction{
				Type:     tt.typ,
				Amount:   dec(tt.amount),
				Currency: tt.currency,
			})
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		currency string
		want     string
	}{
		{"zero", "0", "INR", "₹0.00"},
		{"positive", "2500.5", "INR", "₹2,500.50"},
		{"negative keeps minus", "-150.25", "INR", "-₹150.25"},
		{"euro", "1000", "EUR", "€1,000.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBalance(dec(tt.balance), tt.currency)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "Mar 7, 2025, 09:05" {
		t.Fatalf("got %q", got)
	}
}

func TestSymbol(t *testing.T) {
	if got := Symbol("INR"); got != "₹" {
		t.Fatalf("INR: got %q", got)
	}
	if got := Symbol("JPY"); got != "JPY " {
		t.Fatalf("fallback: got %q", got)
	}
}

package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"petcare-wallet/internal/models"
)

var statementHeader = []string{"Date", "Type", "Description", "Amount", "Reference"}

// Statement renders transactions as a CSV statement, newest first. The
// amount column carries the sign explicitly ("+50", "-20") and no currency
// symbol, so the file loads cleanly into spreadsheets.
func Statement(transactions []models.WalletTransaction) ([]byte, error) {
	ordered := make([]models.WalletTransaction, len(transactions))
	copy(ordered, transactions)
	SortNewestFirst(ordered)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(statementHeader); err != nil {
		return nil, fmt.Errorf("failed to write statement header: %w", err)
	}

	for _, tx := range ordered {
		sign := "+"
		if tx.Type == models.TransactionTypeDebit {
			sign = "-"
		}
		row := []string{
			FormatTimestamp(tx.CreatedAt),
			tx.Type,
			tx.Description,
			sign + tx.Amount.Abs().String(),
			tx.ReferenceID,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write statement row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush statement: %w", err)
	}

	return buf.Bytes(), nil
}

// StatementFilename builds the download name, e.g.
// "wallet-statement-2026-08-30.csv".
func StatementFilename(now time.Time) string {
	return fmt.Sprintf("wallet-statement-%s.csv", now.Format("2006-01-02"))
}

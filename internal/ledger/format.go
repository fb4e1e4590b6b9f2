package ledger

import (
	"time"

	"petcare-wallet/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting is pinned to one locale so the output is identical on
// every machine. The marketplace settles in INR, hence Indian digit
// grouping regardless of the currency symbol.
var displayPrinter = message.NewPrinter(language.MustParse("en-IN"))

const timestampLayout = "Jan 2, 2006, 15:04"

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Symbol returns the display symbol for a currency code. Unknown codes fall
// back to the code itself followed by a space.
func Symbol(currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return sym
	}
	return currency + " "
}

// FormatAmount renders a signed transaction amount, e.g. "+₹1,00,000.50"
// for a credit and "-₹20.00" for a debit.
func FormatAmount(tx models.WalletTransaction) string {
	sign := "+"
	if tx.Type == models.TransactionTypeDebit {
		sign = "-"
	}
	return sign + Symbol(tx.Currency) + formatMagnitude(tx.Amount.Abs())
}

// FormatBalance renders a wallet balance. Negative balances keep the minus
// sign, non-negative ones carry no prefix.
func FormatBalance(balance decimal.Decimal, currency string) string {
	if balance.IsNegative() {
		return "-" + Symbol(currency) + formatMagnitude(balance.Abs())
	}
	return Symbol(currency) + formatMagnitude(balance)
}

// FormatTimestamp renders a transaction time as "Jan 2, 2006, 15:04".
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

func formatMagnitude(d decimal.Decimal) string {
	f, _ := d.Float64()
	return displayPrinter.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

package ledger

import (
	"fmt"
	"testing"
	"time"

	"petcare-wallet/internal/models"

	"github.com/shopspring/decimal"
)

var testBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// tx builds a transaction created `age` minutes before testBase, so lower
// ages are newer.
func tx(id, typ, description, reference string, age int) models.WalletTransaction {
	return models.WalletTransaction{
		ID:          id,
		WalletID:    "w-1",
		Type:        typ,
		Amount:      decimal.NewFromInt(100),
		Currency:    "INR",
		Description: description,
		ReferenceID: reference,
		CreatedAt:   testBase.Add(-time.Duration(age) * time.Minute),
	}
}

func ids(transactions []models.WalletTransaction) []string {
	out := make([]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("t1", models.TransactionTypeCredit, "Grooming appointment", "PAY-001", 1),
		tx("t2", models.TransactionTypeDebit, "Withdrawal to bank", "REF-XYZ", 2),
		tx("t3", models.TransactionTypeCredit, "Vet consultation", "pay-002", 3),
		tx("t4", models.TransactionTypeDebit, "Platform commission", "", 4),
	}

	tests := []struct {
		name    string
		search  string
		typ     string
		wantIDs []string
	}{
		{"no filters keep everything", "", "", []string{"t1", "t2", "t3", "t4"}},
		{"explicit all keeps everything", "", TypeAll, []string{"t1", "t2", "t3", "t4"}},
		{"type credit", "", models.TransactionTypeCredit, []string{"t1", "t3"}},
		{"type debit", "", models.TransactionTypeDebit, []string{"t2", "t4"}},
		{"search matches description case-insensitively", "GROOMING", "", []string{"t1"}},
		{"search matches reference case-insensitively", "PAY-0", "", []string{"t1", "t3"}},
		{"search intersects with type filter", "pay-0", models.TransactionTypeDebit, nil},
		{"search with no match", "boarding", "", nil},
		{"surrounding whitespace is ignored", "  grooming  ", "", []string{"t1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(transactions, tt.search, tt.typ)
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Fatalf("filter: got %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("old", models.TransactionTypeCredit, "a", "", 30),
		tx("new", models.TransactionTypeDebit, "b", "", 1),
		tx("mid", models.TransactionTypeCredit, "c", "", 15),
	}

	SortNewestFirst(transactions)

	if !equalIDs(ids(transactions), []string{"new", "mid", "old"}) {
		t.Fatalf("order: got %v", ids(transactions))
	}

	// Output must be non-increasing by CreatedAt.
	for i := 1; i < len(transactions); i++ {
		if transactions[i].CreatedAt.After(transactions[i-1].CreatedAt) {
			t.Fatalf("not sorted at index %d", i)
		}
	}
}

func TestSortNewestFirst_TiesKeepRelativeOrder(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("a", models.TransactionTypeCredit, "first", "", 5),
		tx("b", models.TransactionTypeCredit, "second", "", 5),
		tx("c", models.TransactionTypeCredit, "third", "", 5),
	}

	SortNewestFirst(transactions)

	if !equalIDs(ids(transactions), []string{"a", "b", "c"}) {
		t.Fatalf("stable sort broke tie order: got %v", ids(transactions))
	}
}

func TestView_PageClampInvariant(t *testing.T) {
	transactions := make([]models.WalletTransaction, 12)
	for i := range transactions {
		transactions[i] = tx(fmt.Sprintf("t%d", i), models.TransactionTypeCredit, "entry", "", i)
	}

	tests := []struct {
		name       string
		query      Query
		wantPage   int
		wantInPage int
	}{
		{"page beyond range clamps to last", Query{Page: 99, PerPage: 5}, 3, 2},
		{"page zero clamps to first", Query{Page: 0, PerPage: 5}, 1, 5},
		{"negative page clamps to first", Query{Page: -3, PerPage: 5}, 1, 5},
		{"valid page stays", Query{Page: 2, PerPage: 5}, 2, 5},
		{"empty result clamps to page 1", Query{Search: "no-such-entry", Page: 7, PerPage: 5}, 1, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			page := View(transactions, tt.query)

			if page.Page != tt.wantPage {
				t.Fatalf("page: got %d, want %d", page.Page, tt.wantPage)
			}
			if len(page.Transactions) != tt.wantInPage {
				t.Fatalf("items: got %d, want %d", len(page.Transactions), tt.wantInPage)
			}

			// The invariant itself: 1 <= page <= max(1, totalPages).
			upper := page.TotalPages
			if upper < 1 {
				upper = 1
			}
			if page.Page < 1 || page.Page > upper {
				t.Fatalf("page %d outside [1, %d]", page.Page, upper)
			}
		})
	}
}

func TestView_PerPageNormalization(t *testing.T) {
	transactions := make([]models.WalletTransaction, 7)
	for i := range transactions {
		transactions[i] = tx(fmt.Sprintf("t%d", i), models.TransactionTypeDebit, "entry", "", i)
	}

	tests := []struct {
		perPage     int
		wantPerPage int
	}{
		{0, DefaultPerPage},
		{5, 5},
		{10, 10},
		{20, 20},
		{50, 50},
		{7, DefaultPerPage},
		{-1, DefaultPerPage},
		{1000, DefaultPerPage},
	}

	for _, tt := range tests {
		page := View(transactions, Query{Page: 1, PerPage: tt.perPage})
		if page.PerPage != tt.wantPerPage {
			t.Fatalf("perPage %d: got %d, want %d", tt.perPage, page.PerPage, tt.wantPerPage)
		}
	}
}

func TestView_EmptyInput(t *testing.T) {
	page := View(nil, Query{Page: 1, PerPage: 5})

	if len(page.Transactions) != 0 {
		t.Fatalf("expected no rows, got %d", len(page.Transactions))
	}
	if page.TotalItems != 0 || page.TotalPages != 0 {
		t.Fatalf("totals: got items=%d pages=%d", page.TotalItems, page.TotalPages)
	}
	// No filters active: callers must render "no transactions", not "no
	// matches".
	if page.Filtered {
		t.Fatal("empty unfiltered view must not report filters active")
	}
	if page.Page != 1 {
		t.Fatalf("page: got %d, want 1", page.Page)
	}
}

func TestView_FilteredFlag(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("t1", models.TransactionTypeCredit, "Grooming", "", 1),
	}

	if View(transactions, Query{}).Filtered {
		t.Fatal("no filters: Filtered must be false")
	}
	if !View(transactions, Query{Search: "x"}).Filtered {
		t.Fatal("search active: Filtered must be true")
	}
	if !View(transactions, Query{Type: models.TransactionTypeDebit}).Filtered {
		t.Fatal("type filter active: Filtered must be true")
	}
	if View(transactions, Query{Type: TypeAll}).Filtered {
		t.Fatal("type=all is not a filter")
	}
}

// Scenario: 12 transactions, page size 5, walk to the last page, then
// change the page size.
func TestView_PaginationWalk(t *testing.T) {
	transactions := make([]models.WalletTransaction, 12)
	descriptions := []string{"Grooming", "Boarding", "Vet visit"}
	for i := range transactions {
		typ := models.TransactionTypeCredit
		if i%2 == 1 {
			typ = models.TransactionTypeDebit
		}
		transactions[i] = tx(fmt.Sprintf("t%d", i), typ, descriptions[i%3], "", i)
	}

	// Page 1 holds the 5 most recent (smallest age = t0..t4).
	page1 := View(transactions, Query{Page: 1, PerPage: 5})
	if !equalIDs(ids(page1.Transactions), []string{"t0", "t1", "t2", "t3", "t4"}) {
		t.Fatalf("page 1: got %v", ids(page1.Transactions))
	}
	if page1.TotalItems != 12 || page1.TotalPages != 3 {
		t.Fatalf("totals: items=%d pages=%d", page1.TotalItems, page1.TotalPages)
	}

	// Page 3 holds the remaining 2.
	page3 := View(transactions, Query{Page: 3, PerPage: 5})
	if !equalIDs(ids(page3.Transactions), []string{"t10", "t11"}) {
		t.Fatalf("page 3: got %v", ids(page3.Transactions))
	}

	// Changing the page size starts over from page 1 with 10 rows. The
	// caller resets its page to 1 on a size change; a stale page is
	// clamped, so the invariant holds either way.
	resized := View(transactions, Query{Page: 1, PerPage: 10})
	if resized.Page != 1 || len(resized.Transactions) != 10 {
		t.Fatalf("resized: page=%d items=%d", resized.Page, len(resized.Transactions))
	}
}

// Scenario: a search that matches nothing yields the filtered empty state
// on page 1.
func TestView_SearchWithoutMatches(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("t1", models.TransactionTypeCredit, "Grooming", "PAY-1", 1),
		tx("t2", models.TransactionTypeDebit, "Boarding", "PAY-2", 2),
	}

	page := View(transactions, Query{Search: "daycare", Page: 5, PerPage: 5})

	if len(page.Transactions) != 0 {
		t.Fatalf("expected no rows, got %d", len(page.Transactions))
	}
	if !page.Filtered {
		t.Fatal("search active: Filtered must be true")
	}
	if page.Page != 1 {
		t.Fatalf("page must clamp to 1, got %d", page.Page)
	}
}

func TestView_DoesNotMutateInput(t *testing.T) {
	transactions := []models.WalletTransaction{
		tx("old", models.TransactionTypeCredit, "a", "", 30),
		tx("new", models.TransactionTypeDebit, "b", "", 1),
	}

	View(transactions, Query{Page: 1, PerPage: 5})

	if transactions[0].ID != "old" || transactions[1].ID != "new" {
		t.Fatalf("input reordered: %v", ids(transactions))
	}
}

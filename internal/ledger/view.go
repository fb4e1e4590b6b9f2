// Package ledger implements the read-side view of a wallet's transaction
// list: filtering, ordering, pagination and display formatting. Everything
// here is a pure transformation of the slice it receives, storage and
// transport live elsewhere.
package ledger

import (
	"sort"
	"strings"

	"petcare-wallet/internal/models"
)

// PerPageOptions is the fixed set of page sizes a client may request.
var PerPageOptions = []int{5, 10, 20, 50}

const DefaultPerPage = 5

// TypeAll disables type filtering.
const TypeAll = "all"

// Query describes one view over a transaction list.
type Query struct {
	Search  string
	Type    string // "all", "credit" or "debit"
	Page    int
	PerPage int
}

// Page is the result of applying a Query. Page is always within
// [1, max(1, TotalPages)], regardless of what the query asked for.
type Page struct {
	Transactions []models.WalletTransaction
	Page         int
	PerPage      int
	TotalItems   int
	TotalPages   int
	Filtered     bool
}

// View filters, sorts and paginates transactions. The input slice is not
// modified.
func View(transactions []models.WalletTransaction, q Query) Page {
	filtered := Filter(transactions, q.Search, q.Type)
	SortNewestFirst(filtered)

	perPage := normalizePerPage(q.PerPage)
	totalItems := len(filtered)
	totalPages := (totalItems + perPage - 1) / perPage

	page := clampPage(q.Page, totalPages)

	var items []models.WalletTransaction
	if totalItems > 0 {
		start := (page - 1) * perPage
		end := start + perPage
		if end > totalItems {
			end = totalItems
		}
		items = filtered[start:end]
	} else {
		items = []models.WalletTransaction{}
	}

	return Page{
		Transactions: items,
		Page:         page,
		PerPage:      perPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		Filtered:     isFiltered(q),
	}
}

// Filter keeps a transaction iff its description or reference contains the
// search term (case-insensitive) and its type matches the type filter.
// Returns a new slice.
func Filter(transactions []models.WalletTransaction, search, typ string) []models.WalletTransaction {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.WalletTransaction, 0, len(transactions))
	for _, tx := range transactions {
		if !matchesType(tx, typ) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(tx.Description), term) &&
			!strings.Contains(strings.ToLower(tx.ReferenceID), term) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortNewestFirst orders transactions by descending creation time, in
// place. The sort is stable, ties keep their relative order.
func SortNewestFirst(transactions []models.WalletTransaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
}

func matchesType(tx models.WalletTransaction, typ string) bool {
	if typ == "" || typ == TypeAll {
		return true
	}
	return tx.Type == typ
}

func isFiltered(q Query) bool {
	if strings.TrimSpace(q.Search) != "" {
		return true
	}
	return q.Type != "" && q.Type != TypeAll
}

func normalizePerPage(perPage int) int {
	for _, opt := range PerPageOptions {
		if perPage == opt {
			return perPage
		}
	}
	return DefaultPerPage
}

// clampPage keeps the page inside [1, max(1, totalPages)].
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	if page < 1 {
		return 1
	}
	return page
}

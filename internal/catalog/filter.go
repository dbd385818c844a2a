// Package catalog narrows and orders the raw product list for display.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// SortKey names an ordering of the product list.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByDate  SortKey = "date"
)

// SortKeys lists the orderings offered by the dashboard, default first.
var SortKeys = []SortKey{SortByDate, SortByName, SortByPrice}

// ParseSortKey maps user input to a SortKey. Unknown input sorts by date.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByPrice, SortByDate:
		return k
	}
	return SortByDate
}

// ApplyFilter returns the displayed subset of products: entries without an
// identifier are dropped, the rest are matched against searchTerm by name and
// ordered by sortKey. The input slice is never modified.
func ApplyFilter(products []models.Product, searchTerm string, sortKey SortKey) []models.Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, term) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, compareFor(sortKey))
	return out
}

func matches(p models.Product, term string) bool {
	if p.ID == "" {
		return false
	}
	return term == "" || strings.Contains(strings.ToLower(p.Name), term)
}

func compareFor(key SortKey) func(a, b models.Product) int {
	switch ParseSortKey(string(key)) {
	case SortByName:
		return func(a, b models.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByPrice:
		return func(a, b models.Product) int {
			return cmp.Compare(sanePrice(b.Price), sanePrice(a.Price))
		}
	default:
		// zero timestamps compare as the oldest and end up last
		return func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

func sanePrice(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}

// Package browse implements the catalog view: filter, sort and search
// selections, flipped cards and the cart of a single browsing session.
package browse

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"motorbikes/pkg/catalog"
)

// SortKey orders the visible listings.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortYearAsc   SortKey = "year-asc"
	SortYearDesc  SortKey = "year-desc"
)

// SortKeys lists the selectable orderings, SortNone first.
var SortKeys = []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortYearAsc, SortYearDesc}

// ParseSortKey validates s as a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("sort key %q: %w", s, ErrInvalidSelection)
	}
	return k, nil
}

// Field names one of the selection fields.
type Field string

const (
	FieldMake    Field = "make"
	FieldTerrain Field = "terrain"
	FieldYear    Field = "year"
	FieldSort    Field = "sort"
	FieldSearch  Field = "search"
)

// ParseField validates s as a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldMake, FieldTerrain, FieldYear, FieldSort, FieldSearch:
		return f, nil
	}
	return "", fmt.Errorf("field %q: %w", s, ErrInvalidSelection)
}

// ErrInvalidSelection indicates a selection value outside its allowed set.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the user's current filter, sort and search choices.
// Empty fields are inactive.
type Selection struct {
	Make    string  `json:"make"`
	Terrain string  `json:"terrain"`
	Year    string  `json:"year"`
	Sort    SortKey `json:"sort"`
	Search  string  `json:"search"`
}

// Apply computes the visible listings for sel, always starting from the full
// catalog passed in. The input slice is not modified.
func Apply(all []catalog.Listing, sel Selection) []catalog.Listing {
	out := make([]catalog.Listing, 0, len(all))
	keep := matcher(sel)
	for _, l := range all {
		if keep(l) {
			out = append(out, l)
		}
	}
	if cmpFn := comparator(sel.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

func matcher(sel Selection) func(catalog.Listing) bool {
	var preds []func(catalog.Listing) bool

	if sel.Make != "" {
		preds = append(preds, func(l catalog.Listing) bool { return l.Make == sel.Make })
	}
	if sel.Terrain != "" {
		preds = append(preds, func(l catalog.Listing) bool {
			return strings.EqualFold(string(l.Terrain), sel.Terrain)
		})
	}
	if sel.Year != "" {
		year, err := strconv.Atoi(strings.TrimSpace(sel.Year))
		if err != nil {
			return func(catalog.Listing) bool { return false }
		}
		preds = append(preds, func(l catalog.Listing) bool { return l.Year == year })
	}
	if sel.Search != "" {
		needle := strings.ToLower(sel.Search)
		preds = append(preds, func(l catalog.Listing) bool {
			return strings.Contains(strings.ToLower(l.Make), needle) ||
				strings.Contains(strings.ToLower(l.Model), needle) ||
				strings.Contains(strings.ToLower(l.Description), needle) ||
				strings.Contains(strconv.Itoa(l.Year), sel.Search)
		})
	}

	return func(l catalog.Listing) bool {
		for _, p := range preds {
			if !p(l) {
				return false
			}
		}
		return true
	}
}

func comparator(k SortKey) func(a, b catalog.Listing) int {
	switch k {
	case SortPriceAsc:
		return func(a, b catalog.Listing) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b catalog.Listing) int { return cmp.Compare(b.Price, a.Price) }
	case SortYearAsc:
		return func(a, b catalog.Listing) int { return cmp.Compare(a.Year, b.Year) }
	case SortYearDesc:
		return func(a, b catalog.Listing) int { return cmp.Compare(b.Year, a.Year) }
	}
	return nil
}

package browse

import (
	"maps"
	"slices"

	"motorbikes/pkg/catalog"
)

// State is everything a session remembers between requests. The visible
// listings are not part of it; they are recomputed from Selection.
type State struct {
	Selection    Selection         `json:"selection"`
	Flipped      map[string]bool   `json:"flipped,omitempty"`
	Cart         []catalog.Listing `json:"cart"`
	ShowCheckout bool              `json:"showCheckout"`
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	st.Cart = slices.Clone(st.Cart)
	st.Flipped = maps.Clone(st.Flipped)
	return st
}

// View owns one session's State over a shared catalog. It is not safe for
// concurrent use.
type View struct {
	store   *catalog.Store
	state   State
	visible []catalog.Listing
}

// NewView restores a view from st and computes its visible listings.
func NewView(store *catalog.Store, st State) *View {
	v := &View{store: store, state: st.Clone()}
	v.recompute()
	return v
}

func (v *View) recompute() {
	v.visible = Apply(v.store.All(), v.state.Selection)
}

// State returns a snapshot suitable for saving.
func (v *View) State() State { return v.state.Clone() }

// Selection returns the active selection.
func (v *View) Selection() Selection { return v.state.Selection }

// Visible returns the listings matching the current selection, in display order.
func (v *View) Visible() []catalog.Listing { return slices.Clone(v.visible) }

// Makes returns the make options, taken from the full catalog.
func (v *View) Makes() []string { return v.store.Makes() }

// Years returns the year options, taken from the full catalog.
func (v *View) Years() []int { return v.store.Years() }

// SetMake sets the make filter. Matching is exact and case-sensitive.
func (v *View) SetMake(name string) {
	v.state.Selection.Make = name
	v.recompute()
}

// SetTerrain sets the terrain filter. Matching ignores case.
func (v *View) SetTerrain(terrain string) {
	v.state.Selection.Terrain = terrain
	v.recompute()
}

// SetYear sets the year filter. A value that is not an integer matches no listing.
func (v *View) SetYear(year string) {
	v.state.Selection.Year = year
	v.recompute()
}

// SetSort sets the ordering of the visible listings.
func (v *View) SetSort(k SortKey) {
	v.state.Selection.Sort = k
	v.recompute()
}

// SetSearch sets the free-text search over make, model, description and year.
func (v *View) SetSearch(text string) {
	v.state.Selection.Search = text
	v.recompute()
}

// Clear resets a single selection field.
func (v *View) Clear(f Field) {
	switch f {
	case FieldMake:
		v.state.Selection.Make = ""
	case FieldTerrain:
		v.state.Selection.Terrain = ""
	case FieldYear:
		v.state.Selection.Year = ""
	case FieldSort:
		v.state.Selection.Sort = SortNone
	case FieldSearch:
		v.state.Selection.Search = ""
	}
	v.recompute()
}

// ToggleFlip flips the card of listing id and returns its new face.
// Flip state follows the listing, not its position in the visible list.
func (v *View) ToggleFlip(id string) (bool, error) {
	if _, err := v.store.Get(id); err != nil {
		return false, err
	}
	if v.state.Flipped == nil {
		v.state.Flipped = make(map[string]bool)
	}
	flipped := !v.state.Flipped[id]
	if flipped {
		v.state.Flipped[id] = true
	} else {
		delete(v.state.Flipped, id)
	}
	return flipped, nil
}

// IsFlipped reports whether the card of listing id shows its back.
func (v *View) IsFlipped(id string) bool { return v.state.Flipped[id] }

// AddToCart appends a copy of listing id to the cart. Duplicates are kept.
func (v *View) AddToCart(id string) (catalog.Listing, error) {
	l, err := v.store.Get(id)
	if err != nil {
		return catalog.Listing{}, err
	}
	v.state.Cart = append(v.state.Cart, l)
	return l, nil
}

// Cart returns the cart entries in insertion order.
func (v *View) Cart() []catalog.Listing { return slices.Clone(v.state.Cart) }

// CartCount is the number shown on the cart badge.
func (v *View) CartCount() int { return len(v.state.Cart) }

// ToggleCheckout shows or hides the checkout summary and returns its visibility.
func (v *View) ToggleCheckout() bool {
	v.state.ShowCheckout = !v.state.ShowCheckout
	return v.state.ShowCheckout
}

// CheckoutVisible reports whether the checkout summary is shown.
func (v *View) CheckoutVisible() bool { return v.state.ShowCheckout }

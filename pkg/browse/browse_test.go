package browse

import (
	"errors"
	"testing"

	"motorbikes/pkg/catalog"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore([]catalog.Listing{
		{ID: "yamaha", Make: "Yamaha", Model: "MT-07", Year: 2020, Terrain: catalog.TerrainRoad, Price: 5000, Description: "Naked twin"},
		{ID: "honda", Make: "Honda", Model: "CB450", Year: 2019, Terrain: catalog.TerrainRoad, Price: 4500, Description: "Commuter"},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

func wideStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore([]catalog.Listing{
		{ID: "a", Make: "Yamaha", Model: "WR250F", Year: 2020, Terrain: catalog.TerrainOffroad, Price: 7299, Description: "Enduro"},
		{ID: "b", Make: "Honda", Model: "CB500F", Year: 2019, Terrain: catalog.TerrainRoad, Price: 6199, Description: "Roadster"},
		{ID: "c", Make: "KTM", Model: "390 Duke", Year: 2023, Terrain: catalog.TerrainRoad, Price: 5799, Description: "Street fighter"},
		{ID: "d", Make: "Yamaha", Model: "MT-07", Year: 2021, Terrain: catalog.TerrainRoad, Price: 7599, Description: "Crossplane twin"},
		{ID: "e", Make: "Kawasaki", Model: "KLX300R", Year: 2020, Terrain: catalog.TerrainOffroad, Price: 6199, Description: "Trail bike"},
		{ID: "f", Make: "Honda", Model: "CRF450RX", Year: 2022, Terrain: catalog.TerrainOffroad, Price: 9999, Description: "Cross country"},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

func ids(ls []catalog.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func equal(a, b []string) bool {
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

func TestMakeFilter(t *testing.T) {
	v := NewView(testStore(t), State{})
	v.SetMake("Yamaha")
	got := v.Visible()
	if len(got) != 1 || got[0].Make != "Yamaha" || got[0].Year != 2020 {
		t.Fatalf("unexpected visible: %+v", got)
	}
	v.SetMake("yamaha")
	if len(v.Visible()) != 0 {
		t.Fatal("make filter must be case-sensitive")
	}
}

func TestTerrainFilterIgnoresCase(t *testing.T) {
	v := NewView(wideStore(t), State{})
	v.SetTerrain("OFFROAD")
	if got := ids(v.Visible()); !equal(got, []string{"a", "e", "f"}) {
		t.Fatalf("unexpected visible: %v", got)
	}
}

func TestYearFilter(t *testing.T) {
	v := NewView(wideStore(t), State{})
	v.SetYear("2020")
	if got := ids(v.Visible()); !equal(got, []string{"a", "e"}) {
		t.Fatalf("unexpected visible: %v", got)
	}
	v.SetYear("twenty")
	if len(v.Visible()) != 0 {
		t.Fatalf("unparseable year must match nothing, got %v", ids(v.Visible()))
	}
	v.Clear(FieldYear)
	if len(v.Visible()) != 6 {
		t.Fatalf("clearing year should restore all, got %d", len(v.Visible()))
	}
}

func TestSearchExcludesPrice(t *testing.T) {
	v := NewView(testStore(t), State{})
	v.SetSearch("45")
	got := v.Visible()
	if len(got) != 1 || got[0].Make != "Honda" {
		t.Fatalf("unexpected visible: %+v", got)
	}

	s, _ := catalog.NewStore([]catalog.Listing{
		{ID: "x", Make: "Suzuki", Model: "SV650", Year: 2018, Terrain: catalog.TerrainRoad, Price: 4599},
	})
	v = NewView(s, State{})
	v.SetSearch("45")
	if len(v.Visible()) != 0 {
		t.Fatal("price must not be searched")
	}
}

func TestSearchFields(t *testing.T) {
	v := NewView(wideStore(t), State{})
	cases := map[string][]string{
		"yAmAhA":   {"a", "d"},
		"duke":     {"c"},
		"TRAIL":    {"e"},
		"202":      {"a", "c", "d", "e", "f"},
		"nothing!": {},
	}
	for text, want := range cases {
		v.SetSearch(text)
		if got := ids(v.Visible()); !equal(got, want) {
			t.Fatalf("search %q: expected %v, got %v", text, want, got)
		}
	}
	v.Clear(FieldSearch)
	if len(v.Visible()) != 6 {
		t.Fatal("clearing search should restore all")
	}
}

func TestSortPriceDesc(t *testing.T) {
	v := NewView(testStore(t), State{})
	v.SetSort(SortPriceDesc)
	got := v.Visible()
	if got[0].Price != 5000 || got[1].Price != 4500 {
		t.Fatalf("unexpected order: %v, %v", got[0].Price, got[1].Price)
	}
}

func TestSortStableAndIdempotent(t *testing.T) {
	v := NewView(wideStore(t), State{})
	v.SetSort(SortPriceAsc)
	first := ids(v.Visible())
	// b and e share a price and keep catalog order.
	if !equal(first, []string{"c", "b", "e", "a", "d", "f"}) {
		t.Fatalf("unexpected order: %v", first)
	}
	v.SetSort(SortPriceAsc)
	if !equal(ids(v.Visible()), first) {
		t.Fatal("sorting twice changed the order")
	}
	if again := ids(Apply(v.Visible(), Selection{Sort: SortPriceAsc})); !equal(again, first) {
		t.Fatalf("re-sorting a sorted view changed it: %v", again)
	}

	v.SetSort(SortYearDesc)
	if got := ids(v.Visible()); !equal(got, []string{"c", "f", "d", "a", "e", "b"}) {
		t.Fatalf("unexpected year-desc order: %v", got)
	}
	v.Clear(FieldSort)
	if got := ids(v.Visible()); !equal(got, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Fatalf("clearing sort should restore catalog order: %v", got)
	}
}

func TestClearIsOrderIndependent(t *testing.T) {
	store := wideStore(t)

	a := NewView(store, State{})
	a.SetMake("Honda")
	a.SetTerrain("Road")
	a.Clear(FieldMake)

	b := NewView(store, State{})
	b.SetTerrain("Road")
	b.SetMake("Honda")
	b.Clear(FieldMake)

	want := ids(Apply(store.All(), Selection{Terrain: "Road"}))
	if !equal(ids(a.Visible()), want) || !equal(ids(b.Visible()), want) {
		t.Fatalf("expected %v, got %v and %v", want, ids(a.Visible()), ids(b.Visible()))
	}
}

func TestVisibleIsSubsetOfCatalog(t *testing.T) {
	store := wideStore(t)
	all := make(map[string]bool)
	for _, l := range store.All() {
		all[l.ID] = true
	}
	for _, mk := range append(store.Makes(), "") {
		for _, terrain := range []string{"", "Road", "offroad"} {
			for _, year := range []string{"", "2020", "x"} {
				for _, k := range SortKeys {
					sel := Selection{Make: mk, Terrain: terrain, Year: year, Sort: k, Search: "o"}
					for _, l := range Apply(store.All(), sel) {
						if !all[l.ID] {
							t.Fatalf("listing %s not in catalog for %+v", l.ID, sel)
						}
					}
				}
			}
		}
	}
}

func TestOptionsIgnoreFilters(t *testing.T) {
	v := NewView(wideStore(t), State{})
	makes, years := len(v.Makes()), len(v.Years())
	v.SetMake("KTM")
	v.SetYear("2023")
	if len(v.Makes()) != makes || len(v.Years()) != years {
		t.Fatalf("options changed with filters: %v %v", v.Makes(), v.Years())
	}
}

func TestFlipFollowsListing(t *testing.T) {
	v := NewView(wideStore(t), State{})
	flipped, err := v.ToggleFlip("c")
	if err != nil || !flipped {
		t.Fatalf("flip: %v %v", flipped, err)
	}
	if _, err := v.ToggleFlip("a"); err != nil {
		t.Fatalf("flip: %v", err)
	}
	v.SetSort(SortYearDesc)
	if !v.IsFlipped("c") || !v.IsFlipped("a") || v.IsFlipped("b") {
		t.Fatal("flip state did not follow listings across a re-sort")
	}
	if flipped, _ := v.ToggleFlip("c"); flipped {
		t.Fatal("second toggle should show the front")
	}
	if !v.IsFlipped("a") {
		t.Fatal("toggling one card affected another")
	}
	if _, err := v.ToggleFlip("missing"); !errors.Is(err, catalog.ErrUnknownListing) {
		t.Fatalf("expected ErrUnknownListing, got %v", err)
	}
}

func TestCartKeepsDuplicates(t *testing.T) {
	v := NewView(testStore(t), State{})
	for i := 0; i < 2; i++ {
		if _, err := v.AddToCart("honda"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if v.CartCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", v.CartCount())
	}
	if _, err := v.AddToCart("nope"); !errors.Is(err, catalog.ErrUnknownListing) {
		t.Fatalf("expected ErrUnknownListing, got %v", err)
	}
	if v.CartCount() != 2 {
		t.Fatal("failed add changed the cart")
	}
}

func TestStateRoundTrip(t *testing.T) {
	store := wideStore(t)
	v := NewView(store, State{})
	v.SetMake("Honda")
	v.SetSort(SortPriceDesc)
	v.AddToCart("a")
	v.ToggleFlip("b")
	v.ToggleCheckout()

	st := v.State()
	restored := NewView(store, st)
	if !equal(ids(restored.Visible()), ids(v.Visible())) {
		t.Fatal("restored view differs")
	}
	if restored.CartCount() != 1 || !restored.IsFlipped("b") || !restored.CheckoutVisible() {
		t.Fatalf("restored state incomplete: %+v", restored.State())
	}

	restored.AddToCart("b")
	if v.CartCount() != 1 {
		t.Fatal("restored view shares cart storage with the original")
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseSortKey("price-asc"); err != nil {
		t.Fatalf("parse sort: %v", err)
	}
	if k, err := ParseSortKey(""); err != nil || k != SortNone {
		t.Fatalf("empty sort: %v %v", k, err)
	}
	if _, err := ParseSortKey("alpha"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if _, err := ParseField("colour"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

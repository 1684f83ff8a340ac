package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// listingNamespace seeds the deterministic IDs given to records that carry none.
var listingNamespace = uuid.MustParse("6f1c2a8e-4d0b-5b7e-9a53-2c0e8f4b7d19")

// Store is the immutable, loaded catalog. It is safe for concurrent reads.
type Store struct {
	listings []Listing
	byID     map[string]int
	makes    []string
	years    []int
}

// NewStore validates and copies listings into a Store. Records without an ID
// receive one derived from their make, model, year and position.
func NewStore(listings []Listing) (*Store, error) {
	s := &Store{
		listings: make([]Listing, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}
	copy(s.listings, listings)

	seenMake := make(map[string]bool)
	seenYear := make(map[int]bool)
	for i := range s.listings {
		l := &s.listings[i]
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if l.ID == "" {
			l.ID = deriveID(*l, i)
		}
		if _, dup := s.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate id %q: %w", l.ID, ErrInvalidListing)
		}
		s.byID[l.ID] = i

		if !seenMake[l.Make] {
			seenMake[l.Make] = true
			s.makes = append(s.makes, l.Make)
		}
		if !seenYear[l.Year] {
			seenYear[l.Year] = true
			s.years = append(s.years, l.Year)
		}
	}
	slices.Sort(s.years)
	return s, nil
}

func deriveID(l Listing, pos int) string {
	key := strings.Join([]string{l.Make, l.Model, strconv.Itoa(l.Year), strconv.Itoa(pos)}, "|")
	return uuid.NewSHA1(listingNamespace, []byte(key)).String()
}

// All returns a copy of every listing in catalog order.
func (s *Store) All() []Listing {
	return slices.Clone(s.listings)
}

// Len returns the number of listings.
func (s *Store) Len() int { return len(s.listings) }

// Get returns the listing with the given ID.
func (s *Store) Get(id string) (Listing, error) {
	i, ok := s.byID[id]
	if !ok {
		return Listing{}, fmt.Errorf("%s: %w", id, ErrUnknownListing)
	}
	return s.listings[i], nil
}

// Makes returns the distinct makes in first-seen order.
func (s *Store) Makes() []string {
	return slices.Clone(s.makes)
}

// Years returns the distinct model years in ascending order.
func (s *Store) Years() []int {
	return slices.Clone(s.years)
}

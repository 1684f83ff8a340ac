// Package catalog holds the motorbike listings offered for browsing.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Terrain classifies the surface a motorbike is built for.
type Terrain string

const (
	TerrainRoad    Terrain = "Road"
	TerrainOffroad Terrain = "Offroad"
)

// Terrains lists every terrain in display order.
var Terrains = []Terrain{TerrainOffroad, TerrainRoad}

// ParseTerrain matches s against the known terrains ignoring case.
func ParseTerrain(s string) (Terrain, error) {
	for _, t := range Terrains {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("terrain %q: %w", s, ErrInvalidListing)
}

// Listing represents a single motorbike for sale.
type Listing struct {
	ID           string  `json:"ID"`
	Make         string  `json:"Make"`
	Model        string  `json:"Model"`
	Year         int     `json:"Year"`
	Terrain      Terrain `json:"Terrain"`
	Displacement float64 `json:"Displacement"`
	Price        float64 `json:"Price"`
	Description  string  `json:"Description"`
	Image        string  `json:"Image"`
}

// Validate reports whether the listing satisfies the catalog schema.
func (l Listing) Validate() error {
	if l.Make == "" || l.Model == "" {
		return fmt.Errorf("listing %q: make and model are required: %w", l.ID, ErrInvalidListing)
	}
	if l.Price < 0 {
		return fmt.Errorf("listing %s %s: negative price: %w", l.Make, l.Model, ErrInvalidListing)
	}
	if _, err := ParseTerrain(string(l.Terrain)); err != nil {
		return fmt.Errorf("listing %s %s: %w", l.Make, l.Model, err)
	}
	return nil
}

// Source loads the raw catalog records once at startup.
type Source interface {
	Load(ctx context.Context) ([]Listing, error)
}

var (
	// ErrInvalidListing indicates a catalog record violates the schema.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrUnknownListing indicates no listing has the requested ID.
	ErrUnknownListing = errors.New("listing not found")
)

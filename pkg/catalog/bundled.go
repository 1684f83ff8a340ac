package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

//go:embed data/bikes.json
var bundledJSON []byte

// Decode reads a JSON array of listings.
func Decode(r io.Reader) ([]Listing, error) {
	var listings []Listing
	if err := json.NewDecoder(r).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return listings, nil
}

// BundledSource serves the catalog compiled into the binary.
type BundledSource struct{}

// Bundled returns the source backed by the embedded bikes.json.
func Bundled() BundledSource { return BundledSource{} }

// Load decodes the embedded catalog.
func (BundledSource) Load(ctx context.Context) ([]Listing, error) {
	return Decode(bytes.NewReader(bundledJSON))
}

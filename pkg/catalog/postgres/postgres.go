// Package postgres loads the catalog from a PostgreSQL listings table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"motorbikes/pkg/catalog"
)

const schema = `CREATE TABLE IF NOT EXISTS listings (
	position INT PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	make TEXT NOT NULL,
	model TEXT NOT NULL,
	year INT NOT NULL,
	terrain TEXT NOT NULL,
	displacement NUMERIC(8,1) NOT NULL,
	price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	description TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT ''
)`

// Source reads catalog listings from PostgreSQL.
type Source struct {
	db *sql.DB
}

// New creates a PostgreSQL catalog source.
func New(db *sql.DB) *Source {
	return &Source{db: db}
}

// EnsureSchema creates the listings table if it does not exist.
func (s *Source) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

// Load fetches every listing in catalog order.
func (s *Source) Load(ctx context.Context) ([]catalog.Listing, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id,make,model,year,terrain,displacement,price,description,image FROM listings ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var listings []catalog.Listing
	for rows.Next() {
		var l catalog.Listing
		var terrain string
		if err := rows.Scan(&l.ID, &l.Make, &l.Model, &l.Year, &terrain, &l.Displacement, &l.Price, &l.Description, &l.Image); err != nil {
			return nil, err
		}
		l.Terrain = catalog.Terrain(terrain)
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Insert seeds the table with listings, using their slice index as position.
// The listings must already carry IDs.
func (s *Source) Insert(ctx context.Context, listings []catalog.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO listings (position,id,make,model,year,terrain,displacement,price,description,image) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx, i, l.ID, l.Make, l.Model, l.Year, string(l.Terrain), l.Displacement, l.Price, l.Description, l.Image); err != nil {
			return fmt.Errorf("insert %s %s: %w", l.Make, l.Model, err)
		}
	}
	return tx.Commit()
}

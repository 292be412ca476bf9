// Package navdata reads airport geometry from a Little Navmap navigation
// database and answers point-in-boundary lookups through an rtree index.
package navdata

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"flightlog/pkg/geo"

	_ "modernc.org/sqlite" // Register driver
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Airport is one row of the airport table, with its boundary rectangle.
type Airport struct {
	ID       int64
	Ident    string
	Position geo.LatLon
	Bounds   orb.Bound
}

// Init opens the navigation database.
func Init(path string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create navdata dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open navdata: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping navdata: %w", err)
	}

	// Enable WAL mode for better concurrency and set busy timeout
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	d := &DB{db}
	// Enforce single connection to avoid SQLITE_BUSY errors during concurrent writes
	db.SetMaxOpenConns(1)

	return d, nil
}

// Bootstrap builds the rtree index over the airport boundary rectangles.
// Safe to run on every start; already indexed airports are skipped.
func (d *DB) Bootstrap() error {
	queries := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS airport_coords USING rtree(
			airport_id, left_lonx, right_lonx, bottom_laty, top_laty
		);`,
		`INSERT OR IGNORE INTO airport_coords
			SELECT airport_id, left_lonx, right_lonx, bottom_laty, top_laty FROM airport;`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}

	return nil
}

// FindContaining returns the airport whose boundary rectangle contains pos,
// or nil when the position is not inside any airport. The rtree narrows the
// candidates; the exact rectangle from the airport table decides, since the
// rtree stores coordinates at reduced precision.
func (d *DB) FindContaining(pos geo.LatLon) (*Airport, error) {
	rows, err := d.Query(`
		SELECT a.airport_id, a.ident, a.laty, a.lonx,
		       a.left_lonx, a.right_lonx, a.bottom_laty, a.top_laty
		  FROM airport a
		  WHERE a.airport_id IN (
			SELECT airport_id FROM airport_coords
			  WHERE left_lonx <= ? AND right_lonx >= ?
			    AND bottom_laty <= ? AND top_laty >= ?
		  )`,
		pos.Lon, pos.Lon, pos.Lat, pos.Lat)
	if err != nil {
		return nil, fmt.Errorf("airport lookup: %w", err)
	}
	defer rows.Close()

	point := orb.Point{pos.Lon, pos.Lat}
	for rows.Next() {
		var (
			airport               geo.LatLon
			id                    int64
			ident                 string
			left, right, bot, top float64
		)
		if err := rows.Scan(&id, &ident, &airport.Lat, &airport.Lon, &left, &right, &bot, &top); err != nil {
			return nil, fmt.Errorf("airport lookup: %w", err)
		}
		bounds := orb.Bound{Min: orb.Point{left, bot}, Max: orb.Point{right, top}}
		if bounds.Contains(point) {
			return &Airport{ID: id, Ident: ident, Position: airport, Bounds: bounds}, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("airport lookup: %w", err)
	}

	return nil, nil
}

// Lookup finds the airport containing an aircraft position.
type Lookup interface {
	FindContaining(pos geo.LatLon) (*Airport, error)
}

// Check verifies the database holds an airport table, catching a path that
// points at an empty or unrelated sqlite file.
func (d *DB) Check() error {
	var count int
	err := d.QueryRow("SELECT count(*) FROM airport").Scan(&count)
	if err != nil {
		return fmt.Errorf("navdata has no airport table: %w", err)
	}
	if count == 0 {
		return errors.New("navdata airport table is empty")
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("record not found")
)

// seedCities are the cities the map view knows without any manual entry.
var seedCities = []struct {
	Name     string
	Lat, Lng float64
}{
	{"Mumbai", 19.0760, 72.8777},
	{"Delhi", 28.6139, 77.2090},
	{"Bangalore", 12.9716, 77.5946},
	{"Hyderabad", 17.3850, 78.4867},
	{"Ahmedabad", 23.0225, 72.5714},
	{"Chennai", 13.0827, 80.2707},
	{"Kolkata", 22.5726, 88.3639},
	{"Pune", 18.5204, 73.8567},
	{"Jaipur", 26.9124, 75.7873},
	{"Lucknow", 26.8467, 80.9462},
}

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates the gazetteer table and seeds the known cities.
// Seeding never overwrites a manually edited row.
func InitializeSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS city_coordinates (
		name TEXT PRIMARY KEY COLLATE NOCASE,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		source TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create city_coordinates table: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return RetryOnLock(ctx, func() error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin seed transaction: %w", err)
		}
		defer tx.Rollback()

		now := time.Now().UTC()
		for _, c := range seedCities {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO city_coordinates (name, latitude, longitude, source, updated_at) VALUES (?, ?, ?, 'seed', ?)`,
				c.Name, c.Lat, c.Lng, now,
			); err != nil {
				return fmt.Errorf("failed to seed city %s: %w", c.Name, err)
			}
		}
		return tx.Commit()
	})
}

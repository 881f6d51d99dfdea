package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"employee-portal/models"
)

// CityRepository reads the city gazetteer.
type CityRepository interface {
	FindByName(ctx context.Context, name string) (*models.CityCoordinates, error)
	FindAll(ctx context.Context) ([]*models.CityCoordinates, error)
}

type SQLiteCityRepository struct {
	db *sql.DB
}

func NewSQLiteCityRepository(db *sql.DB) *SQLiteCityRepository {
	return &SQLiteCityRepository{db: db}
}

// FindByName looks a city up case-insensitively.
func (r *SQLiteCityRepository) FindByName(ctx context.Context, name string) (*models.CityCoordinates, error) {
	query := `
		SELECT name, latitude, longitude, source, updated_at
		FROM city_coordinates
		WHERE name = ?
	`

	var city models.CityCoordinates
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(name)).Scan(
		&city.Name, &city.Latitude, &city.Longitude, &city.Source, &city.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find city by name: %w", err)
	}

	return &city, nil
}

func (r *SQLiteCityRepository) FindAll(ctx context.Context) ([]*models.CityCoordinates, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, latitude, longitude, source, updated_at
		FROM city_coordinates
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []*models.CityCoordinates
	for rows.Next() {
		var city models.CityCoordinates
		if err := rows.Scan(&city.Name, &city.Latitude, &city.Longitude, &city.Source, &city.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, &city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}

	return cities, nil
}

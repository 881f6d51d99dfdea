package geo

import (
	"context"
	"errors"
	"hash/fnv"
	"log"
	"strings"

	"employee-portal/db"
	"employee-portal/models"
)

const (
	// Centre and zoom of the map view.
	CenterLat   = 20.5937
	CenterLng   = 78.9629
	DefaultZoom = 5
	// Unknown cities are scattered within this many degrees of the centre.
	scatter = 5.0

	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

type Point struct {
	Lat, Lng    float64
	Approximate bool
}

type GeoService struct {
	cities db.CityRepository
}

func NewGeoService(cities db.CityRepository) *GeoService {
	return &GeoService{cities: cities}
}

// Locate returns the gazetteer position of city. Cities that are not in the
// gazetteer, or lookups that fail, get a stable position near the centre.
func (s *GeoService) Locate(ctx context.Context, city string) Point {
	if s.cities != nil && strings.TrimSpace(city) != "" {
		found, err := s.cities.FindByName(ctx, city)
		if err == nil {
			return Point{Lat: found.Latitude, Lng: found.Longitude}
		}
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("Error looking up city %q: %v", city, err)
		}
	}
	return approximate(city)
}

// Markers builds one marker per record, in record order. The gazetteer is
// read once per call; when that read fails every city is approximated.
func (s *GeoService) Markers(ctx context.Context, employees []models.Employee) []models.Marker {
	known := s.gazetteer(ctx)

	markers := make([]models.Marker, 0, len(employees))
	for _, e := range employees {
		p, ok := known[cityKey(e.City)]
		if !ok {
			p = approximate(e.City)
		}
		markers = append(markers, models.Marker{
			Name:        e.Name,
			Designation: e.Designation,
			City:        e.City,
			Latitude:    p.Lat,
			Longitude:   p.Lng,
			Approximate: p.Approximate,
		})
	}
	return markers
}

func (s *GeoService) gazetteer(ctx context.Context) map[string]Point {
	known := make(map[string]Point)
	if s.cities == nil {
		return known
	}
	cities, err := s.cities.FindAll(ctx)
	if err != nil {
		log.Printf("Error loading city gazetteer: %v", err)
		return known
	}
	for _, c := range cities {
		known[cityKey(c.Name)] = Point{Lat: c.Latitude, Lng: c.Longitude}
	}
	return known
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// approximate derives an offset in [-scatter, scatter) on each axis from an
// FNV hash of the name so the same city always lands on the same spot.
func approximate(city string) Point {
	h := fnv.New64a()
	h.Write([]byte(cityKey(city)))
	sum := h.Sum64()

	latFrac := float64(sum>>32) / float64(1<<32)
	lngFrac := float64(sum&0xffffffff) / float64(1<<32)
	return Point{
		Lat:         CenterLat + (latFrac-0.5)*scatter*2,
		Lng:         CenterLng + (lngFrac-0.5)*scatter*2,
		Approximate: true,
	}
}

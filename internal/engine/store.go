package engine

import (
	"fmt"
	"sync"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// FlightRecord pairs an admitted flight with its seat inventory.
type FlightRecord struct {
	Flight    models.Flight
	Inventory *SeatInventory
}

// FlightStore is the append-only registry of admitted flights.
type FlightStore struct {
	mu      sync.RWMutex
	flights map[string]*FlightRecord
	order   []string
}

// NewFlightStore creates an empty flight registry.
func NewFlightStore() *FlightStore {
	return &FlightStore{flights: make(map[string]*FlightRecord)}
}

// Add registers an admitted flight. Flight codes are unique; a
// re-used code is rejected (a changed schedule is a new flight with a
// new code, never an overwrite).
func (s *FlightStore) Add(flight models.Flight, inv *SeatInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.flights[flight.FlightCode]; exists {
		return fmt.Errorf("%w: flight %s", ErrDuplicateCode, flight.FlightCode)
	}
	s.flights[flight.FlightCode] = &FlightRecord{Flight: flight, Inventory: inv}
	s.order = append(s.order, flight.FlightCode)
	return nil
}

// Get returns the record for a flight code.
func (s *FlightStore) Get(code string) (*FlightRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.flights[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlightNotFound, code)
	}
	return rec, nil
}

// List returns all admitted flights in admission order.
func (s *FlightStore) List() []models.Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Flight, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.flights[code].Flight)
	}
	return out
}

// AirportStore holds immutable airport reference data.
type AirportStore struct {
	airports map[string]models.Airport
	order    []string
}

// NewAirportStore seeds the registry.
func NewAirportStore(airports []models.Airport) *AirportStore {
	s := &AirportStore{airports: make(map[string]models.Airport, len(airports))}
	for _, a := range airports {
		s.airports[a.AirportCode] = a
		s.order = append(s.order, a.AirportCode)
	}
	return s
}

// Get returns an airport by code.
func (s *AirportStore) Get(code string) (models.Airport, error) {
	a, ok := s.airports[code]
	if !ok {
		return models.Airport{}, fmt.Errorf("airport not found: %s", code)
	}
	return a, nil
}

// List returns all airports in seed order.
func (s *AirportStore) List() []models.Airport {
	out := make([]models.Airport, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.airports[code])
	}
	return out
}

// PlaneStore holds immutable plane reference data.
type PlaneStore struct {
	planes map[string]models.Plane
	order  []string
}

// NewPlaneStore seeds the registry.
func NewPlaneStore(planes []models.Plane) *PlaneStore {
	s := &PlaneStore{planes: make(map[string]models.Plane, len(planes))}
	for _, p := range planes {
		s.planes[p.PlaneCode] = p
		s.order = append(s.order, p.PlaneCode)
	}
	return s
}

// Get returns a plane by code.
func (s *PlaneStore) Get(code string) (models.Plane, error) {
	p, ok := s.planes[code]
	if !ok {
		return models.Plane{}, fmt.Errorf("plane not found: %s", code)
	}
	return p, nil
}

// List returns all planes in seed order.
func (s *PlaneStore) List() []models.Plane {
	out := make([]models.Plane, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.planes[code])
	}
	return out
}

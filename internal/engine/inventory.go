package engine

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

type seat struct {
	number    string
	className string
	booked    bool
}

// SeatInventory is the seat map of one flight, keyed by fare class.
// It is created when a flight is admitted and lives as long as the
// flight record. Claim is the single point of mutual exclusion for
// concurrent booking attempts.
type SeatInventory struct {
	mu         sync.Mutex
	flightCode string
	classes    []models.FareClass
	prices     map[string]float64
	seats      map[string]*seat
	order      []string
}

// NewSeatInventory builds the seat map for a flight from its plane's
// class configuration. Seat numbers are classname + 2-digit index
// ("A01", "A02", ...). Unit prices are the base price times the
// class's ratio, rounded to the nearest whole unit.
func NewSeatInventory(flightCode string, basePrice float64, classes []models.SeatClassConfig) *SeatInventory {
	inv := &SeatInventory{
		flightCode: flightCode,
		prices:     make(map[string]float64),
		seats:      make(map[string]*seat),
	}
	for _, cfg := range classes {
		price := math.Round(basePrice * cfg.PriceRatio)
		inv.prices[cfg.ClassName] = price
		inv.classes = append(inv.classes, models.FareClass{
			ClassName: cfg.ClassName,
			UnitPrice: price,
			SeatCount: cfg.SeatCount,
		})
		for i := 1; i <= cfg.SeatCount; i++ {
			num := fmt.Sprintf("%s%02d", cfg.ClassName, i)
			inv.seats[num] = &seat{number: num, className: cfg.ClassName}
			inv.order = append(inv.order, num)
		}
	}
	sort.Strings(inv.order)
	return inv
}

// FareClasses returns the flight's fare classes with their unit prices.
func (inv *SeatInventory) FareClasses() []models.FareClass {
	out := make([]models.FareClass, len(inv.classes))
	copy(out, inv.classes)
	return out
}

// PriceFor returns the unit price of a fare class.
func (inv *SeatInventory) PriceFor(className string) (float64, error) {
	price, ok := inv.prices[className]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	return price, nil
}

// Claim atomically marks a seat booked. Under concurrent claims on the
// same seat number exactly one caller succeeds; the rest get
// ErrSeatAlreadyBooked.
func (inv *SeatInventory) Claim(seatNumber string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	st, ok := inv.seats[seatNumber]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, seatNumber)
	}
	if st.booked {
		return ErrSeatAlreadyBooked
	}
	st.booked = true
	return nil
}

// Release clears a seat's booked flag. Only the ticket ledger calls
// this, on cancellation; expiry leaves the flag set.
func (inv *SeatInventory) Release(seatNumber string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	st, ok := inv.seats[seatNumber]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, seatNumber)
	}
	st.booked = false
	return nil
}

// ClassOf returns the fare class a seat belongs to.
func (inv *SeatInventory) ClassOf(seatNumber string) (string, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	st, ok := inv.seats[seatNumber]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSeat, seatNumber)
	}
	return st.className, nil
}

// ListAvailable returns the currently free seats of a class. The
// result is a point-in-time snapshot, not a live view.
func (inv *SeatInventory) ListAvailable(className string) ([]models.Seat, error) {
	if _, ok := inv.prices[className]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	var out []models.Seat
	for _, num := range inv.order {
		st := inv.seats[num]
		if st.className == className && !st.booked {
			out = append(out, inv.snapshotLocked(st))
		}
	}
	return out, nil
}

// Seats returns a snapshot of every seat, in seat-number order.
func (inv *SeatInventory) Seats() []models.Seat {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]models.Seat, 0, len(inv.order))
	for _, num := range inv.order {
		out = append(out, inv.snapshotLocked(inv.seats[num]))
	}
	return out
}

func (inv *SeatInventory) snapshotLocked(st *seat) models.Seat {
	return models.Seat{
		SeatNumber: st.number,
		ClassName:  st.className,
		Price:      inv.prices[st.className],
		IsBooked:   st.booked,
	}
}

package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// Passenger is the identity captured on a ticket.
type Passenger struct {
	FullName    string
	IDCard      string
	PhoneNumber string
	Email       string
}

// TicketLedger owns the ticket state machine. ACTIVE is the only
// non-terminal status; CANCELLED and EXPIRED are terminal and a
// terminal ticket can never be re-transitioned. Every transition
// happens under the ledger lock, so status checks and writes are a
// single atomic step.
type TicketLedger struct {
	mu       sync.RWMutex
	tickets  map[uuid.UUID]*models.Ticket
	byFlight map[string][]uuid.UUID
	order    []uuid.UUID

	flights *FlightStore
	policy  *PolicyStore
	now     func() time.Time
}

// NewTicketLedger creates a ledger over the given flight registry and
// regulation store.
func NewTicketLedger(flights *FlightStore, policy *PolicyStore) *TicketLedger {
	return &TicketLedger{
		tickets:  make(map[uuid.UUID]*models.Ticket),
		byFlight: make(map[string][]uuid.UUID),
		flights:  flights,
		policy:   policy,
		now:      time.Now,
	}
}

// SetClock overrides the ledger's clock. Test use only.
func (l *TicketLedger) SetClock(now func() time.Time) {
	l.now = now
}

// Book claims a seat and issues an ACTIVE ticket for it. DIRECT sales
// only require the flight not to have departed; PRE_ORDER bookings
// must additionally happen at least LatestTicketPurchaseTime days
// before departure. The seat claim is performed exactly once.
func (l *TicketLedger) Book(flightCode, seatNumber string, passenger Passenger, bookingType models.BookingType) (*models.Ticket, error) {
	rec, err := l.flights.Get(flightCode)
	if err != nil {
		return nil, &BookingError{Code: BookingFlightNotFound, Detail: fmt.Sprintf("flight %s does not exist", flightCode)}
	}

	now := l.now()
	params := l.policy.Get()

	if !rec.Flight.DepartureDate.After(now) {
		return nil, &BookingError{Code: BookingRegulationViolation, Detail: "flight has already departed"}
	}
	if bookingType == models.BookingTypePreOrder {
		deadline := rec.Flight.DepartureDate.Add(-time.Duration(params.LatestTicketPurchaseTime) * 24 * time.Hour)
		if now.After(deadline) {
			return nil, &BookingError{
				Code:   BookingRegulationViolation,
				Detail: fmt.Sprintf("pre-orders close %d day(s) before departure", params.LatestTicketPurchaseTime),
			}
		}
	}

	if err := rec.Inventory.Claim(seatNumber); err != nil {
		if errors.Is(err, ErrSeatAlreadyBooked) {
			return nil, &BookingError{Code: BookingSeatUnavailable, Detail: fmt.Sprintf("seat %s is already booked", seatNumber)}
		}
		return nil, err
	}

	className, err := rec.Inventory.ClassOf(seatNumber)
	if err != nil {
		// The claim above proved the seat exists; reaching here means
		// the inventory broke its own contract.
		rec.Inventory.Release(seatNumber)
		return nil, fmt.Errorf("inventory inconsistent for seat %s: %w", seatNumber, err)
	}
	price, err := rec.Inventory.PriceFor(className)
	if err != nil {
		rec.Inventory.Release(seatNumber)
		return nil, fmt.Errorf("inventory inconsistent for class %s: %w", className, err)
	}

	ticket := &models.Ticket{
		ID:          uuid.New(),
		FlightCode:  flightCode,
		SeatNumber:  seatNumber,
		FullName:    passenger.FullName,
		IDCard:      passenger.IDCard,
		PhoneNumber: passenger.PhoneNumber,
		Email:       passenger.Email,
		BookingType: bookingType,
		Status:      models.TicketStatusActive,
		Price:       price,
		CreatedAt:   now,
	}

	l.mu.Lock()
	l.tickets[ticket.ID] = ticket
	l.byFlight[flightCode] = append(l.byFlight[flightCode], ticket.ID)
	l.order = append(l.order, ticket.ID)
	l.mu.Unlock()

	out := *ticket
	return &out, nil
}

// Cancel moves an ACTIVE ticket to CANCELLED and frees its seat.
// Cancellation is only allowed up to TicketCancellationTime minutes
// before departure. A terminal ticket fails with AlreadyTerminal and
// the seat is never double-released.
func (l *TicketLedger) Cancel(ticketID uuid.UUID) (*models.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets[ticketID]
	if !ok {
		return nil, &TransitionError{Code: TransitionNotFound, Detail: fmt.Sprintf("ticket %s does not exist", ticketID)}
	}
	if ticket.Status != models.TicketStatusActive {
		return nil, &TransitionError{Code: TransitionAlreadyTerminal, Detail: fmt.Sprintf("ticket is already %s", ticket.Status)}
	}

	rec, err := l.flights.Get(ticket.FlightCode)
	if err != nil {
		return nil, fmt.Errorf("ticket %s references missing flight %s: %w", ticketID, ticket.FlightCode, err)
	}

	params := l.policy.Get()
	deadline := rec.Flight.DepartureDate.Add(-time.Duration(params.TicketCancellationTime) * time.Minute)
	if l.now().After(deadline) {
		return nil, &TransitionError{
			Code:   TransitionTooLateToCancel,
			Detail: fmt.Sprintf("cancellation closes %d minute(s) before departure", params.TicketCancellationTime),
		}
	}

	ticket.Status = models.TicketStatusCancelled
	if err := rec.Inventory.Release(ticket.SeatNumber); err != nil {
		return nil, fmt.Errorf("releasing seat %s: %w", ticket.SeatNumber, err)
	}

	out := *ticket
	return &out, nil
}

// Expire moves an ACTIVE ticket to EXPIRED once its flight has
// departed. The seat's booked flag is left set: the flight has flown
// and the seat is not re-offered.
func (l *TicketLedger) Expire(ticketID uuid.UUID) (*models.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expireLocked(ticketID)
}

func (l *TicketLedger) expireLocked(ticketID uuid.UUID) (*models.Ticket, error) {
	ticket, ok := l.tickets[ticketID]
	if !ok {
		return nil, &TransitionError{Code: TransitionNotFound, Detail: fmt.Sprintf("ticket %s does not exist", ticketID)}
	}
	if ticket.Status != models.TicketStatusActive {
		return nil, &TransitionError{Code: TransitionAlreadyTerminal, Detail: fmt.Sprintf("ticket is already %s", ticket.Status)}
	}

	rec, err := l.flights.Get(ticket.FlightCode)
	if err != nil {
		return nil, fmt.Errorf("ticket %s references missing flight %s: %w", ticketID, ticket.FlightCode, err)
	}
	if l.now().Before(rec.Flight.DepartureDate) {
		return nil, &TransitionError{Code: TransitionNotYetDeparted, Detail: "flight has not departed yet"}
	}

	ticket.Status = models.TicketStatusExpired
	out := *ticket
	return &out, nil
}

// ExpireDue applies Expire to every ACTIVE ticket whose flight has
// departed and returns the tickets it expired. Expiry is always an
// explicit call, never a background timer.
func (l *TicketLedger) ExpireDue() []models.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	var expired []models.Ticket
	for _, id := range l.order {
		ticket := l.tickets[id]
		if ticket.Status != models.TicketStatusActive {
			continue
		}
		if t, err := l.expireLocked(id); err == nil {
			expired = append(expired, *t)
		}
	}
	return expired
}

// Get returns a copy of one ticket.
func (l *TicketLedger) Get(ticketID uuid.UUID) (*models.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ticket, ok := l.tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, ticketID)
	}
	out := *ticket
	return &out, nil
}

// List returns every ticket in booking order, all statuses included.
func (l *TicketLedger) List() []models.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Ticket, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.tickets[id])
	}
	return out
}

// ListByFlight returns every ticket for a flight in booking order,
// all statuses included.
func (l *TicketLedger) ListByFlight(flightCode string) []models.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := l.byFlight[flightCode]
	out := make([]models.Ticket, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.tickets[id])
	}
	return out
}

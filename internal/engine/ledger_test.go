package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

var bookingNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func testPassenger() Passenger {
	return Passenger{
		FullName:    "Nguyen Van A",
		IDCard:      "079012345678",
		PhoneNumber: "0901234567",
		Email:       "a@example.com",
	}
}

// ledgerFixture builds a ledger with one flight departing at the given
// time and a fixed clock at bookingNow. The flight has one seat in
// class A (500000) and one in class B (300000).
func ledgerFixture(t *testing.T, departure time.Time) (*TicketLedger, *FlightStore, *PolicyStore) {
	t.Helper()

	params := models.DefaultParameters()
	params.LatestTicketPurchaseTime = 1
	params.TicketCancellationTime = 60
	policy := NewPolicyStore(params)

	flights := NewFlightStore()
	flight := models.Flight{
		FlightCode:       "VN201",
		DepartureAirport: "HAN",
		ArrivalAirport:   "SGN",
		DepartureDate:    departure,
		Duration:         120,
		BasePrice:        500000,
		PlaneCode:        "VN-A321",
		CreatedAt:        bookingNow.Add(-24 * time.Hour),
	}
	inv := NewSeatInventory("VN201", 500000, []models.SeatClassConfig{
		{ClassName: "A", SeatCount: 1, PriceRatio: 1.0},
		{ClassName: "B", SeatCount: 1, PriceRatio: 0.6},
	})
	require.NoError(t, flights.Add(flight, inv))

	ledger := NewTicketLedger(flights, policy)
	ledger.SetClock(func() time.Time { return bookingNow })
	return ledger, flights, policy
}

func TestBook_DirectSuccess(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusActive, ticket.Status)
	assert.Equal(t, 500000.0, ticket.Price)
	assert.Equal(t, "A01", ticket.SeatNumber)
	assert.Equal(t, bookingNow, ticket.CreatedAt)
}

func TestBook_FlightNotFound(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	_, err := ledger.Book("VN999", "A01", testPassenger(), models.BookingTypeDirect)
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, BookingFlightNotFound, bErr.Code)
}

func TestBook_SeatUnavailable(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	_, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	_, err = ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, BookingSeatUnavailable, bErr.Code)
}

func TestBook_DepartedFlight(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(-time.Hour))

	_, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, BookingRegulationViolation, bErr.Code)
}

// With a 1-day purchase window, a pre-order 12 hours before departure
// is refused while a direct sale at the same moment goes through.
func TestBook_PreOrderWindow(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(12*time.Hour))

	_, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypePreOrder)
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, BookingRegulationViolation, bErr.Code)

	_, err = ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	assert.NoError(t, err)
}

func TestBook_PreOrderInsideWindow(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	ticket, err := ledger.Book("VN201", "B01", testPassenger(), models.BookingTypePreOrder)
	require.NoError(t, err)
	assert.Equal(t, models.BookingTypePreOrder, ticket.BookingType)
	assert.Equal(t, 300000.0, ticket.Price)
}

func TestBook_ConcurrentSameSeatOneWinner(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			var bErr *BookingError
			require.ErrorAs(t, err, &bErr)
			assert.Equal(t, BookingSeatUnavailable, bErr.Code)
		}
	}
	assert.Equal(t, 1, wins)

	active := 0
	for _, ticket := range ledger.ListByFlight("VN201") {
		if ticket.Status == models.TicketStatusActive && ticket.SeatNumber == "A01" {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestCancel_FreesSeatForRebooking(t *testing.T) {
	ledger, flights, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	cancelled, err := ledger.Cancel(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusCancelled, cancelled.Status)

	rec, err := flights.Get("VN201")
	require.NoError(t, err)
	free, err := rec.Inventory.ListAvailable("A")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "A01", free[0].SeatNumber)

	_, err = ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	assert.NoError(t, err)
}

func TestCancel_TooLate(t *testing.T) {
	// Departure 30 minutes out, cancellation closes 60 minutes before.
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(30*time.Minute))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	_, err = ledger.Cancel(ticket.ID)
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, TransitionTooLateToCancel, tErr.Code)

	got, err := ledger.Get(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusActive, got.Status)
}

func TestCancel_TerminalIsNotRetransitioned(t *testing.T) {
	ledger, flights, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	_, err = ledger.Cancel(ticket.ID)
	require.NoError(t, err)

	// A second booking takes the freed seat; cancelling the first
	// ticket again must not release it out from under the new owner.
	_, err = ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	_, err = ledger.Cancel(ticket.ID)
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, TransitionAlreadyTerminal, tErr.Code)

	rec, err := flights.Get("VN201")
	require.NoError(t, err)
	free, err := rec.Inventory.ListAvailable("A")
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestCancel_NotFound(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	_, err := ledger.Cancel(uuid.New())
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, TransitionNotFound, tErr.Code)
}

func TestExpire_OnlyAfterDeparture(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	_, err = ledger.Expire(ticket.ID)
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, TransitionNotYetDeparted, tErr.Code)

	ledger.SetClock(func() time.Time { return bookingNow.Add(73 * time.Hour) })
	expired, err := ledger.Expire(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusExpired, expired.Status)
}

// Expiry marks the ticket but leaves the seat booked: the flight has
// flown, the seat is not re-offered.
func TestExpire_DoesNotFreeSeat(t *testing.T) {
	ledger, flights, _ := ledgerFixture(t, bookingNow.Add(time.Hour))

	ticket, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	ledger.SetClock(func() time.Time { return bookingNow.Add(2 * time.Hour) })
	_, err = ledger.Expire(ticket.ID)
	require.NoError(t, err)

	rec, err := flights.Get("VN201")
	require.NoError(t, err)
	free, err := rec.Inventory.ListAvailable("A")
	require.NoError(t, err)
	assert.Empty(t, free)

	_, err = ledger.Expire(ticket.ID)
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, TransitionAlreadyTerminal, tErr.Code)
}

func TestExpireDue_SweepsOnlyDepartedActives(t *testing.T) {
	params := models.DefaultParameters()
	policy := NewPolicyStore(params)
	flights := NewFlightStore()

	classes := []models.SeatClassConfig{{ClassName: "A", SeatCount: 2, PriceRatio: 1.0}}
	departed := models.Flight{
		FlightCode: "VN101", DepartureAirport: "HAN", ArrivalAirport: "SGN",
		DepartureDate: bookingNow.Add(-time.Hour), Duration: 120, BasePrice: 400000,
	}
	upcoming := models.Flight{
		FlightCode: "VN102", DepartureAirport: "SGN", ArrivalAirport: "HAN",
		DepartureDate: bookingNow.Add(72 * time.Hour), Duration: 120, BasePrice: 400000,
	}
	require.NoError(t, flights.Add(departed, NewSeatInventory("VN101", 400000, classes)))
	require.NoError(t, flights.Add(upcoming, NewSeatInventory("VN102", 400000, classes)))

	ledger := NewTicketLedger(flights, policy)
	ledger.SetClock(func() time.Time { return bookingNow.Add(-48 * time.Hour) })

	departedTicket, err := ledger.Book("VN101", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)
	upcomingTicket, err := ledger.Book("VN102", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)

	ledger.SetClock(func() time.Time { return bookingNow })
	expired := ledger.ExpireDue()
	require.Len(t, expired, 1)
	assert.Equal(t, departedTicket.ID, expired[0].ID)

	got, err := ledger.Get(upcomingTicket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusActive, got.Status)

	// A second sweep finds nothing new.
	assert.Empty(t, ledger.ExpireDue())
}

func TestListByFlight_IncludesAllStatuses(t *testing.T) {
	ledger, _, _ := ledgerFixture(t, bookingNow.Add(72*time.Hour))

	a, err := ledger.Book("VN201", "A01", testPassenger(), models.BookingTypeDirect)
	require.NoError(t, err)
	_, err = ledger.Book("VN201", "B01", testPassenger(), models.BookingTypePreOrder)
	require.NoError(t, err)
	_, err = ledger.Cancel(a.ID)
	require.NoError(t, err)

	tickets := ledger.ListByFlight("VN201")
	require.Len(t, tickets, 2)
	assert.Equal(t, models.TicketStatusCancelled, tickets[0].Status)
	assert.Equal(t, models.TicketStatusActive, tickets[1].Status)
}

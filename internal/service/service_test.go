package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/airline-engine/internal/engine"
	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// newTestService wires a full engine with no optional adapters, the
// same shape cmd/server builds minus archive, cache and seat feed.
func newTestService(t *testing.T) Service {
	t.Helper()

	policy := engine.NewPolicyStore(models.DefaultParameters())
	airports := engine.NewAirportStore([]models.Airport{
		{AirportCode: "HAN", AirportName: "Noi Bai"},
		{AirportCode: "SGN", AirportName: "Tan Son Nhat"},
		{AirportCode: "DAD", AirportName: "Da Nang"},
	})
	planes := engine.NewPlaneStore([]models.Plane{
		{
			PlaneCode: "VN-A321",
			PlaneName: "Airbus A321",
			SeatClasses: []models.SeatClassConfig{
				{ClassName: "1", SeatCount: 2, PriceRatio: 1.05},
				{ClassName: "2", SeatCount: 3, PriceRatio: 1.00},
			},
		},
	})
	flights := engine.NewFlightStore()
	ledger := engine.NewTicketLedger(flights, policy)

	return New(Deps{
		Policy:    policy,
		Airports:  airports,
		Planes:    planes,
		Flights:   flights,
		Ledger:    ledger,
		Revenue:   engine.NewRevenueAggregator(flights, ledger),
		Validator: engine.NewScheduleValidator(),
	})
}

func testDraft() *models.FlightDraft {
	return &models.FlightDraft{
		FlightCode:       "VN201",
		DepartureAirport: "HAN",
		ArrivalAirport:   "SGN",
		DepartureDate:    time.Now().Add(72 * time.Hour),
		Duration:         90,
		BasePrice:        1000000,
		PlaneCode:        "VN-A321",
		IntermediateStops: []models.IntermediateStop{
			{StopOrder: 1, StopAirport: "DAD", StopDuration: 15, Note: "refuel"},
		},
	}
}

func TestService_FlightAdmissionBuildsSeatMap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	details, err := svc.CreateFlight(ctx, testDraft())
	require.NoError(t, err)

	require.Len(t, details.SeatClassInfo, 2)
	assert.Equal(t, 1050000.0, details.SeatClassInfo[0].UnitPrice)
	assert.Equal(t, 1000000.0, details.SeatClassInfo[1].UnitPrice)
	assert.Len(t, details.Seats, 5)

	flights := svc.GetFlights(ctx)
	require.Len(t, flights, 1)
	assert.Equal(t, "VN201", flights[0].FlightCode)
}

func TestService_CreateFlightRejectsUnknownReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft := testDraft()
	draft.DepartureAirport = "XXX"
	_, err := svc.CreateFlight(ctx, draft)
	var vErr *engine.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "departure_airport", vErr.Field)

	draft = testDraft()
	draft.PlaneCode = "VN-NOPE"
	_, err = svc.CreateFlight(ctx, draft)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "plane_code", vErr.Field)
}

func TestService_CreateFlightHonoursMaxTicketClasses(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	params := models.DefaultParameters()
	params.MaxTicketClasses = 1
	require.NoError(t, svc.UpdateParameters(ctx, params))

	_, err := svc.CreateFlight(ctx, testDraft())
	var vErr *engine.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "plane_code", vErr.Field)
}

func TestService_CreateFlightSurfacesScheduleReason(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft := testDraft()
	draft.IntermediateStops = append(draft.IntermediateStops,
		models.IntermediateStop{StopOrder: 2, StopAirport: "DAD", StopDuration: 15})

	_, err := svc.CreateFlight(ctx, draft)
	var sErr *engine.ScheduleError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, engine.ReasonStopAirportCollision, sErr.Reason)
}

func TestService_BookCancelRebookRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testDraft())
	require.NoError(t, err)

	req := &models.BookingRequest{
		FlightCode:  "VN201",
		SeatNumber:  "101",
		FullName:    "Nguyen Van A",
		IDCard:      "079012345678",
		PhoneNumber: "0901234567",
		BookingType: "DIRECT",
	}
	ticket, err := svc.CreateTicket(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusActive, ticket.Status)
	assert.Equal(t, 1050000.0, ticket.Price)

	// The booked seat is gone from the availability snapshot.
	free, err := svc.GetAvailableSeats(ctx, "VN201", "1")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "102", free[0].SeatNumber)

	cancelled, err := svc.UpdateTicketStatus(ctx, ticket.ID, models.TicketStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusCancelled, cancelled.Status)

	// Cancellation restores the seat.
	free, err = svc.GetAvailableSeats(ctx, "VN201", "1")
	require.NoError(t, err)
	assert.Len(t, free, 2)

	_, err = svc.CreateTicket(ctx, req)
	assert.NoError(t, err)
}

func TestService_CreateTicketValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testDraft())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"missing passenger name", func(r *models.BookingRequest) { r.FullName = "" }},
		{"missing id card", func(r *models.BookingRequest) { r.IDCard = "" }},
		{"bad email", func(r *models.BookingRequest) { r.Email = "not-an-email" }},
		{"free-form booking type", func(r *models.BookingRequest) { r.BookingType = "WALK_IN" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.BookingRequest{
				FlightCode:  "VN201",
				SeatNumber:  "101",
				FullName:    "Nguyen Van A",
				IDCard:      "079012345678",
				PhoneNumber: "0901234567",
				BookingType: "DIRECT",
			}
			tt.mutate(req)

			_, err := svc.CreateTicket(ctx, req)
			var vErr *engine.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestService_ReportsOverBookedTickets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft := testDraft()
	_, err := svc.CreateFlight(ctx, draft)
	require.NoError(t, err)

	req := &models.BookingRequest{
		FlightCode:  "VN201",
		SeatNumber:  "201",
		FullName:    "Nguyen Van A",
		IDCard:      "079012345678",
		PhoneNumber: "0901234567",
		BookingType: "DIRECT",
	}
	ticket, err := svc.CreateTicket(ctx, req)
	require.NoError(t, err)

	dep := draft.DepartureDate
	monthly, err := svc.MonthlyRevenue(ctx, int(dep.Month()), dep.Year())
	require.NoError(t, err)
	require.Len(t, monthly.Flights, 1)
	assert.Equal(t, "VN201", monthly.Flights[0].FlightCode)
	assert.Equal(t, ticket.Price, monthly.TotalRevenue)

	yearly, err := svc.YearlyRevenue(ctx, dep.Year())
	require.NoError(t, err)
	assert.Equal(t, 1, yearly.TotalFlights)
	assert.Equal(t, ticket.Price, yearly.TotalRevenue)
}

func TestService_EnumerationEndpointsAreClosed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, []models.BookingType{models.BookingTypeDirect, models.BookingTypePreOrder}, svc.GetBookingTypes(ctx))
	assert.Equal(t, []models.TicketStatus{
		models.TicketStatusActive, models.TicketStatusCancelled, models.TicketStatusExpired,
	}, svc.GetTicketStatuses(ctx))
}

func TestService_UpdateTicketStatusRefusesActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFlight(ctx, testDraft())
	require.NoError(t, err)
	ticket, err := svc.CreateTicket(ctx, &models.BookingRequest{
		FlightCode:  "VN201",
		SeatNumber:  "101",
		FullName:    "Nguyen Van A",
		IDCard:      "079012345678",
		PhoneNumber: "0901234567",
		BookingType: "DIRECT",
	})
	require.NoError(t, err)

	_, err = svc.UpdateTicketStatus(ctx, ticket.ID, models.TicketStatusActive)
	var vErr *engine.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

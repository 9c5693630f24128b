package service

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/cx-tal-miterani/airline-engine/internal/cache"
	"github.com/cx-tal-miterani/airline-engine/internal/database"
	"github.com/cx-tal-miterani/airline-engine/internal/engine"
	"github.com/cx-tal-miterani/airline-engine/internal/models"
	"github.com/cx-tal-miterani/airline-engine/internal/websocket"
)

// Service defines the engine operations the API layer consumes.
type Service interface {
	GetParameters(ctx context.Context) models.Parameters
	UpdateParameters(ctx context.Context, params models.Parameters) error

	GetAirports(ctx context.Context) []models.Airport
	GetAirport(ctx context.Context, code string) (*models.Airport, error)
	GetPlanes(ctx context.Context) []models.Plane

	CreateFlight(ctx context.Context, draft *models.FlightDraft) (*models.FlightDetails, error)
	GetFlights(ctx context.Context) []models.Flight
	GetFlight(ctx context.Context, code string) (*models.FlightDetails, error)
	GetAvailableSeats(ctx context.Context, code, className string) ([]models.Seat, error)

	CreateTicket(ctx context.Context, req *models.BookingRequest) (*models.Ticket, error)
	GetTickets(ctx context.Context) []models.Ticket
	GetTicketsByFlight(ctx context.Context, code string) ([]models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id uuid.UUID, status models.TicketStatus) (*models.Ticket, error)
	ExpireDueTickets(ctx context.Context) []models.Ticket
	GetBookingTypes(ctx context.Context) []models.BookingType
	GetTicketStatuses(ctx context.Context) []models.TicketStatus

	MonthlyRevenue(ctx context.Context, month, year int) (*models.MonthlyReport, error)
	YearlyRevenue(ctx context.Context, year int) (*models.YearlyReport, error)
}

// Deps carries everything the service implementation needs. Hub,
// Archive and Cache are optional; a nil value disables that adapter.
type Deps struct {
	Policy    *engine.PolicyStore
	Airports  *engine.AirportStore
	Planes    *engine.PlaneStore
	Flights   *engine.FlightStore
	Ledger    *engine.TicketLedger
	Revenue   *engine.RevenueAggregator
	Validator *engine.ScheduleValidator

	Hub     *websocket.Hub
	Archive *database.Repository
	Cache   *cache.RedisClient
}

type serviceImpl struct {
	deps        Deps
	validate    *validator.Validate
	reportGroup singleflight.Group
}

// New creates the Service over the given dependencies.
func New(deps Deps) Service {
	return &serviceImpl{
		deps:     deps,
		validate: validator.New(),
	}
}

// --- Regulation ---

func (s *serviceImpl) GetParameters(ctx context.Context) models.Parameters {
	return s.deps.Policy.Get()
}

func (s *serviceImpl) UpdateParameters(ctx context.Context, params models.Parameters) error {
	return s.deps.Policy.Update(params)
}

// --- Reference data ---

func (s *serviceImpl) GetAirports(ctx context.Context) []models.Airport {
	return s.deps.Airports.List()
}

func (s *serviceImpl) GetAirport(ctx context.Context, code string) (*models.Airport, error) {
	airport, err := s.deps.Airports.Get(code)
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (s *serviceImpl) GetPlanes(ctx context.Context) []models.Plane {
	return s.deps.Planes.List()
}

// --- Flights ---

func (s *serviceImpl) CreateFlight(ctx context.Context, draft *models.FlightDraft) (*models.FlightDetails, error) {
	if err := s.validate.Struct(draft); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return nil, &engine.ValidationError{Field: verrs[0].Field(), Detail: "missing or out of range"}
		}
		return nil, &engine.ValidationError{Field: "flight", Detail: err.Error()}
	}

	params := s.deps.Policy.Get()

	if _, err := s.deps.Airports.Get(draft.DepartureAirport); err != nil {
		return nil, &engine.ValidationError{Field: "departure_airport", Detail: fmt.Sprintf("unknown airport %s", draft.DepartureAirport)}
	}
	if _, err := s.deps.Airports.Get(draft.ArrivalAirport); err != nil {
		return nil, &engine.ValidationError{Field: "arrival_airport", Detail: fmt.Sprintf("unknown airport %s", draft.ArrivalAirport)}
	}
	for _, stop := range draft.IntermediateStops {
		if _, err := s.deps.Airports.Get(stop.StopAirport); err != nil {
			return nil, &engine.ValidationError{Field: "intermediate_stops", Detail: fmt.Sprintf("unknown airport %s", stop.StopAirport)}
		}
	}

	plane, err := s.deps.Planes.Get(draft.PlaneCode)
	if err != nil {
		return nil, &engine.ValidationError{Field: "plane_code", Detail: fmt.Sprintf("unknown plane %s", draft.PlaneCode)}
	}
	if len(plane.SeatClasses) > params.MaxTicketClasses {
		return nil, &engine.ValidationError{
			Field:  "plane_code",
			Detail: fmt.Sprintf("plane has %d fare classes, regulation allows %d", len(plane.SeatClasses), params.MaxTicketClasses),
		}
	}

	flight, err := s.deps.Validator.Validate(draft, params)
	if err != nil {
		return nil, err
	}

	inv := engine.NewSeatInventory(flight.FlightCode, flight.BasePrice, plane.SeatClasses)
	if err := s.deps.Flights.Add(*flight, inv); err != nil {
		return nil, err
	}

	if s.deps.Archive != nil {
		if err := s.deps.Archive.InsertFlight(ctx, *flight); err != nil {
			log.Printf("archive: failed to record flight %s: %v", flight.FlightCode, err)
		}
	}

	return &models.FlightDetails{
		Flight:        *flight,
		SeatClassInfo: inv.FareClasses(),
		Seats:         inv.Seats(),
	}, nil
}

func (s *serviceImpl) GetFlights(ctx context.Context) []models.Flight {
	return s.deps.Flights.List()
}

func (s *serviceImpl) GetFlight(ctx context.Context, code string) (*models.FlightDetails, error) {
	rec, err := s.deps.Flights.Get(code)
	if err != nil {
		return nil, err
	}
	return &models.FlightDetails{
		Flight:        rec.Flight,
		SeatClassInfo: rec.Inventory.FareClasses(),
		Seats:         rec.Inventory.Seats(),
	}, nil
}

func (s *serviceImpl) GetAvailableSeats(ctx context.Context, code, className string) ([]models.Seat, error) {
	rec, err := s.deps.Flights.Get(code)
	if err != nil {
		return nil, err
	}
	if className == "" {
		var free []models.Seat
		for _, st := range rec.Inventory.Seats() {
			if !st.IsBooked {
				free = append(free, st)
			}
		}
		return free, nil
	}
	return rec.Inventory.ListAvailable(className)
}

// --- Tickets ---

func (s *serviceImpl) CreateTicket(ctx context.Context, req *models.BookingRequest) (*models.Ticket, error) {
	if err := s.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return nil, &engine.ValidationError{Field: verrs[0].Field(), Detail: "missing or malformed"}
		}
		return nil, &engine.ValidationError{Field: "ticket", Detail: err.Error()}
	}

	bookingType, err := models.ParseBookingType(req.BookingType)
	if err != nil {
		return nil, &engine.ValidationError{Field: "booking_type", Detail: err.Error()}
	}

	ticket, err := s.deps.Ledger.Book(req.FlightCode, req.SeatNumber, engine.Passenger{
		FullName:    req.FullName,
		IDCard:      req.IDCard,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}, bookingType)
	if err != nil {
		return nil, err
	}

	if s.deps.Hub != nil {
		s.deps.Hub.BroadcastSeatBooked(ticket.FlightCode, ticket.SeatNumber)
	}
	if s.deps.Archive != nil {
		if err := s.deps.Archive.InsertTicket(ctx, *ticket); err != nil {
			log.Printf("archive: failed to record ticket %s: %v", ticket.ID, err)
		}
	}
	s.invalidateReports(ctx)

	return ticket, nil
}

func (s *serviceImpl) GetTickets(ctx context.Context) []models.Ticket {
	return s.deps.Ledger.List()
}

func (s *serviceImpl) GetTicketsByFlight(ctx context.Context, code string) ([]models.Ticket, error) {
	if _, err := s.deps.Flights.Get(code); err != nil {
		return nil, err
	}
	return s.deps.Ledger.ListByFlight(code), nil
}

func (s *serviceImpl) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status models.TicketStatus) (*models.Ticket, error) {
	var ticket *models.Ticket
	var err error

	switch status {
	case models.TicketStatusCancelled:
		ticket, err = s.deps.Ledger.Cancel(id)
	case models.TicketStatusExpired:
		ticket, err = s.deps.Ledger.Expire(id)
	default:
		return nil, &engine.ValidationError{
			Field:  "status",
			Detail: fmt.Sprintf("status must be %s or %s", models.TicketStatusCancelled, models.TicketStatusExpired),
		}
	}
	if err != nil {
		return nil, err
	}

	if status == models.TicketStatusCancelled && s.deps.Hub != nil {
		s.deps.Hub.BroadcastSeatReleased(ticket.FlightCode, ticket.SeatNumber)
	}
	if s.deps.Archive != nil {
		if err := s.deps.Archive.UpdateTicketStatus(ctx, ticket.ID, ticket.Status); err != nil {
			log.Printf("archive: failed to record status of ticket %s: %v", ticket.ID, err)
		}
	}
	s.invalidateReports(ctx)

	return ticket, nil
}

func (s *serviceImpl) ExpireDueTickets(ctx context.Context) []models.Ticket {
	expired := s.deps.Ledger.ExpireDue()
	for _, ticket := range expired {
		if s.deps.Archive != nil {
			if err := s.deps.Archive.UpdateTicketStatus(ctx, ticket.ID, ticket.Status); err != nil {
				log.Printf("archive: failed to record status of ticket %s: %v", ticket.ID, err)
			}
		}
	}
	if len(expired) > 0 {
		s.invalidateReports(ctx)
	}
	return expired
}

func (s *serviceImpl) GetBookingTypes(ctx context.Context) []models.BookingType {
	return models.BookingTypes()
}

func (s *serviceImpl) GetTicketStatuses(ctx context.Context) []models.TicketStatus {
	return models.TicketStatuses()
}

// --- Reports ---

func (s *serviceImpl) MonthlyRevenue(ctx context.Context, month, year int) (*models.MonthlyReport, error) {
	key := cache.MonthlyReportKey(month, year)
	if s.deps.Cache != nil {
		var cached models.MonthlyReport
		if err := s.deps.Cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err, _ := s.reportGroup.Do(key, func() (interface{}, error) {
		return s.deps.Revenue.Monthly(month, year)
	})
	if err != nil {
		return nil, err
	}
	report := result.(*models.MonthlyReport)

	if s.deps.Cache != nil {
		if err := s.deps.Cache.SetJSON(ctx, key, report, cache.ReportTTL); err != nil {
			log.Printf("cache: failed to store %s: %v", key, err)
		}
	}
	return report, nil
}

func (s *serviceImpl) YearlyRevenue(ctx context.Context, year int) (*models.YearlyReport, error) {
	key := cache.YearlyReportKey(year)
	if s.deps.Cache != nil {
		var cached models.YearlyReport
		if err := s.deps.Cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err, _ := s.reportGroup.Do(key, func() (interface{}, error) {
		return s.deps.Revenue.Yearly(year)
	})
	if err != nil {
		return nil, err
	}
	report := result.(*models.YearlyReport)

	if s.deps.Cache != nil {
		if err := s.deps.Cache.SetJSON(ctx, key, report, cache.ReportTTL); err != nil {
			log.Printf("cache: failed to store %s: %v", key, err)
		}
	}
	return report, nil
}

func (s *serviceImpl) invalidateReports(ctx context.Context) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.InvalidateReports(ctx); err != nil {
		log.Printf("cache: failed to invalidate reports: %v", err)
	}
}

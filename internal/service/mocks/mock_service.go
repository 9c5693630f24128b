package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// MockService is a mock implementation of service.Service.
type MockService struct {
	mock.Mock
}

func (m *MockService) GetParameters(ctx context.Context) models.Parameters {
	args := m.Called(ctx)
	return args.Get(0).(models.Parameters)
}

func (m *MockService) UpdateParameters(ctx context.Context, params models.Parameters) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockService) GetAirports(ctx context.Context) []models.Airport {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Airport)
}

func (m *MockService) GetAirport(ctx context.Context, code string) (*models.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airport), args.Error(1)
}

func (m *MockService) GetPlanes(ctx context.Context) []models.Plane {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Plane)
}

func (m *MockService) CreateFlight(ctx context.Context, draft *models.FlightDraft) (*models.FlightDetails, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightDetails), args.Error(1)
}

func (m *MockService) GetFlights(ctx context.Context) []models.Flight {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Flight)
}

func (m *MockService) GetFlight(ctx context.Context, code string) (*models.FlightDetails, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightDetails), args.Error(1)
}

func (m *MockService) GetAvailableSeats(ctx context.Context, code, className string) ([]models.Seat, error) {
	args := m.Called(ctx, code, className)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockService) CreateTicket(ctx context.Context, req *models.BookingRequest) (*models.Ticket, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockService) GetTickets(ctx context.Context) []models.Ticket {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Ticket)
}

func (m *MockService) GetTicketsByFlight(ctx context.Context, code string) ([]models.Ticket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockService) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status models.TicketStatus) (*models.Ticket, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockService) ExpireDueTickets(ctx context.Context) []models.Ticket {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Ticket)
}

func (m *MockService) GetBookingTypes(ctx context.Context) []models.BookingType {
	args := m.Called(ctx)
	return args.Get(0).([]models.BookingType)
}

func (m *MockService) GetTicketStatuses(ctx context.Context) []models.TicketStatus {
	args := m.Called(ctx)
	return args.Get(0).([]models.TicketStatus)
}

func (m *MockService) MonthlyRevenue(ctx context.Context, month, year int) (*models.MonthlyReport, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockService) YearlyRevenue(ctx context.Context, year int) (*models.YearlyReport, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.YearlyReport), args.Error(1)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/airline-engine/internal/engine"
	"github.com/cx-tal-miterani/airline-engine/internal/models"
	"github.com/cx-tal-miterani/airline-engine/internal/service"
)

// Handler contains HTTP handlers for the API.
type Handler struct {
	svc service.Service
}

// NewHandler creates a new Handler instance.
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps the engine's recoverable error taxonomy to
// HTTP statuses with enough structure to render a specific message.
// Anything outside the taxonomy is a fault: it aborts this request
// with a 500 and nothing more.
func respondEngineError(w http.ResponseWriter, err error) {
	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": vErr.Error(), "field": vErr.Field,
		})
		return
	}

	var sErr *engine.ScheduleError
	if errors.As(err, &sErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": sErr.Detail, "reason": string(sErr.Reason),
		})
		return
	}

	var bErr *engine.BookingError
	if errors.As(err, &bErr) {
		status := http.StatusConflict
		if bErr.Code == engine.BookingFlightNotFound {
			status = http.StatusNotFound
		}
		respondJSON(w, status, map[string]string{
			"error": bErr.Detail, "code": string(bErr.Code),
		})
		return
	}

	var tErr *engine.TransitionError
	if errors.As(err, &tErr) {
		status := http.StatusConflict
		if tErr.Code == engine.TransitionNotFound {
			status = http.StatusNotFound
		}
		respondJSON(w, status, map[string]string{
			"error": tErr.Detail, "code": string(tErr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, engine.ErrFlightNotFound),
		errors.Is(err, engine.ErrTicketNotFound),
		errors.Is(err, engine.ErrUnknownSeat),
		errors.Is(err, engine.ErrUnknownClass):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrDuplicateCode):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Regulation ---

// GetParameters handles GET /api/params
func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GetParameters(r.Context()))
}

// UpdateParameters handles PUT /api/params
func (h *Handler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	var params models.Parameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.svc.UpdateParameters(r.Context(), params); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, params)
}

// --- Reference data ---

// GetAirports handles GET /api/airports
func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GetAirports(r.Context()))
}

// GetAirport handles GET /api/airports/{code}
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	airport, err := h.svc.GetAirport(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusNotFound, "Airport not found")
		return
	}
	respondJSON(w, http.StatusOK, airport)
}

// GetPlanes handles GET /api/planes
func (h *Handler) GetPlanes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GetPlanes(r.Context()))
}

// --- Flights ---

// CreateFlight handles POST /api/flights
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var draft models.FlightDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	details, err := h.svc.CreateFlight(r.Context(), &draft)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, details)
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.GetFlights(r.Context()))
}

// GetFlight handles GET /api/flights/{code}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	details, err := h.svc.GetFlight(r.Context(), code)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// GetFlightSeats handles GET /api/flights/{code}/seats
func (h *Handler) GetFlightSeats(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	className := r.URL.Query().Get("class")
	seats, err := h.svc.GetAvailableSeats(r.Context(), code, className)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if seats == nil {
		seats = []models.Seat{}
	}
	respondJSON(w, http.StatusOK, seats)
}

// --- Tickets ---

// CreateTicket handles POST /api/tickets
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ticket, err := h.svc.CreateTicket(r.Context(), &req)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ticket)
}

// GetTickets handles GET /api/tickets
func (h *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("flight_code"); code != "" {
		tickets, err := h.svc.GetTicketsByFlight(r.Context(), code)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tickets)
		return
	}
	respondJSON(w, http.StatusOK, h.svc.GetTickets(r.Context()))
}

// UpdateTicketStatus handles PUT /api/tickets/{id}/status. Only
// CANCELLED and EXPIRED are accepted; any other value is rejected.
func (h *Handler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req models.TicketStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := models.ParseTicketStatus(req.Status)
	if err != nil || status == models.TicketStatusActive {
		respondError(w, http.StatusBadRequest, "Status must be CANCELLED or EXPIRED")
		return
	}

	ticket, err := h.svc.UpdateTicketStatus(r.Context(), id, status)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// CancelTicket handles DELETE /api/tickets/{id}
func (h *Handler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	ticket, err := h.svc.UpdateTicketStatus(r.Context(), id, models.TicketStatusCancelled)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// ExpireDueTickets handles POST /api/tickets/expire-due
func (h *Handler) ExpireDueTickets(w http.ResponseWriter, r *http.Request) {
	expired := h.svc.ExpireDueTickets(r.Context())
	if expired == nil {
		expired = []models.Ticket{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"expired": expired,
		"count":   len(expired),
	})
}

// GetBookingTypes handles GET /api/tickets/booking-types
func (h *Handler) GetBookingTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"types": h.svc.GetBookingTypes(r.Context()),
	})
}

// GetTicketStatuses handles GET /api/tickets/statuses
func (h *Handler) GetTicketStatuses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"statuses": h.svc.GetTicketStatuses(r.Context()),
	})
}

// --- Reports ---

// GetRevenueReport handles GET /api/reports/revenue. A month plus a
// year selects the monthly aggregate; a year alone the yearly one;
// neither is a caller error.
func (h *Handler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	monthStr := q.Get("month")
	yearStr := q.Get("year")

	if yearStr == "" {
		respondError(w, http.StatusBadRequest, "year is required")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	if monthStr == "" {
		report, err := h.svc.YearlyRevenue(r.Context(), year)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, report)
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "month must be a number")
		return
	}
	report, err := h.svc.MonthlyRevenue(r.Context(), month, year)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetYearlyRevenueReport handles GET /api/reports/revenue/yearly
func (h *Handler) GetYearlyRevenueReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	report, err := h.svc.YearlyRevenue(r.Context(), year)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

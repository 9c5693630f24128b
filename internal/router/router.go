package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/airline-engine/internal/handlers"
	"github.com/cx-tal-miterani/airline-engine/internal/websocket"
)

// SetupRouter creates and configures the HTTP router. The hub may be
// nil when the seat feed is disabled.
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Regulation parameters
	api.HandleFunc("/params", h.GetParameters).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/params", h.UpdateParameters).Methods(http.MethodPut, http.MethodOptions)

	// Reference data
	api.HandleFunc("/airports", h.GetAirports).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airports/{code}", h.GetAirport).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/planes", h.GetPlanes).Methods(http.MethodGet, http.MethodOptions)

	// Flights
	api.HandleFunc("/flights", h.CreateFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{code}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{code}/seats", h.GetFlightSeats).Methods(http.MethodGet, http.MethodOptions)

	// Tickets
	api.HandleFunc("/tickets", h.CreateTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tickets", h.GetTickets).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tickets/expire-due", h.ExpireDueTickets).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tickets/booking-types", h.GetBookingTypes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tickets/statuses", h.GetTicketStatuses).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tickets/{id}", h.CancelTicket).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/tickets/{id}/status", h.UpdateTicketStatus).Methods(http.MethodPut, http.MethodOptions)

	// Revenue reports
	api.HandleFunc("/reports/revenue", h.GetRevenueReport).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/reports/revenue/yearly", h.GetYearlyRevenueReport).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket seat feed
	if hub != nil {
		api.HandleFunc("/flights/{code}/ws", func(w http.ResponseWriter, r *http.Request) {
			hub.ServeFlight(w, r, mux.Vars(r)["code"])
		})
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package database

import (
	"time"

	"github.com/google/uuid"
)

// FlightRow mirrors the flights archive table.
type FlightRow struct {
	FlightCode       string    `json:"flight_code"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureDate    time.Time `json:"departure_date"`
	Duration         int       `json:"duration"`
	BasePrice        float64   `json:"base_price"`
	PlaneCode        string    `json:"plane_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// TicketRow mirrors the tickets archive table.
type TicketRow struct {
	ID          uuid.UUID `json:"id"`
	FlightCode  string    `json:"flight_code"`
	SeatNumber  string    `json:"seat_number"`
	FullName    string    `json:"full_name"`
	IDCard      string    `json:"id_card"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	BookingType string    `json:"booking_type"`
	Status      string    `json:"status"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

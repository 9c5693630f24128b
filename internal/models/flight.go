package models

import "time"

// IntermediateStop is a scheduled layover between departure and
// arrival. StopOrder is a manual 1-based presentation sequence; it is
// never derived from the dwell durations.
type IntermediateStop struct {
	StopOrder    int    `json:"stop_order"`
	StopAirport  string `json:"stop_airport"`
	StopDuration int    `json:"stop_duration"`
	Note         string `json:"note,omitempty"`
}

// Flight is an admitted schedule. Flights are append-only: a changed
// schedule is a new flight, never an in-place edit.
type Flight struct {
	FlightCode        string             `json:"flight_code"`
	DepartureAirport  string             `json:"departure_airport"`
	ArrivalAirport    string             `json:"arrival_airport"`
	DepartureDate     time.Time          `json:"departure_date"`
	Duration          int                `json:"duration"`
	BasePrice         float64            `json:"base_price"`
	PlaneCode         string             `json:"plane_code"`
	IntermediateStops []IntermediateStop `json:"intermediate_stops"`
	CreatedAt         time.Time          `json:"created_at"`
}

// FlightDraft is a schedule proposal submitted for admission.
type FlightDraft struct {
	FlightCode        string             `json:"flight_code" validate:"required"`
	DepartureAirport  string             `json:"departure_airport" validate:"required"`
	ArrivalAirport    string             `json:"arrival_airport" validate:"required"`
	DepartureDate     time.Time          `json:"departure_date" validate:"required"`
	Duration          int                `json:"duration" validate:"gt=0"`
	BasePrice         float64            `json:"base_price" validate:"gt=0"`
	PlaneCode         string             `json:"plane_code" validate:"required"`
	IntermediateStops []IntermediateStop `json:"intermediate_stops" validate:"dive"`
}

// Seat is one bookable seat on a flight.
type Seat struct {
	SeatNumber string  `json:"seat_number"`
	ClassName  string  `json:"class_name"`
	Price      float64 `json:"price"`
	IsBooked   bool    `json:"is_booked"`
}

// FareClass is a named seat category scoped to one flight.
type FareClass struct {
	ClassName string  `json:"class_name"`
	UnitPrice float64 `json:"unit_price"`
	SeatCount int     `json:"seat_count"`
}

// FlightDetails is the seat-map view of an admitted flight.
type FlightDetails struct {
	Flight        Flight      `json:"flight"`
	SeatClassInfo []FareClass `json:"seat_class_info"`
	Seats         []Seat      `json:"seats"`
}

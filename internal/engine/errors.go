package engine

import (
	"errors"
	"fmt"
)

// Unknown-reference errors. These indicate the caller named something
// the engine has no record of.
var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUnknownSeat    = errors.New("unknown seat")

	// ErrSeatAlreadyBooked is the losing side of a seat claim race.
	ErrSeatAlreadyBooked = errors.New("seat already booked")

	ErrUnknownClass   = errors.New("unknown fare class")
	ErrDuplicateCode  = errors.New("code already in use")
)

// ScheduleReason names the first admission check a flight draft failed.
type ScheduleReason string

const (
	ReasonSameDepartureArrival   ScheduleReason = "departure_equals_arrival"
	ReasonStopAirportCollision   ScheduleReason = "stop_airport_collision"
	ReasonTooManyStops           ScheduleReason = "too_many_stops"
	ReasonStopDurationOutOfRange ScheduleReason = "stop_duration_out_of_range"
	ReasonFlightTooShort         ScheduleReason = "flight_duration_too_short"
	ReasonDepartureNotFuture     ScheduleReason = "departure_not_in_future"
	ReasonStopOrderMalformed     ScheduleReason = "stop_order_malformed"
)

// ScheduleError is a rejected flight draft. It is an expected outcome,
// not a fault; handlers render Reason and Detail to the caller.
type ScheduleError struct {
	Reason ScheduleReason
	Detail string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("schedule rejected (%s): %s", e.Reason, e.Detail)
}

// BookingCode classifies a failed booking attempt.
type BookingCode string

const (
	BookingSeatUnavailable     BookingCode = "seat_unavailable"
	BookingFlightNotFound      BookingCode = "flight_not_found"
	BookingRegulationViolation BookingCode = "regulation_violation"
)

// BookingError is a rejected booking attempt.
type BookingError struct {
	Code   BookingCode
	Detail string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("booking rejected (%s): %s", e.Code, e.Detail)
}

// TransitionCode classifies a refused ticket status transition.
type TransitionCode string

const (
	TransitionNotFound        TransitionCode = "not_found"
	TransitionAlreadyTerminal TransitionCode = "already_terminal"
	TransitionTooLateToCancel TransitionCode = "too_late_to_cancel"
	TransitionNotYetDeparted  TransitionCode = "not_yet_departed"
)

// TransitionError is a refused ticket status transition.
type TransitionError struct {
	Code   TransitionCode
	Detail string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition refused (%s): %s", e.Code, e.Detail)
}

// ValidationError reports malformed input to a policy update or a
// request DTO, keyed by field.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingType distinguishes an on-the-spot sale from an advance
// reservation subject to the purchase-window rule.
type BookingType string

const (
	BookingTypeDirect   BookingType = "DIRECT"
	BookingTypePreOrder BookingType = "PRE_ORDER"
)

// BookingTypes lists every valid booking type, in form-display order.
func BookingTypes() []BookingType {
	return []BookingType{BookingTypeDirect, BookingTypePreOrder}
}

// ParseBookingType converts a wire value into a BookingType.
func ParseBookingType(s string) (BookingType, error) {
	switch BookingType(s) {
	case BookingTypeDirect:
		return BookingTypeDirect, nil
	case BookingTypePreOrder:
		return BookingTypePreOrder, nil
	}
	return "", fmt.Errorf("invalid booking type %q", s)
}

// TicketStatus is the ticket lifecycle state. ACTIVE is the only
// non-terminal state; CANCELLED and EXPIRED are terminal.
type TicketStatus string

const (
	TicketStatusActive    TicketStatus = "ACTIVE"
	TicketStatusCancelled TicketStatus = "CANCELLED"
	TicketStatusExpired   TicketStatus = "EXPIRED"
)

// TicketStatuses lists every status a ticket can be in.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusActive, TicketStatusCancelled, TicketStatusExpired}
}

// ParseTicketStatus converts a wire value into a TicketStatus.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketStatusActive:
		return TicketStatusActive, nil
	case TicketStatusCancelled:
		return TicketStatusCancelled, nil
	case TicketStatusExpired:
		return TicketStatusExpired, nil
	}
	return "", fmt.Errorf("invalid ticket status %q", s)
}

// Ticket binds one passenger to exactly one seat on one flight.
type Ticket struct {
	ID          uuid.UUID    `json:"id"`
	FlightCode  string       `json:"flight_code"`
	SeatNumber  string       `json:"seat_number"`
	FullName    string       `json:"full_name"`
	IDCard      string       `json:"id_card"`
	PhoneNumber string       `json:"phone_number"`
	Email       string       `json:"email,omitempty"`
	BookingType BookingType  `json:"booking_type"`
	Status      TicketStatus `json:"status"`
	Price       float64      `json:"price"`
	CreatedAt   time.Time    `json:"created_at"`
}

// BookingRequest is the payload for creating a ticket.
type BookingRequest struct {
	FlightCode  string `json:"flight_code" validate:"required"`
	SeatNumber  string `json:"seat_number" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	IDCard      string `json:"id_card" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	BookingType string `json:"booking_type" validate:"required"`
}

// TicketStatusUpdate is the payload for PUT /api/tickets/{id}/status.
type TicketStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// Package database is the archive adapter: it records admitted flights
// and ticket transitions in Postgres for durable reporting. The
// in-memory engine remains the authority; archive writes are
// best-effort and a failure never rejects the request that caused them.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

var ErrNotFound = errors.New("not found")

// Repository handles all archive database operations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a repository over an existing pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens a pgx pool against the given URL.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// InsertFlight records an admitted flight and its intermediate stops.
func (r *Repository) InsertFlight(ctx context.Context, flight models.Flight) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO flights (flight_code, departure_airport, arrival_airport, departure_date,
		                     duration, base_price, plane_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, flight.FlightCode, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureDate,
		flight.Duration, flight.BasePrice, flight.PlaneCode, flight.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}

	for _, stop := range flight.IntermediateStops {
		_, err = tx.Exec(ctx, `
			INSERT INTO intermediate_stops (flight_code, stop_order, stop_airport, stop_duration, note)
			VALUES ($1, $2, $3, $4, $5)
		`, flight.FlightCode, stop.StopOrder, stop.StopAirport, stop.StopDuration, stop.Note)
		if err != nil {
			return fmt.Errorf("failed to insert stop: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// InsertTicket records a freshly booked ticket.
func (r *Repository) InsertTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (id, flight_code, seat_number, full_name, id_card, phone_number,
		                     email, booking_type, status, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, ticket.ID, ticket.FlightCode, ticket.SeatNumber, ticket.FullName, ticket.IDCard,
		ticket.PhoneNumber, ticket.Email, string(ticket.BookingType), string(ticket.Status),
		ticket.Price, ticket.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// UpdateTicketStatus records a ticket's status transition.
func (r *Repository) UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status models.TicketStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tickets SET status = $1 WHERE id = $2
	`, string(status), ticketID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTicket loads one archived ticket.
func (r *Repository) GetTicket(ctx context.Context, ticketID uuid.UUID) (*TicketRow, error) {
	var t TicketRow
	err := r.pool.QueryRow(ctx, `
		SELECT id, flight_code, seat_number, full_name, id_card, phone_number,
		       email, booking_type, status, price, created_at
		FROM tickets WHERE id = $1
	`, ticketID).Scan(
		&t.ID, &t.FlightCode, &t.SeatNumber, &t.FullName, &t.IDCard, &t.PhoneNumber,
		&t.Email, &t.BookingType, &t.Status, &t.Price, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &t, nil
}

// ListFlights loads the archived flights in departure order.
func (r *Repository) ListFlights(ctx context.Context) ([]FlightRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT flight_code, departure_airport, arrival_airport, departure_date,
		       duration, base_price, plane_code, created_at
		FROM flights
		ORDER BY departure_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []FlightRow
	for rows.Next() {
		var f FlightRow
		err := rows.Scan(
			&f.FlightCode, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureDate,
			&f.Duration, &f.BasePrice, &f.PlaneCode, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

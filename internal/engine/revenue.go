package engine

import (
	"fmt"
	"sort"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// RevenueAggregator is a read-only projection over the ticket ledger
// and flight registry. Reports are recomputed on every call; they are
// never authoritative state. A ticket's price counts as booked revenue
// regardless of its status — cancelled and expired tickets are
// included (confirmed business behaviour, see DESIGN.md).
type RevenueAggregator struct {
	flights *FlightStore
	ledger  *TicketLedger
}

// NewRevenueAggregator creates an aggregator over the given stores.
func NewRevenueAggregator(flights *FlightStore, ledger *TicketLedger) *RevenueAggregator {
	return &RevenueAggregator{flights: flights, ledger: ledger}
}

// Monthly reports ticket revenue for flights departing in the given
// month, grouped by flight code in ascending code order.
func (a *RevenueAggregator) Monthly(month, year int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Field: "month", Detail: fmt.Sprintf("%d is not a calendar month", month)}
	}

	byCode := make(map[string]*models.FlightRevenue)
	report := &models.MonthlyReport{Month: month, Year: year, Flights: []models.FlightRevenue{}}

	for _, ticket := range a.ledger.List() {
		rec, err := a.flights.Get(ticket.FlightCode)
		if err != nil {
			continue
		}
		dep := rec.Flight.DepartureDate
		if int(dep.Month()) != month || dep.Year() != year {
			continue
		}
		row, ok := byCode[ticket.FlightCode]
		if !ok {
			row = &models.FlightRevenue{FlightCode: ticket.FlightCode}
			byCode[ticket.FlightCode] = row
		}
		row.Tickets++
		row.Revenue += ticket.Price
		report.TotalTickets++
		report.TotalRevenue += ticket.Price
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		report.Flights = append(report.Flights, *byCode[code])
	}
	return report, nil
}

// Yearly reports revenue per month for a full calendar year. A month's
// FlightCount is the number of distinct flights departing in it,
// whether or not they sold tickets.
func (a *RevenueAggregator) Yearly(year int) (*models.YearlyReport, error) {
	report := &models.YearlyReport{Year: year, Months: make([]models.MonthRevenue, 12)}
	for i := range report.Months {
		report.Months[i].Month = i + 1
	}

	for _, flight := range a.flights.List() {
		if flight.DepartureDate.Year() != year {
			continue
		}
		report.Months[int(flight.DepartureDate.Month())-1].FlightCount++
		report.TotalFlights++
	}

	for _, ticket := range a.ledger.List() {
		rec, err := a.flights.Get(ticket.FlightCode)
		if err != nil {
			continue
		}
		dep := rec.Flight.DepartureDate
		if dep.Year() != year {
			continue
		}
		report.Months[int(dep.Month())-1].Revenue += ticket.Price
		report.TotalRevenue += ticket.Price
	}
	return report, nil
}

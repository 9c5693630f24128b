package models

// FlightRevenue is one flight's row in a monthly report.
type FlightRevenue struct {
	FlightCode string  `json:"flightCode"`
	Tickets    int     `json:"tickets"`
	Revenue    float64 `json:"revenue"`
}

// MonthlyReport aggregates ticket revenue for flights departing in one
// calendar month, grouped by flight code.
type MonthlyReport struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Flights      []FlightRevenue `json:"flights"`
	TotalRevenue float64         `json:"totalRevenue"`
	TotalTickets int             `json:"totalTickets"`
}

// MonthRevenue is one month's row in a yearly report. FlightCount is
// the number of distinct flights departing that month, not a ticket count.
type MonthRevenue struct {
	Month       int     `json:"month"`
	FlightCount int     `json:"flightCount"`
	Revenue     float64 `json:"revenue"`
}

// YearlyReport aggregates revenue per month for a full calendar year.
// Months always holds twelve entries, January through December.
type YearlyReport struct {
	Year         int            `json:"year"`
	Months       []MonthRevenue `json:"months"`
	TotalRevenue float64        `json:"totalRevenue"`
	TotalFlights int            `json:"totalFlights"`
}

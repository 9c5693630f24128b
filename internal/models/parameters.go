package models

// Parameters holds the tunable regulation limits governing valid
// schedules and booking/cancellation windows. A single record exists;
// it is only replaced wholesale through the policy update operation.
type Parameters struct {
	NumberOfAirports            int `json:"number_of_airports" validate:"gte=1"`
	MinFlightDuration           int `json:"min_flight_duration" validate:"gte=1"`
	MaxIntermediateStops        int `json:"max_intermediate_stops" validate:"gte=0"`
	MinIntermediateStopDuration int `json:"min_intermediate_stop_duration" validate:"gte=1"`
	MaxIntermediateStopDuration int `json:"max_intermediate_stop_duration" validate:"gte=1"`
	MaxTicketClasses            int `json:"max_ticket_classes" validate:"gte=1"`
	LatestTicketPurchaseTime    int `json:"latest_ticket_purchase_time" validate:"gte=0"`
	TicketCancellationTime      int `json:"ticket_cancellation_time" validate:"gte=0"`
}

// DefaultParameters returns the regulation record the engine starts with.
func DefaultParameters() Parameters {
	return Parameters{
		NumberOfAirports:            10,
		MinFlightDuration:           30,
		MaxIntermediateStops:        2,
		MinIntermediateStopDuration: 10,
		MaxIntermediateStopDuration: 20,
		MaxTicketClasses:            2,
		LatestTicketPurchaseTime:    1,
		TicketCancellationTime:      1440,
	}
}

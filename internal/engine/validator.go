package engine

import (
	"fmt"
	"time"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

// ScheduleValidator decides whether a proposed flight is admissible
// under a regulation snapshot. Checks run in a fixed order and stop at
// the first failure, so the reported reason is deterministic.
type ScheduleValidator struct {
	now func() time.Time
}

// NewScheduleValidator returns a validator using the wall clock.
func NewScheduleValidator() *ScheduleValidator {
	return &ScheduleValidator{now: time.Now}
}

// NewScheduleValidatorAt returns a validator with an injected clock.
func NewScheduleValidatorAt(now func() time.Time) *ScheduleValidator {
	return &ScheduleValidator{now: now}
}

// Validate runs the admission checklist against the draft. On success
// it returns the immutable Flight record; the caller builds the seat
// inventory from the referenced plane. A rejection is a *ScheduleError,
// never a fault.
func (v *ScheduleValidator) Validate(draft *models.FlightDraft, params models.Parameters) (*models.Flight, error) {
	if draft.DepartureAirport == draft.ArrivalAirport {
		return nil, &ScheduleError{
			Reason: ReasonSameDepartureArrival,
			Detail: fmt.Sprintf("departure and arrival are both %s", draft.DepartureAirport),
		}
	}

	seen := make(map[string]bool, len(draft.IntermediateStops))
	for _, stop := range draft.IntermediateStops {
		if stop.StopAirport == draft.DepartureAirport || stop.StopAirport == draft.ArrivalAirport {
			return nil, &ScheduleError{
				Reason: ReasonStopAirportCollision,
				Detail: fmt.Sprintf("stop airport %s is an endpoint of the flight", stop.StopAirport),
			}
		}
		if seen[stop.StopAirport] {
			return nil, &ScheduleError{
				Reason: ReasonStopAirportCollision,
				Detail: fmt.Sprintf("stop airport %s appears more than once", stop.StopAirport),
			}
		}
		seen[stop.StopAirport] = true
	}

	if len(draft.IntermediateStops) > params.MaxIntermediateStops {
		return nil, &ScheduleError{
			Reason: ReasonTooManyStops,
			Detail: fmt.Sprintf("%d stops exceeds the maximum of %d", len(draft.IntermediateStops), params.MaxIntermediateStops),
		}
	}

	for _, stop := range draft.IntermediateStops {
		if stop.StopDuration < params.MinIntermediateStopDuration || stop.StopDuration > params.MaxIntermediateStopDuration {
			return nil, &ScheduleError{
				Reason: ReasonStopDurationOutOfRange,
				Detail: fmt.Sprintf("stop at %s dwells %d minutes, allowed range is %d-%d",
					stop.StopAirport, stop.StopDuration, params.MinIntermediateStopDuration, params.MaxIntermediateStopDuration),
			}
		}
	}

	if draft.Duration < params.MinFlightDuration {
		return nil, &ScheduleError{
			Reason: ReasonFlightTooShort,
			Detail: fmt.Sprintf("duration %d minutes is below the minimum of %d", draft.Duration, params.MinFlightDuration),
		}
	}

	now := v.now()
	if !draft.DepartureDate.After(now) {
		return nil, &ScheduleError{
			Reason: ReasonDepartureNotFuture,
			Detail: fmt.Sprintf("departure %s is not in the future", draft.DepartureDate.Format(time.RFC3339)),
		}
	}

	// Stop order is a manual presentation sequence: it must be exactly
	// 1..n with no gaps or repeats. Stop times are not derived from it.
	orders := make(map[int]bool, len(draft.IntermediateStops))
	for _, stop := range draft.IntermediateStops {
		if stop.StopOrder < 1 || stop.StopOrder > len(draft.IntermediateStops) || orders[stop.StopOrder] {
			return nil, &ScheduleError{
				Reason: ReasonStopOrderMalformed,
				Detail: fmt.Sprintf("stop order values must form the sequence 1..%d", len(draft.IntermediateStops)),
			}
		}
		orders[stop.StopOrder] = true
	}

	stops := make([]models.IntermediateStop, len(draft.IntermediateStops))
	copy(stops, draft.IntermediateStops)

	return &models.Flight{
		FlightCode:        draft.FlightCode,
		DepartureAirport:  draft.DepartureAirport,
		ArrivalAirport:    draft.ArrivalAirport,
		DepartureDate:     draft.DepartureDate,
		Duration:          draft.Duration,
		BasePrice:         draft.BasePrice,
		PlaneCode:         draft.PlaneCode,
		IntermediateStops: stops,
		CreatedAt:         now,
	}, nil
}

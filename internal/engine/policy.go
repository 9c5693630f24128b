package engine

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/cx-tal-miterani/airline-engine/internal/models"
)

var validate = validator.New()

// PolicyStore holds the single regulation record. Reads return a copy
// so a validator working from a snapshot never observes a concurrent
// update mid-check.
type PolicyStore struct {
	mu      sync.RWMutex
	current models.Parameters
}

// NewPolicyStore creates a store seeded with the given parameters.
func NewPolicyStore(params models.Parameters) *PolicyStore {
	return &PolicyStore{current: params}
}

// Get returns a consistent snapshot of the current parameters.
func (s *PolicyStore) Get() models.Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the regulation record after validating every field
// against its own domain. The new record only becomes visible once the
// whole update is applied.
func (s *PolicyStore) Update(params models.Parameters) error {
	if err := validate.Struct(params); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &ValidationError{Field: verrs[0].Field(), Detail: "value out of range"}
		}
		return &ValidationError{Field: "parameters", Detail: err.Error()}
	}
	if params.MinIntermediateStopDuration > params.MaxIntermediateStopDuration {
		return &ValidationError{
			Field:  "min_intermediate_stop_duration",
			Detail: "minimum stop duration exceeds maximum",
		}
	}
	s.mu.Lock()
	s.current = params
	s.mu.Unlock()
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run identifies one collection pass.
type Run struct {
	ID        string
	StartedAt time.Time
}

// NewRun stamps a new run with a random id and the package clock.
func NewRun() Run {
	return Run{ID: uuid.NewString(), StartedAt: Now()}
}

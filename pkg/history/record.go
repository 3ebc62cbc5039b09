package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a committed transition as stored by a Storage.
type Record struct {
	ID          uuid.UUID `json:"id"`
	EntityID    string    `json:"entity_id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Trigger     string    `json:"trigger"`
	Kind        string    `json:"kind"`
	Actions     []string  `json:"actions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r Record) validate() error {
	if r.EntityID == "" {
		return ErrEmptyEntityID
	}
	return nil
}

// Storage persists records. List returns the most recent records of an
// entity first; limit <= 0 means no limit.
type Storage interface {
	Store(ctx context.Context, rec Record) error
	List(ctx context.Context, entityID string, limit int) ([]Record, error)
}

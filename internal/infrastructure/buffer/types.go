package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// EntityPriority marks a buffered priority-score write. These are the
	// only writes durable-buffered: they are idempotent, so replaying them
	// after an outage is always safe.
	EntityPriority = "task_priority"
)

// PriorityUpdate is the payload of an EntityPriority item.
type PriorityUpdate struct {
	TaskID string `json:"task_id"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Item represents an operation that should be retried when primary storage
// is unavailable.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}

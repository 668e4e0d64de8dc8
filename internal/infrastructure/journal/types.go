package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is a payment insert persisted for replay while Postgres is
// unavailable. Payload is the JSON-encoded domain.Payment.
type Entry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}

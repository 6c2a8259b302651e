package outbox

import "time"

// Message is an outbox row persisted inside the same DB transaction as the
// state change it announces. Worker relay reads pending rows and publishes
// them to the message bus.
type Message struct {
	ID          string
	EventType   string
	Payload     []byte
	Status      string // pending, published
	CreatedAt   time.Time
	PublishedAt *time.Time
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Package events defines the domain events published to the message broker
// after successful writes, and a best-effort publisher for them. Downstream
// consumers (notifications, analytics) get enough context to act without
// querying the primary database.
package events

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	RegisteredAt string `json:"registered_at"`
}

// RecordAddedEvent is published after a weight record, workout record or
// health metric insert. Kind is "weight", "workout" or "health".
type RecordAddedEvent struct {
	Kind    string `json:"kind"`
	UserID  uint64 `json:"user_id"`
	Date    string `json:"date"`
	AddedAt string `json:"added_at"`
}

// Queue names, also used as routing keys on the default exchange.
const (
	QueueUserRegistered = "user.registered"
	QueueRecordAdded    = "record.added"
)

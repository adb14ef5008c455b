package domain

import "time"

// ChatMessage is a single team chat entry. Append-only: there is no
// update or delete path. SenderName is denormalized from the person row
// at read time, never assembled by callers.
type ChatMessage struct {
	ID         int64
	TeamID     int64
	SenderID   int64
	SenderName string
	Body       string
	SentAt     time.Time
}

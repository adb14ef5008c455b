package domain

import "time"

// User is an application login account checked by the auth service.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

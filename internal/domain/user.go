package domain

import "time"

// User represents a registered account holder.
type User struct {
	ID        string
	Username  string
	HashedPIN string
	CreatedAt time.Time
}

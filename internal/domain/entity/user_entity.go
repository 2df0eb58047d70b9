package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID        int64
	Email     string
	Password  string
	FullName  string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

// Verification is a single-use code proving control of an email address.
// It is created on signup and on every email change, and deleted when
// consumed. A user may have several live codes at once; only the consumed
// one is removed.
type Verification struct {
	ID        int64
	Code      string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

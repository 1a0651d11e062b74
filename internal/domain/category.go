package domain

import "time"

// Category groups expenses under a user-defined label. Categories belong to
// exactly one owner and are never shared across accounts.
type Category struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package entity

import "time"

// Category groups posts; Name is unique.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

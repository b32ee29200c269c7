package model

import (
	"time"
)

// Model carries the fields shared by all persisted entities.
type Model struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import "time"

// Borrower is a registered library member. Email is unique.
type Borrower struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Package models defines the persistent entities of the lending service and
// the joined read models used by listings and exports.
package models

import "time"

// Book is one title in the catalogue. AvailableQuantity counts the copies
// currently on the shelf; it is mutated only by the borrowing service through
// guarded SQL updates and never goes below zero.
type Book struct {
	ID                int64     `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Author            string    `json:"author" db:"author"`
	ISBN              string    `json:"isbn" db:"isbn"`
	AvailableQuantity int       `json:"available_quantity" db:"available_quantity"`
	ShelfLocation     string    `json:"shelf_location" db:"shelf_location"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

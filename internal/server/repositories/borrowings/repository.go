// Package borrowings contains the write side of the borrowing ledger: one
// row per checkout, mutated exactly once at return.
package borrowings

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// CreateParams describes a new active borrowing. BorrowedAt nil means the
// database assigns the current instant.
type CreateParams struct {
	BookID     int64
	BorrowerID int64
	DueDate    time.Time
	BorrowedAt *time.Time
}

// Repository is the persistence interface for the borrowing ledger.
type Repository interface {
	// Create inserts a new active borrowing (returned_at NULL).
	Create(ctx context.Context, params CreateParams) (*models.Borrowing, error)

	// FindActiveByID returns the borrowing only while returned_at is NULL.
	// ErrNotFound covers both "never existed" and "already returned".
	FindActiveByID(ctx context.Context, id int64) (*models.Borrowing, error)

	// MarkReturned closes an active borrowing at the given instant. The
	// returned_at IS NULL predicate re-checks the active guard at commit
	// time so a racing return cannot close the same row twice.
	MarkReturned(ctx context.Context, id int64, returnedAt time.Time) (*models.Borrowing, error)

	// HasActiveByBookID reports whether any open borrowing references the book.
	HasActiveByBookID(ctx context.Context, bookID int64) (bool, error)
}

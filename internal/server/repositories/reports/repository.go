// Package reports contains the read side of the borrowing ledger: joined
// listings used by borrower views, overdue scans, and period exports. No
// method here mutates anything.
package reports

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// Repository is the read-only query interface over the ledger.
//
// "now" is always passed in by the caller; overdue status is derived at
// query time, never stored.
type Repository interface {
	// ListActiveByBorrower returns the borrower's open borrowings joined
	// with book fields, newest borrowed first.
	ListActiveByBorrower(ctx context.Context, borrowerID int64) ([]models.BorrowedBook, error)

	// ListOverdue returns open borrowings whose due date is strictly before
	// now, earliest due date first.
	ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowingDetail, error)

	// ListByBorrowedPeriod returns borrowings with borrowed_at in [from, to],
	// borrowed_at descending.
	ListByBorrowedPeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error)

	// ListByDuePeriod returns borrowings with due_date in [from, to],
	// due_date ascending.
	ListByDuePeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error)
}

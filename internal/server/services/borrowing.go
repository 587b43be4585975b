package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/repomanager"
)

// BorrowingService orchestrates the borrowing lifecycle. Checkout and return
// each run as one transaction spanning the stock counter and the ledger; on
// any failure the whole unit rolls back, so no partial book/ledger mutation
// is ever observable.
type BorrowingService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	now func() time.Time
}

// NewBorrowingService constructs a BorrowingService over the given pool and
// repository manager.
func NewBorrowingService(db *sql.DB, rm repomanager.RepositoryManager) *BorrowingService {
	return &BorrowingService{db: db, rm: rm, now: time.Now}
}

// CheckoutParams carries the raw checkout request. DueDate is required;
// BorrowedAt is optional and defaults to the current instant. Both are
// ISO-8601 strings as received at the API boundary.
type CheckoutParams struct {
	BookID     int64
	BorrowerID int64
	DueDate    string
	BorrowedAt string
}

// CheckoutResult bundles the created borrowing with the updated book and the
// borrower snapshot.
type CheckoutResult struct {
	Borrowing *models.Borrowing `json:"borrowing"`
	Book      *models.Book      `json:"book"`
	Borrower  *models.Borrower  `json:"borrower"`
}

// ReturnResult bundles the closed borrowing with the restocked book.
type ReturnResult struct {
	Borrowing *models.Borrowing `json:"borrowing"`
	Book      *models.Book      `json:"book"`
}

// ActiveBorrowings lists a borrower's open borrowings joined with book fields.
type ActiveBorrowings struct {
	Borrower      *models.Borrower      `json:"borrower"`
	BorrowedBooks []models.BorrowedBook `json:"borrowed_books"`
}

// Checkout lends one copy of a book to a borrower. The stock decrement and
// the ledger insert are one atomic unit; a failed insert never leaves the
// counter decremented. An exhausted counter where the book row still exists
// reports ErrOutOfStock, a missing row reports ErrNotFound.
func (s *BorrowingService) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if params.BookID <= 0 || params.BorrowerID <= 0 {
		return nil, fmt.Errorf("%w: book_id and borrower_id are required", common.ErrValidation)
	}
	if params.DueDate == "" {
		return nil, fmt.Errorf("%w: due_date is required", common.ErrValidation)
	}

	dueDate, err := parseInstant(params.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_date", common.ErrValidation)
	}

	var borrowedAt *time.Time
	effectiveBorrowedAt := s.now()
	if params.BorrowedAt != "" {
		parsed, err := parseInstant(params.BorrowedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid borrowed_at", common.ErrValidation)
		}
		borrowedAt = &parsed
		effectiveBorrowedAt = parsed
	}

	if !dueDate.After(effectiveBorrowedAt) {
		return nil, fmt.Errorf("%w: due_date must be after borrowed_at", common.ErrValidation)
	}

	borrower, err := s.rm.Borrowers(s.db).FindByID(ctx, params.BorrowerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching borrower: %w", err)
	}

	var result *CheckoutResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		booksTx := s.rm.Books(tx)

		book, err := booksTx.DecrementAvailable(ctx, params.BookID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				// The guard rejected the update: find out whether the book is
				// missing or merely out of stock.
				if _, findErr := booksTx.FindByID(ctx, params.BookID); findErr != nil {
					if errors.Is(findErr, common.ErrNotFound) {
						return fmt.Errorf("%w: book not found", common.ErrNotFound)
					}
					return findErr
				}
				return common.ErrOutOfStock
			}
			return err
		}

		borrowing, err := s.rm.Borrowings(tx).Create(ctx, borrowings.CreateParams{
			BookID:     params.BookID,
			BorrowerID: params.BorrowerID,
			DueDate:    dueDate,
			BorrowedAt: borrowedAt,
		})
		if err != nil {
			return fmt.Errorf("error creating borrowing: %w", err)
		}

		result = &CheckoutResult{Borrowing: borrowing, Book: book, Borrower: borrower}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// Return closes an active borrowing and puts the copy back on the shelf.
// Returning the same borrowing twice fails with ErrNotFound and never
// double-increments stock.
func (s *BorrowingService) Return(ctx context.Context, borrowingID int64) (*ReturnResult, error) {
	if borrowingID <= 0 {
		return nil, fmt.Errorf("%w: borrowing_id is required", common.ErrValidation)
	}

	active, err := s.rm.Borrowings(s.db).FindActiveByID(ctx, borrowingID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: active borrowing not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching borrowing: %w", err)
	}

	var result *ReturnResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		returned, err := s.rm.Borrowings(tx).MarkReturned(ctx, borrowingID, s.now())
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("%w: active borrowing not found", common.ErrNotFound)
			}
			return fmt.Errorf("error marking borrowing returned: %w", err)
		}

		book, err := s.rm.Books(tx).IncrementAvailable(ctx, active.BookID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("%w: book not found", common.ErrNotFound)
			}
			return fmt.Errorf("error restoring stock: %w", err)
		}

		result = &ReturnResult{Borrowing: returned, Book: book}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListActiveForBorrower returns the borrower and their open borrowings,
// newest borrowed first.
func (s *BorrowingService) ListActiveForBorrower(ctx context.Context, borrowerID int64) (*ActiveBorrowings, error) {
	if borrowerID <= 0 {
		return nil, fmt.Errorf("%w: invalid borrower id", common.ErrValidation)
	}

	borrower, err := s.rm.Borrowers(s.db).FindByID(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching borrower: %w", err)
	}

	items, err := s.rm.Reports().ListActiveByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("error listing active borrowings: %w", err)
	}

	return &ActiveBorrowings{Borrower: borrower, BorrowedBooks: items}, nil
}

// ListOverdue returns all open borrowings past due at the current instant,
// earliest due date first.
func (s *BorrowingService) ListOverdue(ctx context.Context) ([]models.BorrowingDetail, error) {
	items, err := s.rm.Reports().ListOverdue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing overdue borrowings: %w", err)
	}
	return items, nil
}

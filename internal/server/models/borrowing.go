package models

import "time"

// Borrowing is one checkout-to-return record linking a Book and a Borrower.
// It is created active (ReturnedAt nil), mutated exactly once at return, and
// never deleted or re-opened. The state is fully determined by ReturnedAt.
type Borrowing struct {
	ID         int64      `json:"id" db:"id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	BorrowerID int64      `json:"borrower_id" db:"borrower_id"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt *time.Time `json:"returned_at" db:"returned_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Active reports whether the borrowing has no recorded return.
func (b *Borrowing) Active() bool {
	return IsActive(b.ReturnedAt)
}

// OverdueAt reports whether the borrowing is active and past due at the
// given instant. Overdue status is always derived, never stored.
func (b *Borrowing) OverdueAt(now time.Time) bool {
	return IsOverdue(b.ReturnedAt, b.DueDate, now)
}

// ReturnedLate reports whether the borrowing was returned after its due date.
func (b *Borrowing) ReturnedLate() bool {
	return IsReturnedLate(b.ReturnedAt, b.DueDate)
}

// The null-check on returned_at encodes the Active/Returned state machine.
// Every caller derives state through these helpers instead of re-deriving
// the null-check ad hoc.

// IsActive reports whether a borrowing with the given return timestamp is
// still open.
func IsActive(returnedAt *time.Time) bool {
	return returnedAt == nil
}

// IsOverdue reports whether an open borrowing is past due at the given instant.
func IsOverdue(returnedAt *time.Time, dueDate, now time.Time) bool {
	return IsActive(returnedAt) && dueDate.Before(now)
}

// IsReturnedLate reports whether a closed borrowing came back after its due
// date. Used by the historical overdue exports, where a copy returned late
// still counts even though it is no longer overdue now.
func IsReturnedLate(returnedAt *time.Time, dueDate time.Time) bool {
	return returnedAt != nil && returnedAt.After(dueDate)
}

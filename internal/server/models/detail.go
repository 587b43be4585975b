package models

import "time"

// BorrowingDetail is a borrowing joined with the descriptive fields of its
// book and borrower. It is the flattened row shape of report listings and
// exports; the JSON field names are the export contract.
type BorrowingDetail struct {
	ID            int64      `json:"borrowing_id" db:"id"`
	BorrowedAt    time.Time  `json:"borrowed_at" db:"borrowed_at"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt    *time.Time `json:"returned_at" db:"returned_at"`
	BookID        int64      `json:"book_id" db:"book_id"`
	BookTitle     string     `json:"book_title" db:"book_title"`
	BookAuthor    string     `json:"book_author" db:"book_author"`
	BookISBN      string     `json:"book_isbn" db:"book_isbn"`
	BorrowerID    int64      `json:"borrower_id" db:"borrower_id"`
	BorrowerName  string     `json:"borrower_name" db:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email" db:"borrower_email"`
}

// Active reports whether the underlying borrowing is still open.
func (d *BorrowingDetail) Active() bool {
	return IsActive(d.ReturnedAt)
}

// OverdueAt reports whether the underlying borrowing is overdue at now.
func (d *BorrowingDetail) OverdueAt(now time.Time) bool {
	return IsOverdue(d.ReturnedAt, d.DueDate, now)
}

// ReturnedLate reports whether the borrowing was closed after its due date.
func (d *BorrowingDetail) ReturnedLate() bool {
	return IsReturnedLate(d.ReturnedAt, d.DueDate)
}

// BorrowedBook is an active borrowing joined with its book's descriptive
// fields, as listed for a single borrower.
type BorrowedBook struct {
	ID         int64     `json:"borrowing_id" db:"id"`
	BookID     int64     `json:"book_id" db:"book_id"`
	BorrowedAt time.Time `json:"borrowed_at" db:"borrowed_at"`
	DueDate    time.Time `json:"due_date" db:"due_date"`
	Title      string    `json:"title" db:"title"`
	Author     string    `json:"author" db:"author"`
	ISBN       string    `json:"isbn" db:"isbn"`
}

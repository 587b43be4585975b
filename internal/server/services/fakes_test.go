package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/dbx"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/books"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowers"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/users"
)

// fakeRepoManager returns the same fake repositories regardless of the handle
// passed in, so services exercise their transaction flow against sqlmock while
// the repository calls are stubbed per test.
type fakeRepoManager struct {
	books      books.Repository
	borrowers  borrowers.Repository
	borrowings borrowings.Repository
	users      users.Repository
	reports    reports.Repository
}

func (m *fakeRepoManager) Books(dbx.DBTX) books.Repository           { return m.books }
func (m *fakeRepoManager) Borrowers(dbx.DBTX) borrowers.Repository   { return m.borrowers }
func (m *fakeRepoManager) Borrowings(dbx.DBTX) borrowings.Repository { return m.borrowings }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoManager) Reports() reports.Repository               { return m.reports }

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

// Each fake embeds its interface; only the funcs a test assigns are callable,
// anything else panics and flags an unexpected repository call.

type fakeBooksRepo struct {
	books.Repository
	findByID           func(ctx context.Context, id int64) (*models.Book, error)
	findByISBN         func(ctx context.Context, isbn string) (*models.Book, error)
	decrementAvailable func(ctx context.Context, id int64) (*models.Book, error)
	incrementAvailable func(ctx context.Context, id int64) (*models.Book, error)
	update             func(ctx context.Context, book *models.Book) (*models.Book, error)
	delete             func(ctx context.Context, id int64) error
}

func (f *fakeBooksRepo) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	return f.findByID(ctx, id)
}

func (f *fakeBooksRepo) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	return f.findByISBN(ctx, isbn)
}

func (f *fakeBooksRepo) DecrementAvailable(ctx context.Context, id int64) (*models.Book, error) {
	return f.decrementAvailable(ctx, id)
}

func (f *fakeBooksRepo) IncrementAvailable(ctx context.Context, id int64) (*models.Book, error) {
	return f.incrementAvailable(ctx, id)
}

func (f *fakeBooksRepo) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	return f.update(ctx, book)
}

func (f *fakeBooksRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type fakeBorrowersRepo struct {
	borrowers.Repository
	findByID    func(ctx context.Context, id int64) (*models.Borrower, error)
	findByEmail func(ctx context.Context, email string) (*models.Borrower, error)
}

func (f *fakeBorrowersRepo) FindByID(ctx context.Context, id int64) (*models.Borrower, error) {
	return f.findByID(ctx, id)
}

func (f *fakeBorrowersRepo) FindByEmail(ctx context.Context, email string) (*models.Borrower, error) {
	return f.findByEmail(ctx, email)
}

type fakeBorrowingsRepo struct {
	borrowings.Repository
	create            func(ctx context.Context, params borrowings.CreateParams) (*models.Borrowing, error)
	findActiveByID    func(ctx context.Context, id int64) (*models.Borrowing, error)
	markReturned      func(ctx context.Context, id int64, returnedAt time.Time) (*models.Borrowing, error)
	hasActiveByBookID func(ctx context.Context, bookID int64) (bool, error)
}

func (f *fakeBorrowingsRepo) Create(ctx context.Context, params borrowings.CreateParams) (*models.Borrowing, error) {
	return f.create(ctx, params)
}

func (f *fakeBorrowingsRepo) FindActiveByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	return f.findActiveByID(ctx, id)
}

func (f *fakeBorrowingsRepo) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) (*models.Borrowing, error) {
	return f.markReturned(ctx, id, returnedAt)
}

func (f *fakeBorrowingsRepo) HasActiveByBookID(ctx context.Context, bookID int64) (bool, error) {
	return f.hasActiveByBookID(ctx, bookID)
}

type fakeReportsRepo struct {
	reports.Repository
	listActiveByBorrower func(ctx context.Context, borrowerID int64) ([]models.BorrowedBook, error)
	listOverdue          func(ctx context.Context, now time.Time) ([]models.BorrowingDetail, error)
	listByBorrowedPeriod func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error)
	listByDuePeriod      func(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error)
}

func (f *fakeReportsRepo) ListActiveByBorrower(ctx context.Context, borrowerID int64) ([]models.BorrowedBook, error) {
	return f.listActiveByBorrower(ctx, borrowerID)
}

func (f *fakeReportsRepo) ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowingDetail, error) {
	return f.listOverdue(ctx, now)
}

func (f *fakeReportsRepo) ListByBorrowedPeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
	return f.listByBorrowedPeriod(ctx, from, to)
}

func (f *fakeReportsRepo) ListByDuePeriod(ctx context.Context, from, to time.Time) ([]models.BorrowingDetail, error) {
	return f.listByDuePeriod(ctx, from, to)
}

type fakeUsersRepo struct {
	users.Repository
	create      func(ctx context.Context, user *models.User) (*models.User, error)
	findByID    func(ctx context.Context, id int64) (*models.User, error)
	findByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return f.create(ctx, user)
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return f.findByID(ctx, id)
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findByEmail(ctx, email)
}

// Package books contains the catalogue repository: CRUD, search, and the
// guarded stock counters used by the borrowing lifecycle.
package books

import (
	"context"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// SearchParams filters the catalogue. ISBN matches exactly, title and author
// match as case-insensitive substrings.
type SearchParams struct {
	Title  string
	Author string
	ISBN   string
	Limit  int
	Offset int
}

// Repository is the persistence interface for books.
//
// DecrementAvailable and IncrementAvailable must run on the same DBTX as the
// borrowing write they accompany so the pair stays one atomic unit.
type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]models.Book, error)
	Search(ctx context.Context, params SearchParams) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id int64) error

	// DecrementAvailable reduces available_quantity by one, but only while it
	// is positive; the guard and the write are a single SQL statement. It
	// returns ErrNotFound when no row qualified, which the caller
	// disambiguates (missing book vs. out of stock) by re-querying.
	DecrementAvailable(ctx context.Context, id int64) (*models.Book, error)

	// IncrementAvailable raises available_quantity by one and returns the
	// updated book, or ErrNotFound if the book no longer exists.
	IncrementAvailable(ctx context.Context, id int64) (*models.Book, error)
}

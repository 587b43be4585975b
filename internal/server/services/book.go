package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/books"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/repomanager"
)

// BookService manages the catalogue. Stock counters are off limits here:
// available_quantity changes only through the borrowing lifecycle, except
// for explicit inventory corrections via UpdateBook.
type BookService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

// NewBookService constructs a BookService.
func NewBookService(db *sql.DB, rm repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, rm: rm}
}

// CreateBookParams carries a new catalogue entry. AvailableQuantity nil
// means zero copies.
type CreateBookParams struct {
	Title             string
	Author            string
	ISBN              string
	ShelfLocation     string
	AvailableQuantity *int
}

// UpdateBookParams is a partial update; nil fields stay unchanged.
type UpdateBookParams struct {
	Title             *string
	Author            *string
	ISBN              *string
	ShelfLocation     *string
	AvailableQuantity *int
}

// CreateBook validates and inserts a new book. A duplicate ISBN fails with
// ErrConflict.
func (s *BookService) CreateBook(ctx context.Context, params CreateBookParams) (*models.Book, error) {
	if params.Title == "" || params.Author == "" || params.ISBN == "" || params.ShelfLocation == "" {
		return nil, fmt.Errorf("%w: title, author, isbn and shelf_location are required", common.ErrValidation)
	}

	quantity := 0
	if params.AvailableQuantity != nil {
		if *params.AvailableQuantity < 0 {
			return nil, fmt.Errorf("%w: available_quantity must be >= 0", common.ErrValidation)
		}
		quantity = *params.AvailableQuantity
	}

	repo := s.rm.Books(s.db)

	if _, err := repo.FindByISBN(ctx, params.ISBN); err == nil {
		return nil, fmt.Errorf("%w: isbn already exists", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error searching book: %w", err)
	}

	created, err := repo.Create(ctx, &models.Book{
		Title:             params.Title,
		Author:            params.Author,
		ISBN:              params.ISBN,
		AvailableQuantity: quantity,
		ShelfLocation:     params.ShelfLocation,
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetBook returns the book or ErrNotFound.
func (s *BookService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid book id", common.ErrValidation)
	}

	book, err := s.rm.Books(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: book not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching book: %w", err)
	}

	return book, nil
}

// ListBooks returns a page of the catalogue, newest first.
func (s *BookService) ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error) {
	items, err := s.rm.Books(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	return items, nil
}

// SearchBooks filters the catalogue by exact ISBN and title/author substrings.
func (s *BookService) SearchBooks(ctx context.Context, params books.SearchParams) ([]models.Book, error) {
	items, err := s.rm.Books(s.db).Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error searching books: %w", err)
	}
	return items, nil
}

// UpdateBook applies a partial update. Supplied text fields must be
// non-empty, a changed ISBN must stay unique, and a supplied quantity must
// be non-negative.
func (s *BookService) UpdateBook(ctx context.Context, id int64, params UpdateBookParams) (*models.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid book id", common.ErrValidation)
	}

	repo := s.rm.Books(s.db)

	book, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: book not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching book: %w", err)
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", common.ErrValidation)
		}
		book.Title = *params.Title
	}
	if params.Author != nil {
		if strings.TrimSpace(*params.Author) == "" {
			return nil, fmt.Errorf("%w: author cannot be empty", common.ErrValidation)
		}
		book.Author = *params.Author
	}
	if params.ISBN != nil {
		isbn := strings.TrimSpace(*params.ISBN)
		if isbn == "" {
			return nil, fmt.Errorf("%w: isbn cannot be empty", common.ErrValidation)
		}
		existing, err := repo.FindByISBN(ctx, isbn)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: isbn already exists", common.ErrConflict)
		}
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("error searching book: %w", err)
		}
		book.ISBN = isbn
	}
	if params.ShelfLocation != nil {
		book.ShelfLocation = *params.ShelfLocation
	}
	if params.AvailableQuantity != nil {
		if *params.AvailableQuantity < 0 {
			return nil, fmt.Errorf("%w: available_quantity must be a non-negative integer", common.ErrValidation)
		}
		book.AvailableQuantity = *params.AvailableQuantity
	}

	updated, err := repo.Update(ctx, book)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: book not found", common.ErrNotFound)
		}
		return nil, err
	}

	return updated, nil
}

// DeleteBook removes a book that has no open borrowings.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid book id", common.ErrValidation)
	}

	active, err := s.rm.Borrowings(s.db).HasActiveByBookID(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking borrowings: %w", err)
	}
	if active {
		return fmt.Errorf("%w: book has active borrowings", common.ErrValidation)
	}

	if err := s.rm.Books(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: book not found", common.ErrNotFound)
		}
		return fmt.Errorf("error deleting book: %w", err)
	}

	return nil
}

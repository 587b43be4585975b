package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/repomanager"
)

// BorrowerService manages the borrower directory.
type BorrowerService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

// NewBorrowerService constructs a BorrowerService.
func NewBorrowerService(db *sql.DB, rm repomanager.RepositoryManager) *BorrowerService {
	return &BorrowerService{db: db, rm: rm}
}

// UpdateBorrowerParams is a partial update; nil fields stay unchanged.
type UpdateBorrowerParams struct {
	Name  *string
	Email *string
}

// CreateBorrower registers a new borrower. A duplicate email fails with
// ErrConflict.
func (s *BorrowerService) CreateBorrower(ctx context.Context, name, email string) (*models.Borrower, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", common.ErrValidation)
	}

	repo := s.rm.Borrowers(s.db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error searching borrower: %w", err)
	}

	created, err := repo.Create(ctx, &models.Borrower{Name: name, Email: email})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetBorrower returns the borrower or ErrNotFound.
func (s *BorrowerService) GetBorrower(ctx context.Context, id int64) (*models.Borrower, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid borrower id", common.ErrValidation)
	}

	borrower, err := s.rm.Borrowers(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching borrower: %w", err)
	}

	return borrower, nil
}

// ListBorrowers returns a page of the directory, newest first.
func (s *BorrowerService) ListBorrowers(ctx context.Context, limit, offset int) ([]models.Borrower, error) {
	items, err := s.rm.Borrowers(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing borrowers: %w", err)
	}
	return items, nil
}

// UpdateBorrower applies a partial update; a changed email must stay unique.
func (s *BorrowerService) UpdateBorrower(ctx context.Context, id int64, params UpdateBorrowerParams) (*models.Borrower, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid borrower id", common.ErrValidation)
	}

	repo := s.rm.Borrowers(s.db)

	borrower, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching borrower: %w", err)
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", common.ErrValidation)
		}
		borrower.Name = *params.Name
	}
	if params.Email != nil {
		email := strings.TrimSpace(*params.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", common.ErrValidation)
		}
		existing, err := repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: email already exists", common.ErrConflict)
		}
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("error searching borrower: %w", err)
		}
		borrower.Email = email
	}

	updated, err := repo.Update(ctx, borrower)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return nil, err
	}

	return updated, nil
}

// DeleteBorrower removes a borrower. Borrowing history keeps a RESTRICT
// foreign key on the row, so deletion fails at the database for borrowers
// with history.
func (s *BorrowerService) DeleteBorrower(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid borrower id", common.ErrValidation)
	}

	if err := s.rm.Borrowers(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: borrower not found", common.ErrNotFound)
		}
		return fmt.Errorf("error deleting borrower: %w", err)
	}

	return nil
}

// Package borrowers contains the borrower directory repository.
package borrowers

import (
	"context"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// Repository is the persistence interface for borrowers.
type Repository interface {
	Create(ctx context.Context, borrower *models.Borrower) (*models.Borrower, error)
	FindByID(ctx context.Context, id int64) (*models.Borrower, error)
	FindByEmail(ctx context.Context, email string) (*models.Borrower, error)
	List(ctx context.Context, limit, offset int) ([]models.Borrower, error)
	Update(ctx context.Context, borrower *models.Borrower) (*models.Borrower, error)
	Delete(ctx context.Context, id int64) error
}

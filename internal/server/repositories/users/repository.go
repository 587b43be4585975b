// Package users contains the repository for API accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

// Repository is the persistence interface for API users.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

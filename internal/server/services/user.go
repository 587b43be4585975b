package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/auth"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
	"github.com/dmitrijs2005/lendkeeper/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// UserService registers API accounts and issues access tokens.
type UserService struct {
	db            *sql.DB
	rm            repomanager.RepositoryManager
	secretKey     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService signing tokens with secretKey.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, secretKey []byte, tokenValidity time.Duration) *UserService {
	return &UserService{db: db, rm: rm, secretKey: secretKey, tokenValidity: tokenValidity}
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an API account and returns a fresh token for it.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}

	repo := s.rm.Users(s.db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials and returns a token. Unknown emails and wrong
// passwords both fail with ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.rm.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetByID loads an account, typically for the authenticated request context.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.rm.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// VerifyToken validates an access token and returns the account id it carries.
func (s *UserService) VerifyToken(tokenString string) (int64, error) {
	return auth.GetUserIDFromToken(tokenString, s.secretKey)
}

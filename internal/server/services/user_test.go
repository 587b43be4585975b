package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
	"github.com/dmitrijs2005/lendkeeper/internal/server/auth"
	"github.com/dmitrijs2005/lendkeeper/internal/server/models"
)

var testSecret = []byte("test_secret_key")

func TestRegister(t *testing.T) {
	var created *models.User
	rm := &fakeRepoManager{
		users: &fakeUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return nil, common.ErrNotFound
			},
			create: func(ctx context.Context, user *models.User) (*models.User, error) {
				user.ID = 1
				created = user
				return user, nil
			},
		},
	}

	svc := NewUserService(nil, rm, testSecret, time.Hour)

	result, err := svc.Register(context.Background(), "Grace", "  Grace@Example.COM ", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", created.Email)
	require.True(t, auth.CheckPassword("correct horse", created.PasswordHash))

	userID, err := auth.GetUserIDFromToken(result.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(nil, &fakeRepoManager{}, testSecret, time.Hour)

	tests := []struct {
		name                  string
		userName, email, pass string
	}{
		{"missing name", "", "a@b.com", "long enough"},
		{"missing email", "Grace", "", "long enough"},
		{"missing password", "Grace", "a@b.com", ""},
		{"email without at sign", "Grace", "not-an-email", "long enough"},
		{"email without dot", "Grace", "a@b", "long enough"},
		{"short password", "Grace", "a@b.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.pass)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	rm := &fakeRepoManager{
		users: &fakeUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: 1, Email: email}, nil
			},
		},
	}

	svc := NewUserService(nil, rm, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Grace", "grace@example.com", "correct horse")
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	rm := &fakeRepoManager{
		users: &fakeUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*models.User, error) {
				if email != "grace@example.com" {
					return nil, common.ErrNotFound
				}
				return &models.User{ID: 1, Email: email, PasswordHash: hash}, nil
			},
		},
	}

	svc := NewUserService(nil, rm, testSecret, time.Hour)

	result, err := svc.Login(context.Background(), "Grace@Example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	// Wrong password and unknown email are indistinguishable to the caller.
	_, err = svc.Login(context.Background(), "grace@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Login(context.Background(), "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

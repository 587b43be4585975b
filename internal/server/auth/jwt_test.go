package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lendkeeper/internal/common"
)

var secret = []byte("test-secret")

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "alice@example.com", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "alice@example.com", secret, time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("other-secret"))
	require.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken(42, "alice@example.com", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	require.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", secret)
	require.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

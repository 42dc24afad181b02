package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse_RoundTrip(t *testing.T) {
	userID := uuid.New()

	raw, err := Sign(userID, "secret", time.Hour)
	require.NoError(t, err)

	parsed, err := Parse(raw, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	raw, err := Sign(uuid.New(), "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(raw, "other-secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	raw, err := Sign(uuid.New(), "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(raw, "secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParse_RejectsEmptyToken(t *testing.T) {
	_, err := Parse("", "secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrNoSession)
}

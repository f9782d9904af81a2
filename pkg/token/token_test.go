package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := New("test-secret", 15*time.Minute, 7*24*time.Hour)

	access, refresh, err := m.Issue("user-42")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := m.Parse(access)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestParse_WrongSecret(t *testing.T) {
	m := New("secret-a", time.Minute, time.Hour)
	access, _, err := m.Issue("user-42")
	require.NoError(t, err)

	_, err = New("secret-b", time.Minute, time.Hour).Parse(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := New("test-secret", -time.Minute, time.Hour)
	access, _, err := m.Issue("user-42")
	require.NoError(t, err)

	_, err = m.Parse(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	m := New("test-secret", time.Minute, time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResetTokensConsumeIsSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@example.com", time.Minute)

	email, ok := store.Peek("tok")
	require.True(t, ok)
	require.Equal(t, "ana@example.com", email)

	require.Equal(t, "ana@example.com", store.Consume("tok"))
	require.Equal(t, "", store.Consume("tok"))

	_, ok = store.Peek("tok")
	require.False(t, ok)
}

func TestResetTokensExpiry(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@example.com", -time.Second)

	_, ok := store.Peek("tok")
	require.False(t, ok)
	require.Equal(t, "", store.Consume("tok"))
}

func TestResetTokensUnknownToken(t *testing.T) {
	store := NewResetTokens()
	require.Equal(t, "", store.Consume("never-issued"))
}

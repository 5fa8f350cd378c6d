package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDigestKey_Stable(t *testing.T) {
	a := DigestKey([]byte("A=1\n"))
	b := DigestKey([]byte("A=1\n"))
	c := DigestKey([]byte("A=2\n"))

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)
}

func TestMemory_SetGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	type payload struct {
		Value string `json:"value"`
	}

	require.NoError(t, m.Set(ctx, "k", payload{Value: "hi"}, time.Minute))

	var got payload
	found, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "hi", got.Value)
}

func TestMemory_MissReturnsFalse(t *testing.T) {
	m := NewMemory()
	var dest string
	found, err := m.Get(context.Background(), "missing", &dest)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemory_ExpiredEntryIsAMiss(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "v", -time.Second))

	var dest string
	found, err := m.Get(ctx, "k", &dest)
	require.NoError(t, err)
	require.False(t, found)
}

package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubChannelAcceptsAnyLongCode(t *testing.T) {
	ch := StubChannel{}
	ctx := context.Background()
	require.NoError(t, ch.Issue(ctx, "5551234"))

	tests := []struct {
		code string
		want bool
	}{
		{"", false},
		{"1", false},
		{"123", false},
		{"1234", true},
		{"000000", true},
		{"abcd", true},
	}
	for _, tt := range tests {
		ok, err := ch.Verify(ctx, "5551234", tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "code %q", tt.code)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "5551234")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	require.NoError(t, s.Save(ctx, "5551234", "9321", time.Minute))
	code, err := s.Get(ctx, "5551234")
	require.NoError(t, err)
	assert.Equal(t, "9321", code)

	require.NoError(t, s.Delete(ctx, "5551234"))
	_, err = s.Get(ctx, "5551234")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Save(ctx, "5551234", "9321", time.Minute))

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := s.Get(ctx, "5551234")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestStoreChannelIssueAndVerify(t *testing.T) {
	s := NewMemoryStore()
	ch := NewStoreChannel(s, time.Minute)
	ctx := context.Background()

	require.NoError(t, ch.Issue(ctx, "5551234"))
	issued, err := s.Get(ctx, "5551234")
	require.NoError(t, err)
	require.Len(t, issued, 4)

	// Wrong code: rejected, the issued code is retained for retry
	ok, err := ch.Verify(ctx, "5551234", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = s.Get(ctx, "5551234")
	require.NoError(t, err)

	// Right code: accepted and consumed
	ok, err = ch.Verify(ctx, "5551234", issued)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ch.Verify(ctx, "5551234", issued)
	require.NoError(t, err)
	assert.False(t, ok, "codes are single-use")
}

func TestStoreChannelUnissuedPhone(t *testing.T) {
	ch := NewStoreChannel(NewMemoryStore(), time.Minute)
	ok, err := ch.Verify(context.Background(), "5550000", "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

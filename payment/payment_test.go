package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

func TestStubProviderRoundTrip(t *testing.T) {
	p := NewStubProvider("http://localhost:8080")
	ctx := context.Background()
	plan := models.Plan{Slug: models.PlanPremium, Price: 299}

	session, err := p.CreateSession(ctx, 7, plan)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, uint(7), session.RestaurantID)
	assert.Equal(t, models.PlanPremium, session.PlanSlug)
	assert.InDelta(t, 299.0, session.Amount, 1e-9)
	assert.Contains(t, session.CheckoutURL, session.ID)

	settled, err := p.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, settled.ID)

	// A session settles exactly once
	_, err = p.CompleteSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteUnknownSession(t *testing.T) {
	p := NewStubProvider("http://localhost:8080")
	_, err := p.CompleteSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

// ErrSessionNotFound means the checkout session is unknown or already
// completed.
var ErrSessionNotFound = errors.New("checkout session not found")

// Session is one plan-upgrade checkout attempt.
type Session struct {
	ID           string    `json:"session_id"`
	RestaurantID uint      `json:"restaurant_id"`
	PlanSlug     string    `json:"plan"`
	Amount       float64   `json:"amount"`
	CheckoutURL  string    `json:"checkout_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Provider creates and settles checkout sessions. The real gateway is
// an external collaborator; the core only records the outcome.
type Provider interface {
	CreateSession(ctx context.Context, restaurantID uint, plan models.Plan) (*Session, error)
	CompleteSession(ctx context.Context, sessionID string) (*Session, error)
}

// StubProvider keeps pending sessions in memory and settles them when
// the callback endpoint is hit. It stands in for a hosted gateway.
type StubProvider struct {
	mu       sync.Mutex
	baseURL  string
	sessions map[string]*Session
}

func NewStubProvider(baseURL string) *StubProvider {
	return &StubProvider{
		baseURL:  baseURL,
		sessions: make(map[string]*Session),
	}
}

func (p *StubProvider) CreateSession(ctx context.Context, restaurantID uint, plan models.Plan) (*Session, error) {
	s := &Session{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		PlanSlug:     plan.Slug,
		Amount:       plan.Price,
		CreatedAt:    time.Now(),
	}
	s.CheckoutURL = p.baseURL + "/checkout?session=" + s.ID

	p.mu.Lock()
	p.sessions[s.ID] = s
	p.mu.Unlock()
	return s, nil
}

func (p *StubProvider) CompleteSession(ctx context.Context, sessionID string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(p.sessions, sessionID)
	return s, nil
}

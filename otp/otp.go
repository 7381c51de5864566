package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"
)

// ErrCodeNotFound means no code is currently issued for the phone.
var ErrCodeNotFound = errors.New("no confirmation code issued for this phone")

// StubChannel accepts any submitted code of length >= 4. It is the
// minimum viable channel for environments without a carrier integration
// and is a documented simplification, not a security guarantee.
type StubChannel struct{}

func (StubChannel) Issue(ctx context.Context, phone string) error {
	log.Printf("📱 OTP requested for %s (stub channel, any 4+ digit code accepted)", phone)
	return nil
}

func (StubChannel) Verify(ctx context.Context, phone, code string) (bool, error) {
	return len(code) >= 4, nil
}

// CodeStore holds issued codes until they expire or are consumed.
type CodeStore interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// StoreChannel issues a random 4-digit code with a TTL and verifies an
// exact match. Codes are single-use: consumed on a successful match,
// retained on mismatch so the customer can retry.
type StoreChannel struct {
	store CodeStore
	ttl   time.Duration
}

func NewStoreChannel(store CodeStore, ttl time.Duration) *StoreChannel {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StoreChannel{store: store, ttl: ttl}
}

func (c *StoreChannel) Issue(ctx context.Context, phone string) error {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%04d", n.Int64())
	if err := c.store.Save(ctx, phone, code, c.ttl); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	// No carrier integration: the code is logged where an SMS gateway
	// would otherwise deliver it.
	log.Printf("📱 OTP for %s: %s (valid %s)", phone, code, c.ttl)
	return nil
}

func (c *StoreChannel) Verify(ctx context.Context, phone, code string) (bool, error) {
	issued, err := c.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	if issued != code {
		return false, nil
	}
	if err := c.store.Delete(ctx, phone); err != nil {
		return false, err
	}
	return true, nil
}

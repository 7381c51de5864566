package checkout

import (
	"context"
	"log"
	"strings"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/cart"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/notify"
)

// State is the explicit tag for the order submission flow.
type State string

const (
	StateEditing              State = "editing"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateCompleted            State = "completed"
	StateAbandoned            State = "abandoned"
)

// OrderStore persists confirmed orders.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) (uint, error)
}

// CodeChannel issues and verifies one-time confirmation codes for a
// customer phone number.
type CodeChannel interface {
	Issue(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// Notifier hands the formatted order text to the owner's channel.
// Best-effort: a failed send never invalidates a persisted order.
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
}

// PendingOrder is the transient draft captured when contact details are
// submitted. Line items and total are frozen at capture time and never
// recomputed from live catalog prices.
type PendingOrder struct {
	CustomerName        string             `json:"customer_name"`
	CustomerPhone       string             `json:"customer_phone"`
	SpecialInstructions string             `json:"special_instructions"`
	Lines               []models.OrderItem `json:"lines"`
	Total               float64            `json:"total"`
}

// Flow drives one session's cart through checkout, OTP confirmation,
// persistence and the owner notification. Collaborators are injected so
// the flow runs without live network calls in tests.
type Flow struct {
	restaurant models.Restaurant
	cart       *cart.Cart
	catalog    cart.Catalog
	store      OrderStore
	codes      CodeChannel
	notifier   Notifier

	state   State
	pending *PendingOrder
}

func NewFlow(restaurant models.Restaurant, c *cart.Cart, catalog cart.Catalog, store OrderStore, codes CodeChannel, notifier Notifier) *Flow {
	return &Flow{
		restaurant: restaurant,
		cart:       c,
		catalog:    catalog,
		store:      store,
		codes:      codes,
		notifier:   notifier,
		state:      StateEditing,
	}
}

func (f *Flow) State() State { return f.state }

func (f *Flow) Cart() *cart.Cart { return f.cart }

// Pending returns a copy of the draft so callers can prefill forms
// without aliasing flow state.
func (f *Flow) Pending() *PendingOrder {
	if f.pending == nil {
		return nil
	}
	p := *f.pending
	p.Lines = append([]models.OrderItem(nil), f.pending.Lines...)
	return &p
}

// SubmitDetails moves Editing → AwaitingConfirmation. It captures the
// order snapshot and issues a confirmation code to the customer phone.
// Missing fields keep the flow in Editing.
func (f *Flow) SubmitDetails(ctx context.Context, name, phone, instructions string) error {
	if f.state != StateEditing {
		return ErrInvalidState
	}
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "customer_name", Message: "please enter your name"}
	}
	if strings.TrimSpace(phone) == "" {
		return &ValidationError{Field: "customer_phone", Message: "please enter your phone number"}
	}
	if f.cart.Empty() {
		return &ValidationError{Field: "cart", Message: "your cart is empty"}
	}

	lines := f.cart.Lines(f.catalog)
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}

	if err := f.codes.Issue(ctx, phone); err != nil {
		return err
	}

	f.pending = &PendingOrder{
		CustomerName:        strings.TrimSpace(name),
		CustomerPhone:       strings.TrimSpace(phone),
		SpecialInstructions: strings.TrimSpace(instructions),
		Lines:               lines,
		Total:               total,
	}
	f.state = StateAwaitingConfirmation
	return nil
}

// Confirm moves AwaitingConfirmation → Completed. Side effects are
// strictly sequenced: persist first, notify only after persistence
// succeeded, clear the cart last. A persistence failure leaves the cart
// intact and the flow retryable.
func (f *Flow) Confirm(ctx context.Context, code string) (*models.Order, error) {
	if f.state != StateAwaitingConfirmation {
		return nil, ErrInvalidState
	}
	code = strings.TrimSpace(code)
	if len(code) < 4 {
		return nil, &ValidationError{Field: "code", Message: "please enter a valid OTP"}
	}

	ok, err := f.codes.Verify(ctx, f.pending.CustomerPhone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConfirmationMismatch
	}

	order := &models.Order{
		RestaurantID:        f.restaurant.ID,
		CustomerName:        f.pending.CustomerName,
		CustomerPhone:       f.pending.CustomerPhone,
		Status:              models.StatusPending,
		TotalAmount:         f.pending.Total,
		SpecialInstructions: f.pending.SpecialInstructions,
		Items:               append([]models.OrderItem(nil), f.pending.Lines...),
	}

	if _, err := f.store.InsertOrder(ctx, order); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	if err := f.notifier.Send(ctx, f.restaurant.WhatsAppPhone, notify.OrderMessage(order)); err != nil {
		log.Printf("order notification failed for order %d: %v", order.ID, err)
	}

	f.cart.Clear()
	f.state = StateCompleted
	return order, nil
}

// Back moves AwaitingConfirmation → Editing, discarding the issued code
// but keeping the draft so the customer need not re-enter details.
func (f *Flow) Back() error {
	if f.state != StateAwaitingConfirmation {
		return ErrInvalidState
	}
	f.state = StateEditing
	return nil
}

// Abandon terminates the flow from any non-terminal state. The cart and
// draft are dropped; nothing was persisted, so there is nothing to
// compensate.
func (f *Flow) Abandon() {
	if f.state == StateCompleted || f.state == StateAbandoned {
		return
	}
	f.cart.Clear()
	f.pending = nil
	f.state = StateAbandoned
}

package handlers

import (
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/checkout"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/payment"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/session"
)

// Shared collaborators wired once at startup. The checkout flow itself
// receives them through its constructor so it stays testable; handlers
// reach them the same way they reach config.DB.
var (
	Sessions *session.Registry
	Codes    checkout.CodeChannel
	Notifier checkout.Notifier
	Payments payment.Provider
)

// Configure installs the collaborators the handlers hand to new flows.
func Configure(reg *session.Registry, codes checkout.CodeChannel, notifier checkout.Notifier, payments payment.Provider) {
	Sessions = reg
	Codes = codes
	Notifier = notifier
	Payments = payments
}

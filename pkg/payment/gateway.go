package payment

import (
	"context"
	"fmt"

	"printmob-be/internal/entity"
)

// GatewayError wraps provider failures so callers can tell a gateway
// problem apart from a local one when deciding whether to park a refund.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Preference is the checkout artifact the frontend needs to start a payment.
type Preference struct {
	Id          string
	RedirectURL string
}

// Details is the provider-side view of a settled payment.
type Details struct {
	PaymentId string
	Status    string
	NetAmount float64
}

// Gateway abstracts the payment provider. The settlement jobs and the pledge
// flow only depend on this interface so tests can swap in a fake.
type Gateway interface {
	// CreatePledgePreference registers a checkout preference for the given
	// campaign under the caller's order reference. The reference comes back
	// verbatim in webhook notifications, which is how payments are traced to
	// pledges.
	CreatePledgePreference(ctx context.Context, orderRef string, campaign *entity.Campaign) (*Preference, error)

	// FetchPayment loads payment details by provider payment id. It runs the
	// primary lookup under a short timeout and falls back to a secondary
	// verification call when the primary does not answer in time.
	FetchPayment(ctx context.Context, paymentId string) (*Details, error)

	// RefundPayment refunds a settled payment. Against sandbox credentials
	// the provider rejects refunds; that rejection is treated as a no-op so
	// test environments settle cleanly.
	RefundPayment(ctx context.Context, paymentId string, amount float64) error
}

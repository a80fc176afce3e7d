package payments

import "context"

// Intent statuses as reported by the provider. The vocabulary is the
// provider's; only succeeded is interpreted by the reconciliation engine.
const StatusSucceeded = "succeeded"

// Intent is the provider-side view of a payment attempt.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Provider is the payment-provider capability: create an intent, look one
// up again. Injected so services and tests never touch the SDK directly.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}

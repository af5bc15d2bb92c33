package payment

import "context"

type Platform string

const (
	PlatformStripe   Platform = "Stripe"
	PlatformPaystack Platform = "Paystack"
)

// ChargeGateway captures card payments from a client-side token.
type ChargeGateway interface {
	Charge(ctx context.Context, params ChargeParams) (*Charge, error)
	Refund(ctx context.Context, chargeID string) (*Refund, error)
}

// VerifyGateway confirms transactions the client completed with the provider.
type VerifyGateway interface {
	Verify(ctx context.Context, reference string) (*Verification, error)
	Refund(ctx context.Context, reference string) (*Refund, error)
	VerifySignature(signature string, body []byte) error
}

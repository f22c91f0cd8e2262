package provider

import "context"

type CreateCheckoutInput struct {
	PriceID           string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
}

// CheckoutSession is the provider's view of a checkout intent. Status
// and PaymentStatus carry the provider's raw values; the "paid"
// payment status is the only one that entitles the buyer.
type CheckoutSession struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
}

func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == "paid"
}

type CheckoutProvider interface {
	Code() string
	CreateCheckoutSession(ctx context.Context, input *CreateCheckoutInput) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

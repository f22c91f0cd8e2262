package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibast-solutions/ms-go-reader/app/provider"
	"github.com/vibast-solutions/ms-go-reader/config"
)

const defaultProviderCode = "stripe"

type sessionWriter interface {
	Put(ctx context.Context, token string, ttl time.Duration) error
}

// EntitlementService owns the anonymous-to-credentialed transition:
// sending a visitor to the provider's hosted checkout, and redeeming a
// returned checkout session id into a stored credential token.
type EntitlementService struct {
	sessions    sessionWriter
	providerReg *provider.Registry
	stripeCfg   config.StripeConfig
	sessionCfg  config.SessionConfig
}

func NewEntitlementService(
	sessions sessionWriter,
	providerReg *provider.Registry,
	stripeCfg config.StripeConfig,
	sessionCfg config.SessionConfig,
) *EntitlementService {
	return &EntitlementService{
		sessions:    sessions,
		providerReg: providerReg,
		stripeCfg:   stripeCfg,
		sessionCfg:  sessionCfg,
	}
}

// InitiateCheckout creates a hosted checkout session and returns its
// URL. origin is the scheme://host of the inbound request; the
// provider substitutes the real session id into the success URL
// placeholder on redirect.
func (s *EntitlementService) InitiateCheckout(ctx context.Context, origin string) (string, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return "", ErrInvalidRequest
	}

	providerClient, err := s.providerReg.Get(defaultProviderCode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	session, err := providerClient.CreateCheckoutSession(ctx, &provider.CreateCheckoutInput{
		PriceID:           s.stripeCfg.PriceID,
		ClientReferenceID: uuid.NewString(),
		SuccessURL:        origin + "/claim?cs=" + provider.CheckoutSessionIDPlaceholder,
		CancelURL:         origin + "/",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("%w: checkout session has no redirect url", ErrProviderUnavailable)
	}

	return session.URL, nil
}

// RedeemCheckout turns a paid checkout session into a fresh credential
// token with the configured TTL. Every successful call mints a new
// token; redeeming the same session id twice yields two independently
// valid credentials (no dedup by session id).
func (s *EntitlementService) RedeemCheckout(ctx context.Context, checkoutSessionID string) (string, error) {
	checkoutSessionID = strings.TrimSpace(checkoutSessionID)
	if checkoutSessionID == "" {
		return "", ErrInvalidRequest
	}

	providerClient, err := s.providerReg.Get(defaultProviderCode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	session, err := providerClient.GetCheckoutSession(ctx, checkoutSessionID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if !session.Paid() {
		return "", ErrPaymentUnverified
	}

	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Put(ctx, token, s.sessionCfg.TTL); err != nil {
		return "", err
	}

	return token, nil
}

// SessionTTL is the lifetime applied to minted credentials, exposed so
// the cookie Max-Age can match the store TTL exactly.
func (s *EntitlementService) SessionTTL() time.Duration {
	return s.sessionCfg.TTL
}

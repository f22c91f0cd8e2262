package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CheckoutSessionIDPlaceholder is substituted by Stripe with the real
// session id when redirecting to the success URL. It must be sent
// literally; the gateway never pre-fills it.
const CheckoutSessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

const stripeProviderCode = "stripe"

type StripeConfig struct {
	SecretKey   string
	APIBaseURL  string
	HTTPTimeout time.Duration
}

type StripeProvider struct {
	cfg    StripeConfig
	client *http.Client
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = "https://api.stripe.com"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &StripeProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *StripeProvider) Code() string {
	return stripeProviderCode
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, input *CreateCheckoutInput) (*CheckoutSession, error) {
	if strings.TrimSpace(p.cfg.SecretKey) == "" {
		return nil, errors.New("stripe secret key is not configured")
	}
	if strings.TrimSpace(input.PriceID) == "" {
		return nil, errors.New("stripe price id is not configured")
	}

	values := url.Values{}
	values.Set("mode", "payment")
	values.Set("line_items[0][price]", input.PriceID)
	values.Set("line_items[0][quantity]", "1")
	values.Set("success_url", input.SuccessURL)
	values.Set("cancel_url", input.CancelURL)
	if s := strings.TrimSpace(input.ClientReferenceID); s != "" {
		values.Set("client_reference_id", s)
	}

	body, err := p.postForm(ctx, "/v1/checkout/sessions", values)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID            string `json:"id"`
		URL           string `json:"url"`
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ID:            strings.TrimSpace(payload.ID),
		URL:           strings.TrimSpace(payload.URL),
		Status:        payload.Status,
		PaymentStatus: payload.PaymentStatus,
	}, nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("checkout session id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.APIBaseURL+"/v1/checkout/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		ID            string `json:"id"`
		URL           string `json:"url"`
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ID:            strings.TrimSpace(payload.ID),
		URL:           strings.TrimSpace(payload.URL),
		Status:        payload.Status,
		PaymentStatus: payload.PaymentStatus,
	}, nil
}

func (p *StripeProvider) postForm(ctx context.Context, path string, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIBaseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

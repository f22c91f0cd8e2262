package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newStripeTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *StripeProvider) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewStripeProvider(StripeConfig{
		SecretKey:  "sk_test_123",
		APIBaseURL: srv.URL,
	})
	return srv, p
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string
	_, p := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1","status":"open","payment_status":"unpaid"}`))
	})

	session, err := p.CreateCheckoutSession(context.Background(), &CreateCheckoutInput{
		PriceID:           "price_123",
		ClientReferenceID: "ref-1",
		SuccessURL:        "https://example.com/claim?cs=" + CheckoutSessionIDPlaceholder,
		CancelURL:         "https://example.com/",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.ID != "cs_test_1" {
		t.Fatalf("unexpected session id: %s", session.ID)
	}
	if session.URL != "https://checkout.stripe.com/c/pay/cs_test_1" {
		t.Fatalf("unexpected checkout URL: %s", session.URL)
	}

	if gotForm["mode"] != "payment" {
		t.Fatalf("unexpected mode: %s", gotForm["mode"])
	}
	if gotForm["line_items[0][price]"] != "price_123" || gotForm["line_items[0][quantity]"] != "1" {
		t.Fatalf("unexpected line items: %v", gotForm)
	}
	if gotForm["success_url"] != "https://example.com/claim?cs={CHECKOUT_SESSION_ID}" {
		t.Fatalf("success_url must carry the literal placeholder, got %s", gotForm["success_url"])
	}
	if gotForm["cancel_url"] != "https://example.com/" {
		t.Fatalf("unexpected cancel_url: %s", gotForm["cancel_url"])
	}
	if gotForm["client_reference_id"] != "ref-1" {
		t.Fatalf("unexpected client_reference_id: %s", gotForm["client_reference_id"])
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	_, p := newStripeTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"No such price"}}`))
	})

	_, err := p.CreateCheckoutSession(context.Background(), &CreateCheckoutInput{PriceID: "price_bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Fatal("expected provider body in error")
	}
}

func TestGetCheckoutSession(t *testing.T) {
	_, p := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/checkout/sessions/cs_test_2" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_2","status":"complete","payment_status":"paid"}`))
	})

	session, err := p.GetCheckoutSession(context.Background(), "cs_test_2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !session.Paid() {
		t.Fatalf("expected paid session, got payment_status=%s", session.PaymentStatus)
	}
}

func TestGetCheckoutSessionUnpaid(t *testing.T) {
	_, p := newStripeTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_test_3","status":"open","payment_status":"unpaid"}`))
	})

	session, err := p.GetCheckoutSession(context.Background(), "cs_test_3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Paid() {
		t.Fatal("expected unpaid session")
	}
}

func TestGetCheckoutSessionNotFound(t *testing.T) {
	_, p := newStripeTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such checkout session"}}`))
	})

	_, err := p.GetCheckoutSession(context.Background(), "cs_missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestGetCheckoutSessionRequiresID(t *testing.T) {
	p := NewStripeProvider(StripeConfig{SecretKey: "sk_test_123"})
	if _, err := p.GetCheckoutSession(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestRegistry(t *testing.T) {
	stripe := NewStripeProvider(StripeConfig{SecretKey: "sk_test_123"})
	registry := NewRegistry(stripe)

	got, err := registry.Get("stripe")
	if err != nil {
		t.Fatalf("expected stripe provider, got error %v", err)
	}
	if got != stripe {
		t.Fatal("unexpected provider instance")
	}

	if _, err := registry.Get("paypal"); !errors.Is(err, ErrProviderNotSupported) {
		t.Fatalf("expected ErrProviderNotSupported, got %v", err)
	}
}

package payment_test

import (
	"context"
	"sync"

	"github.com/DhavalSuthar-24/tourney/internal/payment"
)

// fakeProvider records checkout requests and serves pre-built webhook events.
type fakeProvider struct {
	mu       sync.Mutex
	requests []payment.CheckoutRequest

	CreateFunc func(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	ParseFunc  func(payload []byte, signatureHeader string) (*payment.WebhookEvent, error)
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, req)
	}
	return &payment.CheckoutSession{ID: "cs_fake", URL: "https://checkout.stripe.test/cs_fake"}, nil
}

func (f *fakeProvider) ParseWebhook(payload []byte, signatureHeader string) (*payment.WebhookEvent, error) {
	return f.ParseFunc(payload, signatureHeader)
}

func (f *fakeProvider) calls() []payment.CheckoutRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]payment.CheckoutRequest(nil), f.requests...)
}

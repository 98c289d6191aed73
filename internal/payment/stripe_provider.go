package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/DhavalSuthar-24/tourney/internal/common"
)

// StripeProvider talks to Stripe Checkout and verifies Stripe webhooks.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	tolerance     time.Duration
}

func NewStripeProvider(secretKey, webhookSecret string, timeout time.Duration) *StripeProvider {
	httpClient := &http.Client{Timeout: timeout}
	// GetBackendWithConfig fills in the backend URL, so each backend needs
	// its own config value.
	backendConfig := func() *stripe.BackendConfig {
		return &stripe.BackendConfig{
			HTTPClient:        httpClient,
			MaxNetworkRetries: stripe.Int64(1),
		}
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig()),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig()),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig()),
	}
	return &StripeProvider{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
		tolerance:     webhook.DefaultTolerance,
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(MetadataTournamentID, strconv.FormatUint(uint64(req.TournamentID), 10))
	params.AddMetadata(MetadataUserID, strconv.FormatUint(uint64(req.UserID), 10))

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProvider) ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, ErrMissingSignature
	}
	// Never verify against an empty key.
	if p.webhookSecret == "" {
		return nil, ErrWebhookSecretMissing
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, p.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                p.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, common.SignatureFailure(fmt.Errorf("%w: %v", ErrInvalidSignature, err))
		}
		return nil, ErrMalformedEvent
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type), Payload: payload}
	if out.Type != EventCheckoutSessionCompleted {
		return out, nil
	}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, ErrMalformedEvent
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil || cs.ID == "" {
		return nil, ErrMalformedEvent
	}

	session := &CompletedSession{
		ID:          cs.ID,
		AmountTotal: cs.AmountTotal,
		Currency:    strings.ToLower(string(cs.Currency)),
		Metadata:    cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		session.PaymentIntentID = cs.PaymentIntent.ID
	}
	out.Session = session
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

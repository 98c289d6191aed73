package payment

import (
	"errors"

	"github.com/DhavalSuthar-24/tourney/internal/common"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = common.Invalid("Webhook Error: malformed event payload")
	ErrMissingSignature = common.SignatureFailure(errors.New("missing Stripe-Signature header"))

	// ErrWebhookSecretMissing rejects every delivery when no signing secret is configured.
	ErrWebhookSecretMissing = common.SignatureFailure(errors.New("webhook signing secret is not configured"))
)

// ErrAlreadySettled is returned by Settle when a payment for the session
// already exists.
var ErrAlreadySettled = common.Conflict("Payment already processed")

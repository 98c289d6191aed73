package payment

import (
	"context"
	"fmt"
	"strconv"
)

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"

	MetadataTournamentID = "tournamentId"
	MetadataUserID       = "userId"
)

// CheckoutRequest describes a single-item hosted checkout.
type CheckoutRequest struct {
	TournamentID uint
	UserID       uint
	ProductName  string
	UnitAmount   int64 // minor units
	Currency     string
	SuccessURL   string
	CancelURL    string
}

type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// WebhookEvent is a notification whose signature has been verified.
// Session is set only for checkout.session.completed.
type WebhookEvent struct {
	ID      string
	Type    string
	Payload []byte
	Session *CompletedSession
}

type CompletedSession struct {
	ID              string
	PaymentIntentID string
	AmountTotal     int64 // minor units
	Currency        string
	Metadata        map[string]string
}

// Correlation extracts the (tournament, user) pair embedded at checkout.
func (s *CompletedSession) Correlation() (tournamentID, userID uint, err error) {
	tournamentID, err = metadataID(s.Metadata, MetadataTournamentID)
	if err != nil {
		return 0, 0, err
	}
	userID, err = metadataID(s.Metadata, MetadataUserID)
	if err != nil {
		return 0, 0, err
	}
	return tournamentID, userID, nil
}

func metadataID(md map[string]string, key string) (uint, error) {
	raw, ok := md[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("metadata %s is missing", key)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("metadata %s is not a valid id: %q", key, raw)
	}
	return uint(v), nil
}

// Provider is the payment provider collaborator.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ParseWebhook verifies the signature and decodes the event. It returns a
	// *common.Error of kind Signature or Invalid on failure.
	ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

package testutil

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

// SignPayload builds a Stripe-Signature header for payload signed now.
func SignPayload(secret string, payload []byte) string {
	return SignPayloadAt(secret, payload, time.Now())
}

func SignPayloadAt(secret string, payload []byte, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

// CompletedEvent is the subset of a checkout.session.completed event the
// service reads.
type CompletedEvent struct {
	EventID         string
	SessionID       string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
	Metadata        map[string]string
}

// JSON renders the event the way Stripe delivers it.
func (e CompletedEvent) JSON() []byte {
	session := map[string]interface{}{
		"id":             e.SessionID,
		"object":         "checkout.session",
		"amount_total":   e.AmountTotal,
		"currency":       e.Currency,
		"payment_status": "paid",
		"metadata":       e.Metadata,
	}
	if e.PaymentIntentID != "" {
		session["payment_intent"] = e.PaymentIntentID
	}
	body := map[string]interface{}{
		"id":          e.EventID,
		"object":      "event",
		"api_version": "2023-10-16",
		"type":        "checkout.session.completed",
		"data":        map[string]interface{}{"object": session},
	}
	out, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return out
}

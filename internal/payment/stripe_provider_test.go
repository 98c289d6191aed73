package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/testutil"
)

const webhookSecret = "whsec_test_secret"

func newStripeProvider() *payment.StripeProvider {
	return payment.NewStripeProvider("sk_test_unused", webhookSecret, time.Second)
}

func completedEvent() testutil.CompletedEvent {
	return testutil.CompletedEvent{
		EventID:         "evt_1",
		SessionID:       "cs_test_1",
		PaymentIntentID: "pi_1",
		AmountTotal:     50000,
		Currency:        "INR",
		Metadata:        map[string]string{"tournamentId": "7", "userId": "3"},
	}
}

func TestStripeProvider_ParseWebhook_Completed(t *testing.T) {
	payload := completedEvent().JSON()

	event, err := newStripeProvider().ParseWebhook(payload, testutil.SignPayload(webhookSecret, payload))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, payment.EventCheckoutSessionCompleted, event.Type)
	assert.Equal(t, payload, event.Payload)
	require.NotNil(t, event.Session)
	assert.Equal(t, "cs_test_1", event.Session.ID)
	assert.Equal(t, "pi_1", event.Session.PaymentIntentID)
	assert.Equal(t, int64(50000), event.Session.AmountTotal)
	assert.Equal(t, "inr", event.Session.Currency)

	tournamentID, userID, err := event.Session.Correlation()
	require.NoError(t, err)
	assert.Equal(t, uint(7), tournamentID)
	assert.Equal(t, uint(3), userID)
}

func TestStripeProvider_ParseWebhook_OtherEventType(t *testing.T) {
	payload := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_2","object":"payment_intent"}}}`)

	event, err := newStripeProvider().ParseWebhook(payload, testutil.SignPayload(webhookSecret, payload))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Nil(t, event.Session)
}

func TestStripeProvider_ParseWebhook_Rejections(t *testing.T) {
	payload := completedEvent().JSON()

	tests := []struct {
		name     string
		payload  []byte
		header   string
		wantKind common.Kind
	}{
		{"missing header", payload, "", common.KindSignature},
		{"wrong secret", payload, testutil.SignPayload("whsec_other", payload), common.KindSignature},
		{"tampered body", append([]byte(" "), payload...), testutil.SignPayload(webhookSecret, payload), common.KindSignature},
		{"expired timestamp", payload, testutil.SignPayloadAt(webhookSecret, payload, time.Now().Add(-time.Hour)), common.KindSignature},
		{"garbage header", payload, "not-a-signature", common.KindSignature},
		{"not json", []byte("hello"), testutil.SignPayload(webhookSecret, []byte("hello")), common.KindInvalid},
		{
			"completed without session object",
			[]byte(`{"id":"evt_3","object":"event","type":"checkout.session.completed","data":{"object":{}}}`),
			testutil.SignPayload(webhookSecret, []byte(`{"id":"evt_3","object":"event","type":"checkout.session.completed","data":{"object":{}}}`)),
			common.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := newStripeProvider().ParseWebhook(tt.payload, tt.header)
			require.Error(t, err)
			assert.Nil(t, event)
			assert.Equal(t, tt.wantKind, common.KindOf(err))
		})
	}
}

func TestStripeProvider_InvalidSignatureWrapsSentinel(t *testing.T) {
	payload := completedEvent().JSON()
	_, err := newStripeProvider().ParseWebhook(payload, testutil.SignPayload("whsec_other", payload))
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
	assert.Contains(t, err.Error(), "Webhook Error")
}

func TestStripeProvider_EmptySecretRejectsEveryDelivery(t *testing.T) {
	provider := payment.NewStripeProvider("sk_test_unused", "", time.Second)
	payload := completedEvent().JSON()

	event, err := provider.ParseWebhook(payload, testutil.SignPayload("", payload))
	require.Error(t, err)
	assert.Nil(t, event)
	assert.Equal(t, common.KindSignature, common.KindOf(err))
	assert.ErrorIs(t, err, payment.ErrWebhookSecretMissing)
}

func TestCompletedSession_Correlation(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"no metadata", nil},
		{"missing user", map[string]string{"tournamentId": "1"}},
		{"missing tournament", map[string]string{"userId": "1"}},
		{"non numeric", map[string]string{"tournamentId": "abc", "userId": "1"}},
		{"zero id", map[string]string{"tournamentId": "1", "userId": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &payment.CompletedSession{ID: "cs", Metadata: tt.metadata}
			_, _, err := s.Correlation()
			assert.Error(t, err)
		})
	}
}

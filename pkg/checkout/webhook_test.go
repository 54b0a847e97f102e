package checkout_test

import (
	"testing"

	"github.com/KhuramMirza/e-commerce-backend-api/pkg/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := checkout.SignPayload(payload, "1700000000", secret)

	assert.NoError(t, checkout.VerifySignature(payload, header, secret))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := checkout.SignPayload(payload, "1700000000", "other-secret")

	assert.ErrorIs(t, checkout.VerifySignature(payload, header, secret), checkout.ErrInvalidSignature)
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"amount":100}`)
	header := checkout.SignPayload(payload, "1700000000", secret)

	tampered := []byte(`{"amount":999}`)
	assert.ErrorIs(t, checkout.VerifySignature(tampered, header, secret), checkout.ErrInvalidSignature)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{
		"",
		"t=1700000000",
		"v1=deadbeef",
		"not a signature header",
	} {
		assert.ErrorIs(t, checkout.VerifySignature(payload, header, secret), checkout.ErrInvalidSignature, "header %q", header)
	}
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "client_reference_id": "order-1", "payment_status": "paid"}}
	}`)
	header := checkout.SignPayload(payload, "1700000000", secret)

	event, err := checkout.ConstructEvent(payload, header, secret)
	require.NoError(t, err)
	assert.Equal(t, checkout.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "order-1", event.Data.Object.ClientReferenceID)
}

func TestConstructEvent_RejectsBeforeDecoding(t *testing.T) {
	// Even a well-formed payload is rejected when the signature is bad.
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	_, err := checkout.ConstructEvent(payload, "t=1,v1=00", secret)
	assert.ErrorIs(t, err, checkout.ErrInvalidSignature)

	// A valid signature over garbage still fails, on the decode instead.
	garbage := []byte(`{not json`)
	_, err = checkout.ConstructEvent(garbage, checkout.SignPayload(garbage, "1700000000", secret), secret)
	require.Error(t, err)
	assert.NotErrorIs(t, err, checkout.ErrInvalidSignature)
}

func TestMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		0:     0,
		10:    1000,
		19.99: 1999,
		0.1:   10,
		29.95: 2995,
		1.005: 101,
	}
	for price, want := range cases {
		assert.Equal(t, want, checkout.MinorUnits(price), "price %v", price)
	}
}

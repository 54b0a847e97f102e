package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// EventCheckoutCompleted is sent by the provider when the buyer finishes
// paying for a session.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is a webhook delivery from the provider.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			ClientReferenceID string `json:"client_reference_id"`
			CustomerEmail     string `json:"customer_email"`
			PaymentStatus     string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

// ErrInvalidSignature is returned when a webhook signature does not match
// the shared secret. Deliveries failing verification must not be processed.
var ErrInvalidSignature = fmt.Errorf("webhook signature verification failed")

// SignPayload computes the signature header value for a payload, in the
// provider's "t=<timestamp>,v1=<hex hmac>" format. The signed content is
// "<timestamp>.<payload>". Used by the provider and by tests.
func SignPayload(payload []byte, timestamp string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// VerifySignature checks a webhook delivery's signature header against the
// shared secret. The raw request body must be passed unmodified.
func VerifySignature(payload []byte, header string, secret string) error {
	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signature = kv[1]
		}
	}
	if timestamp == "" || signature == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// ConstructEvent verifies the delivery's signature and, only then, decodes
// the payload into an Event.
func ConstructEvent(payload []byte, header string, secret string) (*Event, error) {
	if err := VerifySignature(payload, header, secret); err != nil {
		return nil, err
	}
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	return &event, nil
}

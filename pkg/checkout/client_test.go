package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KhuramMirza/e-commerce-backend-api/pkg/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateSession(t *testing.T) {
	var got checkout.SessionRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(checkout.Session{
			ID:  "cs_test_123",
			URL: "https://pay.example.com/cs_test_123",
		})
	}))
	defer server.Close()

	client := checkout.NewClient(checkout.Config{
		APIURL:     server.URL,
		APIKey:     "sk_test_key",
		SuccessURL: "https://shop.example.com/success",
		CancelURL:  "https://shop.example.com/cancel",
	})

	session, err := client.CreateSession(checkout.SessionRequest{
		Mode:               "payment",
		PaymentMethodTypes: []string{"card"},
		ClientReferenceID:  "order-1",
		CustomerEmail:      "buyer@example.com",
		LineItems: []checkout.LineItem{
			{Name: "Product A", UnitAmount: 1999, Currency: "usd", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_test_123", session.URL)

	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "order-1", got.ClientReferenceID)

	// Redirect URLs fall back to the configured defaults.
	assert.Equal(t, "https://shop.example.com/success", got.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cancel", got.CancelURL)
}

func TestClient_CreateSession_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error": {"message": "your card was declined"}}`))
	}))
	defer server.Close()

	client := checkout.NewClient(checkout.Config{APIURL: server.URL, APIKey: "sk_test_key"})

	_, err := client.CreateSession(checkout.SessionRequest{Mode: "payment"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "your card was declined")
}

func TestClient_CreateSession_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_123"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(checkout.Config{APIURL: server.URL, APIKey: "sk_test_key"})

	_, err := client.CreateSession(checkout.SessionRequest{Mode: "payment"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing redirect URL")
}

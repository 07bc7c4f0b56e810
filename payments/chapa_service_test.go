package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction_Success(t *testing.T) {
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer test-secret", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://pay.example/abc","tx_ref":"booking-42-ref"}}`))
	}))
	defer server.Close()

	svc := NewChapaService(server.URL, "test-secret")

	result, err := svc.InitializeTransaction(100.00, "guest@example.com", "Guest", "User", "booking-42-ref", "https://cb.example", "https://ret.example")
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "https://pay.example/abc", result.Data.CheckoutURL)
	assert.Equal(t, "booking-42-ref", result.Reference())
	assert.NotEmpty(t, result.Raw)

	assert.Equal(t, "100.00", gotPayload["amount"])
	assert.Equal(t, "ETB", gotPayload["currency"])
	assert.Equal(t, "booking-42-ref", gotPayload["tx_ref"])
	assert.Equal(t, "guest@example.com", gotPayload["email"])
	assert.Equal(t, "https://cb.example", gotPayload["callback_url"])
	assert.Equal(t, "https://ret.example", gotPayload["return_url"])

	customization, ok := gotPayload["customization"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Booking Payment", customization["title"])
}

func TestInitializeTransaction_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"failed","message":"Invalid API key"}`))
	}))
	defer server.Close()

	svc := NewChapaService(server.URL, "bad-secret")

	result, err := svc.InitializeTransaction(50, "a@b.com", "A", "B", "ref", "cb", "ret")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestInitializeTransaction_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewChapaService(server.URL, "test-secret")

	result, err := svc.InitializeTransaction(50, "a@b.com", "A", "B", "ref", "cb", "ret")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestVerifyTransaction_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/booking-42-ref", r.URL.Path)
		assert.Equal(t, "Bearer test-secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{"reference":"chapa-001","status":"success"}}`))
	}))
	defer server.Close()

	svc := NewChapaService(server.URL, "test-secret")

	result, err := svc.VerifyTransaction("booking-42-ref")
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "success", result.Data.Status)
	assert.Equal(t, "chapa-001", result.Reference())
}

func TestReference_PrefersTxRef(t *testing.T) {
	result := &ChapaResult{Data: ChapaData{TxRef: "booking-1-abc", Reference: "chapa-001"}}
	assert.Equal(t, "booking-1-abc", result.Reference())

	result = &ChapaResult{Data: ChapaData{Reference: "chapa-001"}}
	assert.Equal(t, "chapa-001", result.Reference())
}

func TestNewChapaService_DefaultBaseURL(t *testing.T) {
	svc := NewChapaService("", "key")
	assert.Equal(t, defaultBaseURL, svc.BaseURL)
}

package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.chapa.co/v1"

// Currency is the only currency Chapa settles in for this integration.
const Currency = "ETB"

type ChapaService struct {
	BaseURL   string
	SecretKey string

	client *http.Client
}

func NewChapaService(baseURL, secretKey string) *ChapaService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &ChapaService{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type initializeRequest struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization customization `json:"customization"`
}

type customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ChapaData struct {
	TxRef       string `json:"tx_ref"`
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// ChapaResult is the normalized gateway reply. Raw carries the untouched
// response body so callers can archive exactly what Chapa said.
type ChapaResult struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    ChapaData `json:"data"`

	Raw json.RawMessage `json:"-"`
}

// Reference returns the provider-assigned reference, accepting either the
// tx_ref or reference field and preferring tx_ref.
func (r *ChapaResult) Reference() string {
	if r.Data.TxRef != "" {
		return r.Data.TxRef
	}
	return r.Data.Reference
}

// InitializeTransaction starts a checkout session with Chapa. The txRef is our
// idempotency key; Chapa echoes it back on verification.
func (s *ChapaService) InitializeTransaction(amount float64, email, firstName, lastName, txRef, callbackURL, returnURL string) (*ChapaResult, error) {
	payload := initializeRequest{
		Amount:      strconv.FormatFloat(amount, 'f', 2, 64),
		Currency:    Currency,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		TxRef:       txRef,
		CallbackURL: callbackURL,
		ReturnURL:   returnURL,
		Customization: customization{
			Title:       "Booking Payment",
			Description: "Payment for your booking",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize payload: %v", err)
	}

	req, err := http.NewRequest("POST", s.BaseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create initialize request: %v", err)
	}

	return s.do(req)
}

// VerifyTransaction fetches the current status of a transaction from Chapa.
func (s *ChapaService) VerifyTransaction(txRef string) (*ChapaResult, error) {
	req, err := http.NewRequest("GET", s.BaseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %v", err)
	}

	return s.do(req)
}

func (s *ChapaService) do(req *http.Request) (*ChapaResult, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Chapa: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Chapa response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Chapa API error: status %d, body: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("Chapa API returned non-2xx status: %d", resp.StatusCode)
	}

	var result ChapaResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Chapa response: %v", err)
	}
	result.Raw = respBody

	return &result, nil
}

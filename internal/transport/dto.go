package transport

// mockPaymentRequest is the mock card form's callback body.
type mockPaymentRequest struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

const (
	mockPaymentSucceeded = "succeeded"
	mockPaymentFailed    = "failed"
)

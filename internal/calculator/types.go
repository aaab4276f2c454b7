package calculator

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys and
// POST /calculator/evaluate.
type KeysRequest struct {
	Keys []string `json:"keys"` // keypad labels, e.g. "7", "÷", "=", "AC"
}

// SessionResponse is the JSON response for the session endpoints.
type SessionResponse struct {
	ID   string `json:"id"`
	View View   `json:"view"`
}

// Step records the display after one replayed key.
type Step struct {
	Key     string `json:"key"`
	Raw     string `json:"raw"`
	Display string `json:"display"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Keys  []string `json:"keys"`
	Steps []Step   `json:"steps"`
	View  View     `json:"view"`
}

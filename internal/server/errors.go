package server

// ErrorBody is the JSON shape of every error response: a short label and
// an optional longer details string from the underlying error. Stack
// traces and partial success payloads are never returned.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

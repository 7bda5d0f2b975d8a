package dto

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries an informational message, used for not-found replies.
type MessageResponse struct {
	Message string `json:"message"`
}

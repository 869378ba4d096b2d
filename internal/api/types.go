// Package api holds the response envelopes shared by every feature's handlers.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

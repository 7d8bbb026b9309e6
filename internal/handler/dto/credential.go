// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/credvault/credvault/internal/credential"

// RegisterCredentialRequest represents the request body for registering a credential.
type RegisterCredentialRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LookupCredentialRequest represents the request body for looking up a credential.
type LookupCredentialRequest struct {
	Email string `json:"email"`
}

// CredentialResponse represents a redacted credential in API responses.
type CredentialResponse struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToCredentialResponse converts a credential View to CredentialResponse DTO.
func ToCredentialResponse(view *credential.View) *CredentialResponse {
	return &CredentialResponse{
		Email:  view.Email,
		Secret: view.Secret,
	}
}

// ToErrorResponse converts a classified error to ErrorResponse DTO.
func ToErrorResponse(err *credential.Error) *ErrorResponse {
	return &ErrorResponse{
		Error:   err.Kind.Code(),
		Message: err.Message,
		Details: err.Details,
	}
}

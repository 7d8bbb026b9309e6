package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/credvault/credvault/internal/credential"
	"github.com/credvault/credvault/internal/handler/dto"
)

// CredentialService is the subset of credential.Service used by CredentialHandler.
type CredentialService interface {
	Register(ctx context.Context, req credential.RegistrationRequest) (*credential.View, error)
	Lookup(ctx context.Context, email string) (*credential.View, error)
}

// CredentialHandler handles HTTP requests for credential operations.
type CredentialHandler struct {
	svc    CredentialService
	logger *slog.Logger
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(svc CredentialService, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/v1/credentials.
func (h *CredentialHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, credential.Validation("Invalid request body"))
		return
	}

	view, err := h.svc.Register(r.Context(), credential.RegistrationRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToCredentialResponse(view))
}

// Lookup handles POST /api/v1/credentials/lookup.
func (h *CredentialHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req dto.LookupCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, credential.Validation("Invalid request body"))
		return
	}

	view, err := h.svc.Lookup(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCredentialResponse(view))
}

// writeError maps a service error to its HTTP response.
// Causes of server-side failures are logged, never returned.
func (h *CredentialHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	cerr := credential.Classify(err)
	status := statusForKind(cerr.Kind)

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "internal_error",
			slog.String("code", cerr.Kind.Code()),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, status, dto.ToErrorResponse(cerr))
}

// statusForKind returns the HTTP status for an error kind.
func statusForKind(kind credential.Kind) int {
	switch kind {
	case credential.KindValidation, credential.KindInvalidEmail:
		return http.StatusBadRequest
	case credential.KindNotFound:
		return http.StatusNotFound
	case credential.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

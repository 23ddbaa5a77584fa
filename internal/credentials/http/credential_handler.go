// Package http provides HTTP handlers for credential listing, creation, reveal and update.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/credentials/http/dto"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
	"github.com/allisson/credvault/internal/httputil"
)

// CredentialHandler serves the credential endpoints.
type CredentialHandler struct {
	credentialUseCase credentialsUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(
	useCase credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{credentialUseCase: useCase, logger: logger}
}

// ListHandler lists the credentials of a division without passwords.
// GET /api/credentials/divisions/:divisionId/credentials
// GET /api/divisions/:divisionId/credentials
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	divisionID, err := authz.ParseRef(c.Param("divisionId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	credentials, err := h.credentialUseCase.List(c.Request.Context(), snapshot, divisionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapCredentialsToSummaryResponse(credentials))
}

// CreateHandler stores a credential under a division.
// POST /api/credentials/divisions/:divisionId/credentials - Returns 201 Created.
// POST /api/divisions/:divisionId/credentials
func (h *CredentialHandler) CreateHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	divisionID, err := authz.ParseRef(c.Param("divisionId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Create(c.Request.Context(), snapshot, divisionID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}

// RevealHandler returns one credential including its password.
// GET /api/credentials/:credentialId
func (h *CredentialHandler) RevealHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	credentialID, err := authz.ParseRef(c.Param("credentialId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Reveal(c.Request.Context(), snapshot, credentialID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// UpdateHandler replaces all four fields of a credential.
// PUT /api/credentials/:credentialId
func (h *CredentialHandler) UpdateHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	credentialID, err := authz.ParseRef(c.Param("credentialId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Update(c.Request.Context(), snapshot, credentialID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

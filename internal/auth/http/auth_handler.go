package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/httputil"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// AuthHandler serves registration, login, token refresh and password change.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase, logger: logger}
}

// RegisterHandler creates a normal user and returns a token for it.
// POST /api/auth/register - Returns 201 Created with {token, role}.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input, err := req.ToDomain()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenOutputToResponse(output))
}

// LoginHandler exchanges credentials for a token.
// POST /api/auth/login - Returns 200 OK with {token, role}.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenOutputToResponse(output))
}

// RefreshHandler re-issues a token from the caller's current record.
// POST /api/auth/refresh - Requires authentication. Returns 200 OK with {token, role}.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	snapshot, _ := GetSnapshot(c.Request.Context())

	output, err := h.authUseCase.Refresh(c.Request.Context(), snapshot)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenOutputToResponse(output))
}

// ChangePasswordHandler replaces the caller's password.
// PUT /api/users/me/password - Requires authentication. Returns 204 No Content.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	snapshot, ok := GetSnapshot(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authz.ErrMissingSnapshot, h.logger)
		return
	}

	err := h.authUseCase.ChangePassword(c.Request.Context(), snapshot, &authDomain.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

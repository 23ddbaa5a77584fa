// Package http provides HTTP handlers for user listing and the admin assignment endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/httputil"
	"github.com/allisson/credvault/internal/user/http/dto"
	userUseCase "github.com/allisson/credvault/internal/user/usecase"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(useCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: useCase, logger: logger}
}

// MeHandler returns the role and memberships carried by the caller's token.
// GET /api/users/me
func (h *UserHandler) MeHandler(c *gin.Context) {
	snapshot, ok := authHTTP.GetSnapshot(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authz.ErrMissingSnapshot, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapSnapshotToMeResponse(snapshot))
}

// ListHandler lists every user.
// GET /api/users - admin only.
func (h *UserHandler) ListHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	users, err := h.userUseCase.List(c.Request.Context(), snapshot)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapUsersToResponse(users))
}

// AssignHandler adds and removes OU and division memberships.
// POST /api/users/:userId/assign - admin only. Returns {message, user, token}.
func (h *UserHandler) AssignHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())
	if err := authz.Authorize(snapshot, authz.ActionAssignMembership, authz.Resource{}); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	userID, err := authz.ParseRef(c.Param("userId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	change, err := req.ToDomain()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	result, err := h.userUseCase.Assign(c.Request.Context(), snapshot, userID, change)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapAssignmentResultToResponse("User updated successfully", result))
}

// ChangeRoleHandler sets the role of a user.
// PUT /api/users/:userId/role - admin only. Returns {message, user, token}.
func (h *UserHandler) ChangeRoleHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())
	if err := authz.Authorize(snapshot, authz.ActionChangeRole, authz.Resource{}); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	userID, err := authz.ParseRef(c.Param("userId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	result, err := h.userUseCase.ChangeRole(c.Request.Context(), snapshot, userID, role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapAssignmentResultToResponse("Role updated successfully", result))
}

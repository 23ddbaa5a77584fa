// Package http provides HTTP handlers for listing OUs and divisions.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/hierarchy/http/dto"
	hierarchyUseCase "github.com/allisson/credvault/internal/hierarchy/usecase"
	"github.com/allisson/credvault/internal/httputil"
)

// HierarchyHandler serves the OU and division listings.
type HierarchyHandler struct {
	hierarchyUseCase hierarchyUseCase.HierarchyUseCase
	logger           *slog.Logger
}

// NewHierarchyHandler creates a new hierarchy handler.
func NewHierarchyHandler(useCase hierarchyUseCase.HierarchyUseCase, logger *slog.Logger) *HierarchyHandler {
	return &HierarchyHandler{hierarchyUseCase: useCase, logger: logger}
}

// ListPublicOUsHandler lists OUs for the registration form.
// GET /api/users/ous/public - no authentication.
func (h *HierarchyHandler) ListPublicOUsHandler(c *gin.Context) {
	ous, err := h.hierarchyUseCase.ListOUs(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapOUsToPublicResponse(ous))
}

// ListPublicDivisionsHandler lists the divisions of an OU for the registration form.
// GET /api/users/ous/:ouId/divisions/public - no authentication.
func (h *HierarchyHandler) ListPublicDivisionsHandler(c *gin.Context) {
	ouID, err := authz.ParseRef(c.Param("ouId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	divisions, err := h.hierarchyUseCase.ListPublicDivisionsByOU(c.Request.Context(), ouID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapDivisionsToPublicResponse(divisions))
}

// ListOUsHandler lists OUs with their descriptions.
// GET /api/users/ous/all
func (h *HierarchyHandler) ListOUsHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())
	if err := authz.Authorize(snapshot, authz.ActionListOUs, authz.Resource{}); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	ous, err := h.hierarchyUseCase.ListOUs(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapOUsToResponse(ous))
}

// ListDivisionsByOUHandler lists the divisions of one OU visible to the caller.
// GET /api/users/ous/:ouId/divisions
func (h *HierarchyHandler) ListDivisionsByOUHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	ouID, err := authz.ParseRef(c.Param("ouId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	divisions, err := h.hierarchyUseCase.ListDivisionsByOU(c.Request.Context(), snapshot, ouID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapDivisionsToResponse(divisions))
}

// ListDivisionsHandler lists every division visible to the caller.
// GET /api/users/divisions/all
func (h *HierarchyHandler) ListDivisionsHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	divisions, err := h.hierarchyUseCase.ListDivisions(c.Request.Context(), snapshot)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapDivisionsToResponse(divisions))
}

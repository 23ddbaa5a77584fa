// Package http serves the audit trail over HTTP.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credvault/internal/audit/http/dto"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/httputil"
)

// AuditLogHandler serves the audit trail.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler.
func NewAuditLogHandler(auditLogUseCase auditUseCase.AuditLogUseCase, logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{auditLogUseCase: auditLogUseCase, logger: logger}
}

// ListHandler lists audit entries newest first.
// GET /api/audit-logs?offset=0&limit=50 - admin only.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	snapshot, _ := authHTTP.GetSnapshot(c.Request.Context())

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	auditLogs, err := h.auditLogUseCase.List(c.Request.Context(), snapshot, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(auditLogs))
}

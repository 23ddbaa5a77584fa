package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/audit/usecase/mocks"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/authz"
)

func setupTestHandler(t *testing.T) (*AuditLogHandler, *mocks.MockAuditLogUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uc := &mocks.MockAuditLogUseCase{}
	return NewAuditLogHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil))), uc
}

func newListContext(url string, snapshot *authz.Snapshot) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	if snapshot != nil {
		c.Request = c.Request.WithContext(authHTTP.WithSnapshot(c.Request.Context(), snapshot))
	}
	return c, w
}

func TestAuditLogHandler_ListHandler(t *testing.T) {
	admin := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := newListContext("/api/audit-logs?offset=5&limit=10", admin)

		uc.On("List", mock.Anything, admin, 5, 10).
			Return([]*auditDomain.AuditLog{{ID: uuid.New(), Action: auditDomain.ActionUserAssign}}, nil).
			Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"user.assign"`)
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := newListContext("/api/audit-logs?limit=500", admin)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_Forbidden", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		normal := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal}
		c, w := newListContext("/api/audit-logs", normal)

		uc.On("List", mock.Anything, normal, 0, 50).Return(nil, authz.ErrAdminRequired).Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := newListContext("/api/audit-logs", admin)

		uc.On("List", mock.Anything, admin, 0, 50).Return(nil, errors.New("db down")).Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

package http

import (
	"bytes"
	"encoding/json"
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
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/credentials/usecase/mocks"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

func setupTestHandler(t *testing.T) (*CredentialHandler, *mocks.MockCredentialUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uc := &mocks.MockCredentialUseCase{}
	return NewCredentialHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil))), uc
}

func createTestContext(
	method string,
	body any,
	params gin.Params,
	snapshot *authz.Snapshot,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if snapshot != nil {
		c.Request = c.Request.WithContext(authHTTP.WithSnapshot(c.Request.Context(), snapshot))
	}
	return c, w
}

var credentialBody = map[string]string{
	"title":    "Production DB",
	"username": "postgres",
	"password": "s3cr3t",
	"url":      "postgres://db.internal",
}

func TestCredentialHandler_ListHandler(t *testing.T) {
	snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal}
	divisionID := uuid.New()
	params := gin.Params{{Key: "divisionId", Value: divisionID.String()}}

	t.Run("Success_NoPasswords", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, params, snapshot)

		uc.On("List", mock.Anything, snapshot, divisionID).
			Return([]*credentialsDomain.Credential{{ID: uuid.New(), Title: "VPN", Password: "x"}}, nil).
			Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"VPN"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Error_Forbidden", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, params, snapshot)

		uc.On("List", mock.Anything, snapshot, divisionID).Return(nil, authz.ErrNotAssignedToDivision).Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Access denied: not assigned to this division"}`, w.Body.String())
	})

	t.Run("Error_DivisionNotFound", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, params, snapshot)

		uc.On("List", mock.Anything, snapshot, divisionID).Return(nil, hierarchyDomain.ErrDivisionNotFound).Once()

		handler.ListHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Division not found"}`, w.Body.String())
	})

	t.Run("Error_MalformedDivisionID", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, gin.Params{{Key: "divisionId", Value: "abc"}}, snapshot)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCredentialHandler_CreateHandler(t *testing.T) {
	snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}
	divisionID := uuid.New()
	params := gin.Params{{Key: "divisionId", Value: divisionID.String()}}

	t.Run("Success", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodPost, credentialBody, params, snapshot)

		uc.On("Create", mock.Anything, snapshot, divisionID, &credentialsDomain.CredentialInput{
			Title:    "Production DB",
			Username: "postgres",
			Password: "s3cr3t",
			URL:      "postgres://db.internal",
		}).Return(&credentialsDomain.Credential{
			ID:         uuid.New(),
			DivisionID: divisionID,
			Title:      "Production DB",
			Password:   "s3cr3t",
		}, nil).Once()

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, divisionID.String(), body["division"])
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodPost, "{", params, snapshot)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodPost, map[string]string{"title": "x"}, params, snapshot)

		uc.On("Create", mock.Anything, snapshot, divisionID, mock.Anything).
			Return(nil, credentialsDomain.ErrAllFieldsRequired).
			Once()

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"All fields are required"}`, w.Body.String())
	})
}

func TestCredentialHandler_RevealHandler(t *testing.T) {
	snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}
	credentialID := uuid.New()
	params := gin.Params{{Key: "credentialId", Value: credentialID.String()}}

	t.Run("Success_IncludesPassword", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, params, snapshot)

		uc.On("Reveal", mock.Anything, snapshot, credentialID).
			Return(&credentialsDomain.Credential{ID: credentialID, Password: "hunter2"}, nil).
			Once()

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"password":"hunter2"`)
	})

	t.Run("Error_DecryptionFailureIsOpaque", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		c, w := createTestContext(http.MethodGet, nil, params, snapshot)

		uc.On("Reveal", mock.Anything, snapshot, credentialID).Return(nil, errors.New("decryption failed")).Once()

		handler.RevealHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestCredentialHandler_UpdateHandler(t *testing.T) {
	credentialID := uuid.New()
	params := gin.Params{{Key: "credentialId", Value: credentialID.String()}}

	t.Run("Success", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleManagement}
		c, w := createTestContext(http.MethodPut, credentialBody, params, snapshot)

		uc.On("Update", mock.Anything, snapshot, credentialID, mock.AnythingOfType("*domain.CredentialInput")).
			Return(&credentialsDomain.Credential{ID: credentialID, Title: "Production DB"}, nil).
			Once()

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NormalRole", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal}
		c, w := createTestContext(http.MethodPut, credentialBody, params, snapshot)

		uc.On("Update", mock.Anything, snapshot, credentialID, mock.Anything).
			Return(nil, authz.ErrUpdateNotPermitted).
			Once()

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, uc := setupTestHandler(t)
		snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}
		c, w := createTestContext(http.MethodPut, credentialBody, params, snapshot)

		uc.On("Update", mock.Anything, snapshot, credentialID, mock.Anything).
			Return(nil, credentialsDomain.ErrCredentialNotFound).
			Once()

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Credential not found"}`, w.Body.String())
	})
}

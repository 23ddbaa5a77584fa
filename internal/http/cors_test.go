package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty", value: "", want: nil},
		{name: "blank", value: "  ", want: nil},
		{name: "single", value: "https://vault.cooltech.com", want: []string{"https://vault.cooltech.com"}},
		{
			name:  "trims and drops blanks",
			value: " https://vault.cooltech.com , ,http://localhost:5173 ",
			want:  []string{"https://vault.cooltech.com", "http://localhost:5173"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.value))
		})
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Nil(t, createCORSMiddleware(false, "https://vault.cooltech.com", logger), "disabled")
	assert.Nil(t, createCORSMiddleware(true, " , ", logger), "no origins")

	middleware := createCORSMiddleware(true, "https://vault.cooltech.com", logger)
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.PUT("/api/users/divisions/:divisionId/credentials/:credentialId", func(c *gin.Context) {
		c.Header("Retry-After", "1")
		c.Status(http.StatusOK)
	})
	const path = "/api/users/divisions/d/credentials/c"

	t.Run("preflight-allows-bearer-token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://vault.cooltech.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://vault.cooltech.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("simple-request-exposes-headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, path, nil)
		req.Header.Set("Origin", "https://vault.cooltech.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})

	t.Run("foreign-origin-rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, path, nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

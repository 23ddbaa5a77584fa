package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (int, int, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/audit-logs"+query, nil)
		return httputil.ParsePagination(c)
	}

	t.Run("valid", func(t *testing.T) {
		cases := map[string][2]int{
			"":                     {0, httputil.DefaultLimit},
			"?offset=10&limit=20":  {10, 20},
			"?offset=200":          {200, httputil.DefaultLimit},
			"?limit=100":           {0, httputil.MaxLimit},
			"?limit=1&unrelated=x": {0, 1},
		}
		for query, want := range cases {
			offset, limit, err := parse(query)
			require.NoError(t, err, query)
			assert.Equal(t, want[0], offset, query)
			assert.Equal(t, want[1], limit, query)
		}
	})

	t.Run("invalid-offset", func(t *testing.T) {
		for _, query := range []string{"?offset=-1", "?offset=abc", "?offset="} {
			offset, limit, err := parse(query)
			assert.ErrorIs(t, err, httputil.ErrInvalidOffset, query)
			assert.Zero(t, offset)
			assert.Zero(t, limit)
		}
	})

	t.Run("invalid-limit", func(t *testing.T) {
		for _, query := range []string{"?limit=0", "?limit=101", "?limit=xyz"} {
			_, _, err := parse(query)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput, query)
			assert.Equal(t,
				"invalid limit parameter: must be between 1 and 100",
				apperrors.PublicMessage(err, apperrors.ErrInvalidInput),
			)
		}
	})
}

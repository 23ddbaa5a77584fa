package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credvault/internal/errors"
)

const (
	// DefaultLimit is the page size used when the limit query parameter is absent.
	DefaultLimit = 50
	// MaxLimit is the largest accepted page size.
	MaxLimit = 100
)

// Pagination errors.
var (
	ErrInvalidOffset = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"invalid offset parameter: must be a non-negative integer",
	)
	ErrInvalidLimit = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"invalid limit parameter: must be between 1 and 100",
	)
)

// ParsePagination parses the offset and limit query parameters, applying
// DefaultLimit and MaxLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, ErrInvalidOffset
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, ErrInvalidLimit
	}

	return offset, limit, nil
}

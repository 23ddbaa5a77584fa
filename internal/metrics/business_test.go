package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// assertMetricLine checks that the Prometheus output contains a metric matching
// the given name, partial label pattern and value. Extra OTel scope labels are
// tolerated.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, StatusSuccess},
		{apperrors.Wrap(apperrors.ErrForbidden, "Access denied"), StatusDenied},
		{apperrors.ErrUnauthorized, StatusDenied},
		{fmt.Errorf("get: %w", apperrors.ErrNotFound), StatusNotFound},
		{apperrors.ErrInvalidInput, StatusInvalid},
		{apperrors.ErrConflict, StatusInvalid},
		{errors.New("boom"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFromError(tt.err))
		})
	}
}

func TestBusinessMetrics_Observe(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	Observe(ctx, bm, "credentials", "list", start, nil)
	Observe(ctx, bm, "credentials", "list", start, nil)
	Observe(ctx, bm, "credentials", "list", start, apperrors.ErrForbidden)

	output := scrape(t, provider)
	assertMetricLine(t, output, "test_app_operations_total",
		`domain="credentials".*operation="list".*status="success"`, "2")
	assertMetricLine(t, output, "test_app_operations_total",
		`domain="credentials".*operation="list".*status="denied"`, "1")
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		Observe(context.Background(), bm, "auth", "login", time.Now(), nil)
	})
}

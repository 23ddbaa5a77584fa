// Package mocks provides a mock BusinessMetrics for decorator tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// ExpectOperation registers both the counter and the histogram call for one operation.
func (m *MockBusinessMetrics) ExpectOperation(domain, operation, status string) {
	m.On("RecordOperation", mock.Anything, domain, operation, status).Return().Once()
	m.On("RecordDuration", mock.Anything, domain, operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

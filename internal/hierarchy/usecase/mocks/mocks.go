// Package mocks provides mock implementations of the hierarchy repositories and use case.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/credvault/internal/authz"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// MockOURepository is a mock implementation of OURepository.
type MockOURepository struct {
	mock.Mock
}

func (m *MockOURepository) Create(ctx context.Context, ou *hierarchyDomain.OU) error {
	args := m.Called(ctx, ou)
	return args.Error(0)
}

func (m *MockOURepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.OU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.OU), args.Error(1)
}

func (m *MockOURepository) GetByName(ctx context.Context, name string) (*hierarchyDomain.OU, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.OU), args.Error(1)
}

func (m *MockOURepository) List(ctx context.Context) ([]*hierarchyDomain.OU, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.OU), args.Error(1)
}

func (m *MockOURepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// MockDivisionRepository is a mock implementation of DivisionRepository.
type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) Create(ctx context.Context, division *hierarchyDomain.Division) error {
	args := m.Called(ctx, division)
	return args.Error(0)
}

func (m *MockDivisionRepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

func (m *MockDivisionRepository) GetByName(
	ctx context.Context,
	ouID uuid.UUID,
	name string,
) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, ouID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

func (m *MockDivisionRepository) List(ctx context.Context) ([]*hierarchyDomain.Division, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.Division), args.Error(1)
}

func (m *MockDivisionRepository) ListByOU(
	ctx context.Context,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	args := m.Called(ctx, ouID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.Division), args.Error(1)
}

func (m *MockDivisionRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// MockHierarchyUseCase is a mock implementation of HierarchyUseCase.
type MockHierarchyUseCase struct {
	mock.Mock
}

func (m *MockHierarchyUseCase) ListOUs(ctx context.Context) ([]*hierarchyDomain.OU, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.OU), args.Error(1)
}

func (m *MockHierarchyUseCase) ListPublicDivisionsByOU(
	ctx context.Context,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	args := m.Called(ctx, ouID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.Division), args.Error(1)
}

func (m *MockHierarchyUseCase) ListDivisionsByOU(
	ctx context.Context,
	snapshot *authz.Snapshot,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	args := m.Called(ctx, snapshot, ouID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.Division), args.Error(1)
}

func (m *MockHierarchyUseCase) ListDivisions(
	ctx context.Context,
	snapshot *authz.Snapshot,
) ([]*hierarchyDomain.Division, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchyDomain.Division), args.Error(1)
}

func (m *MockHierarchyUseCase) GetDivision(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

func (m *MockHierarchyUseCase) EnsureOUsExist(ctx context.Context, ids authz.RefSet) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockHierarchyUseCase) EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockHierarchyUseCase) CreateOU(ctx context.Context, name, description string) (*hierarchyDomain.OU, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.OU), args.Error(1)
}

func (m *MockHierarchyUseCase) CreateDivision(
	ctx context.Context,
	ouID uuid.UUID,
	name, description string,
) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, ouID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

func (m *MockHierarchyUseCase) GetOrCreateOU(
	ctx context.Context,
	name, description string,
) (*hierarchyDomain.OU, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.OU), args.Error(1)
}

func (m *MockHierarchyUseCase) GetOrCreateDivision(
	ctx context.Context,
	ouID uuid.UUID,
	name, description string,
) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, ouID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

// Package mocks provides mock implementations of the user use case and its dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*userDomain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) AddMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	args := m.Called(ctx, userID, ous, divisions)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	args := m.Called(ctx, userID, ous, divisions)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	role authz.Role,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, userID, role, updatedAt)
	return args.Error(0)
}

// MockHierarchyChecker is a mock implementation of usecase.HierarchyChecker.
type MockHierarchyChecker struct {
	mock.Mock
}

func (m *MockHierarchyChecker) EnsureOUsExist(ctx context.Context, ids authz.RefSet) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockHierarchyChecker) EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of usecase.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(snapshot *authz.Snapshot) (string, time.Time, error) {
	args := m.Called(snapshot)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockRevocationRepository is a mock implementation of usecase.RevocationRepository.
type MockRevocationRepository struct {
	mock.Mock
}

func (m *MockRevocationRepository) Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// MockUserUseCase is a mock implementation of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(ctx context.Context, snapshot *authz.Snapshot) ([]*userDomain.User, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) Assign(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	change userDomain.MembershipChange,
) (*userDomain.AssignmentResult, error) {
	args := m.Called(ctx, snapshot, userID, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.AssignmentResult), args.Error(1)
}

func (m *MockUserUseCase) ChangeRole(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	role authz.Role,
) (*userDomain.AssignmentResult, error) {
	args := m.Called(ctx, snapshot, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.AssignmentResult), args.Error(1)
}

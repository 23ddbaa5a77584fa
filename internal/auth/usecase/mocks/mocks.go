// Package mocks provides mock implementations of the authentication dependencies and use case.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(
	ctx context.Context,
	userID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, userID, passwordHash, updatedAt)
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

// MockRevocationRepository is a mock implementation of usecase.RevocationRepository.
type MockRevocationRepository struct {
	mock.Mock
}

func (m *MockRevocationRepository) Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockRevocationRepository) RevokedSince(
	ctx context.Context,
	userID uuid.UUID,
) (time.Time, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(snapshot *authz.Snapshot) (string, time.Time, error) {
	args := m.Called(snapshot)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Parse(token string) (*authz.Snapshot, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Snapshot), args.Error(1)
}

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.TokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenOutput), args.Error(1)
}

func (m *MockAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenOutput), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, snapshot *authz.Snapshot) (*authDomain.TokenOutput, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenOutput), args.Error(1)
}

func (m *MockAuthUseCase) ChangePassword(
	ctx context.Context,
	snapshot *authz.Snapshot,
	input *authDomain.ChangePasswordInput,
) error {
	args := m.Called(ctx, snapshot, input)
	return args.Error(0)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*authz.Snapshot, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Snapshot), args.Error(1)
}

// Package mocks provides mock implementations of the credential use case and its dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// MockCredentialRepository is a mock implementation of usecase.CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *MockCredentialRepository) Get(ctx context.Context, id uuid.UUID) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) ListByDivision(
	ctx context.Context,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Update(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// MockDivisionReader is a mock implementation of usecase.DivisionReader.
type MockDivisionReader struct {
	mock.Mock
}

func (m *MockDivisionReader) GetDivision(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchyDomain.Division), args.Error(1)
}

// MockSealer is a mock implementation of the crypto Sealer.
type MockSealer struct {
	mock.Mock
}

func (m *MockSealer) Seal(plaintext, aad []byte) (*cryptoDomain.SealedValue, error) {
	args := m.Called(plaintext, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.SealedValue), args.Error(1)
}

func (m *MockSealer) Open(value *cryptoDomain.SealedValue, aad []byte) ([]byte, error) {
	args := m.Called(value, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCredentialUseCase is a mock implementation of usecase.CredentialUseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

func (m *MockCredentialUseCase) List(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, snapshot, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialUseCase) Create(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, snapshot, divisionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialUseCase) Reveal(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, snapshot, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

func (m *MockCredentialUseCase) Update(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, snapshot, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

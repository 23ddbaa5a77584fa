package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditMocks "github.com/allisson/credvault/internal/audit/usecase/mocks"
	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/credentials/usecase"
	"github.com/allisson/credvault/internal/credentials/usecase/mocks"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
	databaseMocks "github.com/allisson/credvault/internal/database/mocks"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

type credentialFixture struct {
	txManager *databaseMocks.MockTxManager
	repo      *mocks.MockCredentialRepository
	divisions *mocks.MockDivisionReader
	audit     *auditMocks.MockAuditLogUseCase
	sealer    cryptoService.Sealer
	useCase   usecase.CredentialUseCase
}

func newSealer(t *testing.T) cryptoService.Sealer {
	t.Helper()
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	chain, err := cryptoDomain.ParseMasterKeyChain(context.Background(), "k1:"+key, "k1", nil)
	require.NoError(t, err)
	t.Cleanup(chain.Close)
	return cryptoService.NewMasterKeySealer(chain, cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
}

func newCredentialFixture(t *testing.T, sealer cryptoService.Sealer) *credentialFixture {
	t.Helper()
	if sealer == nil {
		sealer = newSealer(t)
	}
	f := &credentialFixture{
		txManager: &databaseMocks.MockTxManager{},
		repo:      &mocks.MockCredentialRepository{},
		divisions: &mocks.MockDivisionReader{},
		audit:     &auditMocks.MockAuditLogUseCase{},
		sealer:    sealer,
	}
	f.useCase = usecase.NewCredentialUseCase(f.txManager, f.repo, f.divisions, f.sealer, f.audit)
	return f
}

func (f *credentialFixture) assertExpectations(t *testing.T) {
	f.txManager.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.divisions.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

type hierarchyFixture struct {
	ou       uuid.UUID
	otherOU  uuid.UUID
	division *hierarchyDomain.Division
	sibling  uuid.UUID
}

func newHierarchyFixture() hierarchyFixture {
	ou := uuid.New()
	return hierarchyFixture{
		ou:       ou,
		otherOU:  uuid.New(),
		division: &hierarchyDomain.Division{ID: uuid.New(), OUID: ou, Name: "Backend"},
		sibling:  uuid.New(),
	}
}

func validInput() *credentialsDomain.CredentialInput {
	return &credentialsDomain.CredentialInput{
		Title:    "Production DB",
		Username: "postgres",
		Password: "s3cr3t",
		URL:      "postgres://db.internal",
	}
}

func TestCredentialUseCase_List_Policy(t *testing.T) {
	ctx := context.Background()
	h := newHierarchyFixture()

	tests := []struct {
		name     string
		snapshot *authz.Snapshot
		wantErr  error
	}{
		{
			name:     "Admin",
			snapshot: &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin},
		},
		{
			name: "Management_OUMember",
			snapshot: &authz.Snapshot{
				UserID: uuid.New(), Role: authz.RoleManagement, OUs: authz.NewRefSet(h.ou),
			},
		},
		{
			name: "Management_DivisionMemberOutsideOU",
			snapshot: &authz.Snapshot{
				UserID: uuid.New(), Role: authz.RoleManagement,
				OUs: authz.NewRefSet(h.otherOU), Divisions: authz.NewRefSet(h.division.ID),
			},
			wantErr: authz.ErrOutsideOrganizationalUnits,
		},
		{
			name: "Normal_DivisionMember",
			snapshot: &authz.Snapshot{
				UserID: uuid.New(), Role: authz.RoleNormal, Divisions: authz.NewRefSet(h.division.ID),
			},
		},
		{
			name: "Normal_OUMemberOnly",
			snapshot: &authz.Snapshot{
				UserID: uuid.New(), Role: authz.RoleNormal,
				OUs: authz.NewRefSet(h.ou), Divisions: authz.NewRefSet(h.sibling),
			},
			wantErr: authz.ErrNotAssignedToDivision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCredentialFixture(t, nil)
			f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
			if tt.wantErr == nil {
				f.repo.On("ListByDivision", ctx, h.division.ID).
					Return([]*credentialsDomain.Credential{{ID: uuid.New()}}, nil).
					Once()
			}

			credentials, err := f.useCase.List(ctx, tt.snapshot, h.division.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
				f.repo.AssertNotCalled(t, "ListByDivision", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Len(t, credentials, 1)
			}
			f.assertExpectations(t)
		})
	}
}

func TestCredentialUseCase_List_ResolutionOrder(t *testing.T) {
	ctx := context.Background()
	divisionID := uuid.New()

	t.Run("Error_NoSnapshot", func(t *testing.T) {
		f := newCredentialFixture(t, nil)

		_, err := f.useCase.List(ctx, nil, divisionID)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		f.divisions.AssertNotCalled(t, "GetDivision", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownDivisionBeforePolicy", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		normal := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal}

		f.divisions.On("GetDivision", ctx, divisionID).Return(nil, hierarchyDomain.ErrDivisionNotFound).Once()

		_, err := f.useCase.List(ctx, normal, divisionID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.assertExpectations(t)
	})
}

func TestCredentialUseCase_Create(t *testing.T) {
	ctx := context.Background()
	h := newHierarchyFixture()
	member := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal, Divisions: authz.NewRefSet(h.division.ID)}

	t.Run("Success_SealsPasswordAndAudits", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		var stored *credentialsDomain.Credential

		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("Create", ctx, mock.AnythingOfType("*domain.Credential")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*credentialsDomain.Credential) }).
			Return(nil).
			Once()
		f.audit.On("Record", ctx, mock.MatchedBy(func(log *auditDomain.AuditLog) bool {
			return log.Action == auditDomain.ActionCredentialCreate && log.ActorID == member.UserID
		})).Return(nil).Once()

		credential, err := f.useCase.Create(ctx, member, h.division.ID, validInput())
		require.NoError(t, err)
		assert.Equal(t, h.division.ID, credential.DivisionID)
		assert.Equal(t, "s3cr3t", credential.Password)

		require.NotNil(t, stored.Sealed)
		assert.NotContains(t, string(stored.Sealed.Ciphertext), "s3cr3t")
		assert.Equal(t, "k1", stored.Sealed.KeyID)

		plaintext, err := f.sealer.Open(stored.Sealed, []byte(stored.ID.String()))
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", string(plaintext))
		f.assertExpectations(t)
	})

	t.Run("Error_ManagementOutsideDivision", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		manager := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleManagement, OUs: authz.NewRefSet(h.ou)}

		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()

		_, err := f.useCase.Create(ctx, manager, h.division.ID, validInput())
		assert.ErrorIs(t, err, authz.ErrNotAssignedToDivision)
		f.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	validationCases := []struct {
		name   string
		mutate func(in *credentialsDomain.CredentialInput)
		msg    string
	}{
		{"BlankTitle", func(in *credentialsDomain.CredentialInput) { in.Title = "  " }, "All fields are required"},
		{"MissingPassword", func(in *credentialsDomain.CredentialInput) { in.Password = "" }, "All fields are required"},
		{"TitleTooLong", func(in *credentialsDomain.CredentialInput) { in.Title = strings.Repeat("t", 256) }, ""},
		{"URLTooLong", func(in *credentialsDomain.CredentialInput) { in.URL = "https://" + strings.Repeat("u", 2048) }, ""},
		{"PasswordTooLong", func(in *credentialsDomain.CredentialInput) { in.Password = strings.Repeat("p", 4097) }, ""},
	}
	for _, tc := range validationCases {
		t.Run("Error_"+tc.name, func(t *testing.T) {
			f := newCredentialFixture(t, nil)
			input := validInput()
			tc.mutate(input)

			f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()

			_, err := f.useCase.Create(ctx, member, h.division.ID, input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, apperrors.PublicMessage(err, apperrors.ErrInvalidInput))
			}
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Error_AuditFailureRollsBack", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		auditErr := errors.New("audit insert failed")

		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.audit.On("Record", ctx, mock.Anything).Return(auditErr).Once()

		credential, err := f.useCase.Create(ctx, member, h.division.ID, validInput())
		assert.Nil(t, credential)
		assert.ErrorIs(t, err, auditErr)
	})
}

func TestCredentialUseCase_Reveal(t *testing.T) {
	ctx := context.Background()
	h := newHierarchyFixture()

	sealedCredential := func(t *testing.T, sealer cryptoService.Sealer) *credentialsDomain.Credential {
		t.Helper()
		id := uuid.New()
		sealed, err := sealer.Seal([]byte("hunter2"), []byte(id.String()))
		require.NoError(t, err)
		return &credentialsDomain.Credential{ID: id, DivisionID: h.division.ID, Title: "VPN", Sealed: sealed}
	}

	t.Run("Success", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		stored := sealedCredential(t, f.sealer)
		manager := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleManagement, OUs: authz.NewRefSet(h.ou)}

		f.repo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
		f.audit.On("Record", ctx, mock.MatchedBy(func(log *auditDomain.AuditLog) bool {
			return log.Action == auditDomain.ActionCredentialReveal && log.ResourceID == stored.ID
		})).Return(nil).Once()

		credential, err := f.useCase.Reveal(ctx, manager, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", credential.Password)
		f.assertExpectations(t)
	})

	t.Run("Error_Forbidden_NoAudit", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		stored := sealedCredential(t, f.sealer)
		outsider := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal, Divisions: authz.NewRefSet(h.sibling)}

		f.repo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()

		_, err := f.useCase.Reveal(ctx, outsider, stored.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		id := uuid.New()

		f.repo.On("Get", ctx, id).Return(nil, credentialsDomain.ErrCredentialNotFound).Once()

		_, err := f.useCase.Reveal(ctx, &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}, id)
		assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)
	})

	t.Run("Error_TamperedCiphertextIsInternal", func(t *testing.T) {
		f := newCredentialFixture(t, nil)
		stored := sealedCredential(t, f.sealer)
		stored.Sealed.Ciphertext[0] ^= 0xff

		f.repo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()

		_, err := f.useCase.Reveal(ctx, &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}, stored.ID)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.False(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestCredentialUseCase_Update(t *testing.T) {
	ctx := context.Background()
	h := newHierarchyFixture()

	current := func() *credentialsDomain.Credential {
		return &credentialsDomain.Credential{ID: uuid.New(), DivisionID: h.division.ID, Title: "Old"}
	}

	tests := []struct {
		name     string
		snapshot *authz.Snapshot
		wantErr  error
	}{
		{"Admin", &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}, nil},
		{
			"Management_OUMember",
			&authz.Snapshot{UserID: uuid.New(), Role: authz.RoleManagement, OUs: authz.NewRefSet(h.ou)},
			nil,
		},
		{
			"Management_OtherOU",
			&authz.Snapshot{
				UserID: uuid.New(), Role: authz.RoleManagement,
				OUs: authz.NewRefSet(h.otherOU), Divisions: authz.NewRefSet(h.division.ID),
			},
			authz.ErrOutsideOrganizationalUnits,
		},
		{
			"Normal_EvenWhenAssigned",
			&authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal, Divisions: authz.NewRefSet(h.division.ID)},
			authz.ErrUpdateNotPermitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCredentialFixture(t, nil)
			existing := current()

			f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
			f.repo.On("GetForUpdate", ctx, existing.ID).Return(existing, nil).Once()
			f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
			if tt.wantErr == nil {
				f.repo.On("Update", ctx, mock.MatchedBy(func(c *credentialsDomain.Credential) bool {
					return c.Title == "Production DB" && c.Sealed != nil
				})).Return(nil).Once()
				f.audit.On("Record", ctx, mock.MatchedBy(func(log *auditDomain.AuditLog) bool {
					return log.Action == auditDomain.ActionCredentialUpdate
				})).Return(nil).Once()
			}

			credential, err := f.useCase.Update(ctx, tt.snapshot, existing.ID, validInput())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Production DB", credential.Title)
				assert.Equal(t, "s3cr3t", credential.Password)
			}
			f.assertExpectations(t)
		})
	}

	t.Run("Error_SealFailure", func(t *testing.T) {
		sealer := &mocks.MockSealer{}
		f := newCredentialFixture(t, sealer)
		existing := current()

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, existing.ID).Return(existing, nil).Once()
		f.divisions.On("GetDivision", ctx, h.division.ID).Return(h.division, nil).Once()
		sealer.On("Seal", []byte("s3cr3t"), []byte(existing.ID.String())).Return(nil, errors.New("no key")).Once()

		_, err := f.useCase.Update(ctx, &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}, existing.ID,
			validInput())
		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		sealer.AssertExpectations(t)
	})
}

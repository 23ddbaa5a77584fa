package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
	appValidation "github.com/allisson/credvault/internal/validation"
)

type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	divisions      DivisionReader
	sealer         cryptoService.Sealer
	auditRecorder  auditUseCase.Recorder
}

// NewCredentialUseCase creates a CredentialUseCase.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	divisions DivisionReader,
	sealer cryptoService.Sealer,
	auditRecorder auditUseCase.Recorder,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		divisions:      divisions,
		sealer:         sealer,
		auditRecorder:  auditRecorder,
	}
}

func validateInput(input *credentialsDomain.CredentialInput) error {
	for _, field := range []string{input.Title, input.Username, input.Password, input.URL} {
		if strings.TrimSpace(field) == "" {
			return credentialsDomain.ErrAllFieldsRequired
		}
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.Title,
			validation.RuneLength(1, credentialsDomain.MaxTitleLength),
			appValidation.NoControlChars,
		),
		validation.Field(&input.Username,
			validation.RuneLength(1, credentialsDomain.MaxUsernameLength),
			appValidation.NoControlChars,
		),
		validation.Field(&input.Password, validation.RuneLength(1, credentialsDomain.MaxPasswordLength)),
		validation.Field(&input.URL,
			validation.RuneLength(1, credentialsDomain.MaxURLLength),
			appValidation.NoWhitespace,
		),
	)
	return appValidation.WrapValidationError(err)
}

// authorize resolves the division and evaluates action against it. A missing
// division is reported before the policy runs.
func (c *credentialUseCase) authorize(
	ctx context.Context,
	snapshot *authz.Snapshot,
	action authz.Action,
	divisionID uuid.UUID,
) (*hierarchyDomain.Division, error) {
	if snapshot == nil {
		return nil, authz.ErrMissingSnapshot
	}

	division, err := c.divisions.GetDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	resource := authz.Resource{DivisionID: division.ID, OUID: division.OUID}
	if err := authz.Authorize(snapshot, action, resource); err != nil {
		return nil, err
	}
	return division, nil
}

func (c *credentialUseCase) List(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	if _, err := c.authorize(ctx, snapshot, authz.ActionReadCredentials, divisionID); err != nil {
		return nil, err
	}
	return c.credentialRepo.ListByDivision(ctx, divisionID)
}

func (c *credentialUseCase) Create(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	if _, err := c.authorize(ctx, snapshot, authz.ActionCreateCredential, divisionID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential := &credentialsDomain.Credential{
		ID:         uuid.Must(uuid.NewV7()),
		DivisionID: divisionID,
		Title:      input.Title,
		Username:   input.Username,
		URL:        input.URL,
		Password:   input.Password,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.seal(credential); err != nil {
		return nil, err
	}

	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.credentialRepo.Create(ctx, credential); err != nil {
			return err
		}
		return c.record(ctx, snapshot, auditDomain.ActionCredentialCreate, credential)
	})
	if err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *credentialUseCase) Reveal(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	if snapshot == nil {
		return nil, authz.ErrMissingSnapshot
	}

	credential, err := c.credentialRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := c.authorize(ctx, snapshot, authz.ActionReadCredentials, credential.DivisionID); err != nil {
		return nil, err
	}

	if err := c.open(credential); err != nil {
		return nil, err
	}
	if err := c.record(ctx, snapshot, auditDomain.ActionCredentialReveal, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *credentialUseCase) Update(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	if snapshot == nil {
		return nil, authz.ErrMissingSnapshot
	}

	var credential *credentialsDomain.Credential
	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := c.credentialRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if _, err := c.authorize(ctx, snapshot, authz.ActionUpdateCredential, current.DivisionID); err != nil {
			return err
		}
		if err := validateInput(input); err != nil {
			return err
		}

		current.Title = input.Title
		current.Username = input.Username
		current.URL = input.URL
		current.Password = input.Password
		current.UpdatedAt = time.Now().UTC()
		if err := c.seal(current); err != nil {
			return err
		}
		if err := c.credentialRepo.Update(ctx, current); err != nil {
			return err
		}
		credential = current
		return c.record(ctx, snapshot, auditDomain.ActionCredentialUpdate, current)
	})
	if err != nil {
		return nil, err
	}
	return credential, nil
}

// seal encrypts credential.Password bound to the credential id.
func (c *credentialUseCase) seal(credential *credentialsDomain.Credential) error {
	sealed, err := c.sealer.Seal([]byte(credential.Password), aad(credential.ID))
	if err != nil {
		return apperrors.Wrap(err, "failed to seal credential password")
	}
	credential.Sealed = sealed
	return nil
}

func (c *credentialUseCase) open(credential *credentialsDomain.Credential) error {
	plaintext, err := c.sealer.Open(credential.Sealed, aad(credential.ID))
	if err != nil {
		return apperrors.Wrap(err, "failed to open credential password")
	}
	credential.Password = string(plaintext)
	return nil
}

func aad(id uuid.UUID) []byte {
	return []byte(id.String())
}

func (c *credentialUseCase) record(
	ctx context.Context,
	snapshot *authz.Snapshot,
	action auditDomain.Action,
	credential *credentialsDomain.Credential,
) error {
	return c.auditRecorder.Record(ctx, &auditDomain.AuditLog{
		ActorID:      snapshot.UserID,
		Action:       action,
		ResourceType: auditDomain.ResourceCredential,
		ResourceID:   credential.ID,
		Metadata:     map[string]any{"divisionId": credential.DivisionID.String(), "title": credential.Title},
	})
}

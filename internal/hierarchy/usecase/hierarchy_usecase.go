package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

const maxNameLength = 255

// ErrInvalidName is returned for blank or oversized OU and division names.
var ErrInvalidName = apperrors.Wrap(apperrors.ErrInvalidInput, "Name is required and must be at most 255 characters")

type hierarchyUseCase struct {
	ouRepo       OURepository
	divisionRepo DivisionRepository
}

// NewHierarchyUseCase creates a HierarchyUseCase.
func NewHierarchyUseCase(ouRepo OURepository, divisionRepo DivisionRepository) HierarchyUseCase {
	return &hierarchyUseCase{ouRepo: ouRepo, divisionRepo: divisionRepo}
}

func (h *hierarchyUseCase) ListOUs(ctx context.Context) ([]*hierarchyDomain.OU, error) {
	return h.ouRepo.List(ctx)
}

func (h *hierarchyUseCase) ListPublicDivisionsByOU(
	ctx context.Context,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	if _, err := h.ouRepo.Get(ctx, ouID); err != nil {
		return nil, err
	}
	return h.divisionRepo.ListByOU(ctx, ouID)
}

func (h *hierarchyUseCase) ListDivisionsByOU(
	ctx context.Context,
	snapshot *authz.Snapshot,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	if snapshot == nil {
		return nil, authz.ErrMissingSnapshot
	}

	if _, err := h.ouRepo.Get(ctx, ouID); err != nil {
		return nil, err
	}

	if err := authz.Authorize(snapshot, authz.ActionListDivisions, authz.Resource{OUID: ouID}); err != nil {
		return nil, err
	}

	divisions, err := h.divisionRepo.ListByOU(ctx, ouID)
	if err != nil {
		return nil, err
	}
	return visibleDivisions(snapshot, divisions), nil
}

func (h *hierarchyUseCase) ListDivisions(
	ctx context.Context,
	snapshot *authz.Snapshot,
) ([]*hierarchyDomain.Division, error) {
	if err := authz.Authorize(snapshot, authz.ActionListDivisions, authz.Resource{}); err != nil {
		return nil, err
	}

	divisions, err := h.divisionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return visibleDivisions(snapshot, divisions), nil
}

func (h *hierarchyUseCase) GetDivision(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	return h.divisionRepo.Get(ctx, id)
}

func (h *hierarchyUseCase) EnsureOUsExist(ctx context.Context, ids authz.RefSet) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := h.ouRepo.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return hierarchyDomain.ErrOUNotFound
	}
	return nil
}

func (h *hierarchyUseCase) EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := h.divisionRepo.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return hierarchyDomain.ErrDivisionNotFound
	}
	return nil
}

func (h *hierarchyUseCase) CreateOU(ctx context.Context, name, description string) (*hierarchyDomain.OU, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	ou := &hierarchyDomain.OU{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.ouRepo.Create(ctx, ou); err != nil {
		return nil, err
	}
	return ou, nil
}

func (h *hierarchyUseCase) CreateDivision(
	ctx context.Context,
	ouID uuid.UUID,
	name, description string,
) (*hierarchyDomain.Division, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	if _, err := h.ouRepo.Get(ctx, ouID); err != nil {
		return nil, err
	}

	division := &hierarchyDomain.Division{
		ID:          uuid.Must(uuid.NewV7()),
		OUID:        ouID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.divisionRepo.Create(ctx, division); err != nil {
		return nil, err
	}
	return division, nil
}

func (h *hierarchyUseCase) GetOrCreateOU(
	ctx context.Context,
	name, description string,
) (*hierarchyDomain.OU, error) {
	ou, err := h.ouRepo.GetByName(ctx, strings.TrimSpace(name))
	if err == nil {
		return ou, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return h.CreateOU(ctx, name, description)
}

func (h *hierarchyUseCase) GetOrCreateDivision(
	ctx context.Context,
	ouID uuid.UUID,
	name, description string,
) (*hierarchyDomain.Division, error) {
	division, err := h.divisionRepo.GetByName(ctx, ouID, strings.TrimSpace(name))
	if err == nil {
		return division, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return h.CreateDivision(ctx, ouID, name, description)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func visibleDivisions(snapshot *authz.Snapshot, divisions []*hierarchyDomain.Division) []*hierarchyDomain.Division {
	visible := make([]*hierarchyDomain.Division, 0, len(divisions))
	for _, d := range divisions {
		if authz.CanSeeDivision(snapshot, d.ID, d.OUID) {
			visible = append(visible, d)
		}
	}
	return visible
}

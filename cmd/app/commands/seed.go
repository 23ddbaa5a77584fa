package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
	hierarchyUseCase "github.com/allisson/credvault/internal/hierarchy/usecase"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

type seedOU struct {
	name        string
	description string
	division    string
	divisionDoc string
	credential  credentialsDomain.CredentialInput
}

type seedUser struct {
	username string
	password string
	role     authz.Role
	// ous lists indexes into seedOUs; nil means every OU.
	ous []int
}

var seedOUs = []seedOU{
	{
		name: "News Management", description: "Handles news content",
		division: "Finance", divisionDoc: "Handles finances for News",
		credential: credentialsDomain.CredentialInput{
			Title: "News CMS", Username: "news_admin",
			Password: "securepassword123", URL: "https://news.cms.cooltech.com",
		},
	},
	{
		name: "Software Reviews", description: "Reviews software products",
		division: "IT", divisionDoc: "IT support for Software",
		credential: credentialsDomain.CredentialInput{
			Title: "Software Portal", Username: "software_admin",
			Password: "softwarepass123", URL: "https://software.portal.cooltech.com",
		},
	},
	{
		name: "Hardware Reviews", description: "Reviews hardware products",
		division: "Support", divisionDoc: "Support for Hardware",
		credential: credentialsDomain.CredentialInput{
			Title: "Hardware Support Portal", Username: "hardware_admin",
			Password: "hardwarepass123", URL: "https://hardware.portal.cooltech.com",
		},
	},
	{
		name: "Opinion Publishing", description: "Publishes opinion pieces",
		division: "Editing", divisionDoc: "Editing for Opinion",
		credential: credentialsDomain.CredentialInput{
			Title: "Opinion CMS", Username: "opinion_admin",
			Password: "opinionpass123", URL: "https://opinion.cms.cooltech.com",
		},
	},
}

var seedUsers = []seedUser{
	{username: "admin", password: "admin123", role: authz.RoleAdmin},
	{username: "user1", password: "user123", role: authz.RoleNormal, ous: []int{0}},
}

// RunSeed loads a demo hierarchy, two users and one credential per division.
// Existing rows are kept, so running it twice is harmless.
func RunSeed(
	ctx context.Context,
	hierarchy hierarchyUseCase.HierarchyUseCase,
	auth authUseCase.AuthUseCase,
	store RoleStore,
	credentials credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
	writer io.Writer,
) error {
	ouIDs := make([]uuid.UUID, len(seedOUs))
	divisionIDs := make([]uuid.UUID, len(seedOUs))
	for i, s := range seedOUs {
		ou, err := hierarchy.GetOrCreateOU(ctx, s.name, s.description)
		if err != nil {
			return fmt.Errorf("failed to seed OU %q: %w", s.name, err)
		}
		division, err := hierarchy.GetOrCreateDivision(ctx, ou.ID, s.division, s.divisionDoc)
		if err != nil {
			return fmt.Errorf("failed to seed division %q: %w", s.division, err)
		}
		ouIDs[i] = ou.ID
		divisionIDs[i] = division.ID
	}

	var admin *userDomain.User
	for _, s := range seedUsers {
		input := &authDomain.RegisterInput{Username: s.username, Password: s.password}
		if s.ous == nil {
			input.OUIDs = authz.NewRefSet(ouIDs...)
			input.DivisionIDs = authz.NewRefSet(divisionIDs...)
		}
		for _, i := range s.ous {
			input.OUIDs = input.OUIDs.With(ouIDs[i])
			input.DivisionIDs = input.DivisionIDs.With(divisionIDs[i])
		}

		_, err := auth.Register(ctx, input)
		switch {
		case errors.Is(err, userDomain.ErrUsernameTaken):
			logger.Info("seed user exists", slog.String("username", s.username))
		case err != nil:
			return fmt.Errorf("failed to seed user %q: %w", s.username, err)
		}

		user, err := store.GetByUsername(ctx, s.username)
		if err != nil {
			return fmt.Errorf("failed to load seed user %q: %w", s.username, err)
		}
		if user.Role != s.role {
			if err := store.UpdateRole(ctx, user.ID, s.role, time.Now().UTC()); err != nil {
				return fmt.Errorf("failed to set role of %q: %w", s.username, err)
			}
			user.Role = s.role
		}
		if s.role == authz.RoleAdmin {
			admin = user
		}
	}

	snapshot := admin.Snapshot()
	created := 0
	for i, s := range seedOUs {
		existing, err := credentials.List(ctx, snapshot, divisionIDs[i])
		if err != nil {
			return fmt.Errorf("failed to list credentials of %q: %w", s.division, err)
		}
		if hasTitle(existing, s.credential.Title) {
			continue
		}
		input := s.credential
		if _, err := credentials.Create(ctx, snapshot, divisionIDs[i], &input); err != nil {
			return fmt.Errorf("failed to seed credential %q: %w", s.credential.Title, err)
		}
		created++
	}

	logger.Info("seed completed", slog.Int("credentials_created", created))
	_, _ = fmt.Fprintf(writer, "Seeded %d OUs, %d users and %d new credentials\n",
		len(seedOUs), len(seedUsers), created)
	return nil
}

func hasTitle(credentials []*credentialsDomain.Credential, title string) bool {
	for _, c := range credentials {
		if c.Title == title {
			return true
		}
	}
	return false
}

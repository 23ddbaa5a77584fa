package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// RoleStore reads users by username and replaces their role.
type RoleStore interface {
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role authz.Role, updatedAt time.Time) error
}

// TokenRevoker voids the tokens a user already holds.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// RunSetRole sets the role of an existing user. It bootstraps the first admin,
// since changing a role over HTTP already requires one.
func RunSetRole(
	ctx context.Context,
	store RoleStore,
	revoker TokenRevoker,
	logger *slog.Logger,
	writer io.Writer,
	username string,
	roleName string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	role, err := authz.ParseRole(strings.ToLower(strings.TrimSpace(roleName)))
	if err != nil {
		return fmt.Errorf("invalid --role %q: %w", roleName, err)
	}

	user, err := store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return fmt.Errorf("failed to find user %q: %w", username, err)
	}

	previous := user.Role
	if previous != role {
		now := time.Now().UTC()
		if err := store.UpdateRole(ctx, user.ID, role, now); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		if err := revoker.Revoke(ctx, user.ID, now); err != nil {
			return fmt.Errorf("failed to revoke tokens: %w", err)
		}
	}

	logger.Info("user role set",
		slog.String("user_id", user.ID.String()),
		slog.String("from", previous.String()),
		slog.String("to", role.String()),
	)

	if format == formatJSON {
		return writeJSON(writer, map[string]string{
			"id":       user.ID.String(),
			"username": user.Username,
			"from":     previous.String(),
			"role":     role.String(),
		})
	}
	_, _ = fmt.Fprintf(writer, "User %s role: %s -> %s\n", user.Username, previous, role)
	return nil
}

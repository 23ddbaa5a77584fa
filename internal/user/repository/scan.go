package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*userDomain.User, error) {
	var (
		user userDomain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := authz.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("stored user role %q is invalid", role)
	}
	user.Role = parsed
	user.OUs = authz.NewRefSet()
	user.Divisions = authz.NewRefSet()
	return &user, nil
}

func collectUsers(rows *sql.Rows) ([]*userDomain.User, error) {
	defer func() {
		_ = rows.Close()
	}()

	users := make([]*userDomain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}

func collectRefs(rows *sql.Rows) (authz.RefSet, error) {
	defer func() {
		_ = rows.Close()
	}()

	refs := authz.NewRefSet()
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		refs = refs.With(id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return refs, nil
}

func collectPairs(rows *sql.Rows) (map[uuid.UUID][]uuid.UUID, error) {
	defer func() {
		_ = rows.Close()
	}()

	pairs := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var userID, refID uuid.UUID
		if err := rows.Scan(&userID, &refID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		pairs[userID] = append(pairs[userID], refID)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return pairs, nil
}

// membershipError maps a foreign key failure on a join table insert to NotFound.
func membershipError(err error, message string) error {
	if database.IsForeignKeyViolation(err) {
		return apperrors.Wrap(apperrors.ErrNotFound, "Referenced organizational unit or division not found")
	}
	return apperrors.Wrap(err, message)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}


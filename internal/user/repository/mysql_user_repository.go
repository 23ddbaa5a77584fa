package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// MySQLUserRepository implements User persistence for MySQL. Ids are BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts the user row and its initial memberships.
func (m *MySQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID[:],
		user.Username,
		user.PasswordHash,
		user.Role.String(),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return userDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	return m.AddMemberships(ctx, user.ID, user.OUs, user.Divisions)
}

// Get returns the user with the given id and its memberships.
func (m *MySQLUserRepository) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return m.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id[:])
}

// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
func (m *MySQLUserRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return m.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id[:])
}

// GetByUsername returns the user with the given username and its memberships.
func (m *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	return m.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (m *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	user, err := scanUser(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.OUs, err = m.listRefs(ctx, `SELECT ou_id FROM user_ous WHERE user_id = ? ORDER BY ou_id`, user.ID); err != nil {
		return nil, err
	}
	if user.Divisions, err = m.listRefs(
		ctx,
		`SELECT division_id FROM user_divisions WHERE user_id = ? ORDER BY division_id`,
		user.ID,
	); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every user ordered by username.
func (m *MySQLUserRepository) List(ctx context.Context) ([]*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}

	ous, err := m.listPairs(ctx, `SELECT user_id, ou_id FROM user_ous ORDER BY ou_id`)
	if err != nil {
		return nil, err
	}
	divisions, err := m.listPairs(ctx, `SELECT user_id, division_id FROM user_divisions ORDER BY division_id`)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.OUs = authz.NewRefSet(ous[user.ID]...)
		user.Divisions = authz.NewRefSet(divisions[user.ID]...)
	}
	return users, nil
}

// AddMemberships adds OU and division references with INSERT IGNORE, so existing
// pairs are skipped. Callers must verify the referenced rows exist first because
// INSERT IGNORE also downgrades foreign key failures to warnings.
func (m *MySQLUserRepository) AddMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	if err := m.insertPairs(ctx, "user_ous", "ou_id", userID, ous); err != nil {
		return membershipError(err, "failed to add user ous")
	}
	if err := m.insertPairs(ctx, "user_divisions", "division_id", userID, divisions); err != nil {
		return membershipError(err, "failed to add user divisions")
	}
	return nil
}

// RemoveMemberships deletes OU and division references. Absent pairs are ignored.
func (m *MySQLUserRepository) RemoveMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	if err := m.deletePairs(ctx, "user_ous", "ou_id", userID, ous); err != nil {
		return apperrors.Wrap(err, "failed to remove user ous")
	}
	if err := m.deletePairs(ctx, "user_divisions", "division_id", userID, divisions); err != nil {
		return apperrors.Wrap(err, "failed to remove user divisions")
	}
	return nil
}

// UpdateRole sets the role of a user. MySQL reports changed rather than matched
// rows, so a missing user is not detected here; callers lock the row first.
func (m *MySQLUserRepository) UpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	role authz.Role,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		role.String(),
		updatedAt,
		userID[:],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user role")
	}
	return nil
}

// UpdatePassword replaces the password hash of a user.
func (m *MySQLUserRepository) UpdatePassword(
	ctx context.Context,
	userID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash,
		updatedAt,
		userID[:],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return nil
}

func (m *MySQLUserRepository) insertPairs(
	ctx context.Context,
	table, column string,
	userID uuid.UUID,
	refs authz.RefSet,
) error {
	if len(refs) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, m.db)

	values := strings.TrimSuffix(strings.Repeat("(?, ?),", len(refs)), ",")
	args := make([]any, 0, 2*len(refs))
	for _, ref := range refs {
		args = append(args, userID[:], ref[:])
	}

	query := `INSERT IGNORE INTO ` + table + ` (user_id, ` + column + `) VALUES ` + values
	_, err := querier.ExecContext(ctx, query, args...)
	return err
}

func (m *MySQLUserRepository) deletePairs(
	ctx context.Context,
	table, column string,
	userID uuid.UUID,
	refs authz.RefSet,
) error {
	if len(refs) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, m.db)

	args := append([]any{userID[:]}, database.BinaryIDArgs(refs)...)
	query := `DELETE FROM ` + table + ` WHERE user_id = ? AND ` + column +
		` IN (` + database.Placeholders(len(refs)) + `)`
	_, err := querier.ExecContext(ctx, query, args...)
	return err
}

func (m *MySQLUserRepository) listRefs(ctx context.Context, query string, userID uuid.UUID) (authz.RefSet, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query, userID[:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user memberships")
	}
	return collectRefs(rows)
}

func (m *MySQLUserRepository) listPairs(ctx context.Context, query string) (map[uuid.UUID][]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	return collectPairs(rows)
}

// Package repository implements user and membership persistence for PostgreSQL and
// MySQL. Memberships live in the user_ous and user_divisions join tables.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

const userColumns = `id, username, password_hash, role, created_at, updated_at`

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts the user row and its initial memberships. Call it inside a
// transaction so a failed membership insert does not leave a half-created user.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
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

	return p.AddMemberships(ctx, user.ID, user.OUs, user.Divisions)
}

// Get returns the user with the given id and its memberships.
func (p *PostgreSQLUserRepository) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return p.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
func (p *PostgreSQLUserRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return p.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// GetByUsername returns the user with the given username and its memberships.
func (p *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	return p.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (p *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*userDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	user, err := scanUser(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.OUs, err = p.listRefs(ctx, `SELECT ou_id FROM user_ous WHERE user_id = $1 ORDER BY ou_id`, user.ID); err != nil {
		return nil, err
	}
	if user.Divisions, err = p.listRefs(
		ctx,
		`SELECT division_id FROM user_divisions WHERE user_id = $1 ORDER BY division_id`,
		user.ID,
	); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every user ordered by username.
func (p *PostgreSQLUserRepository) List(ctx context.Context) ([]*userDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}

	ous, err := p.listPairs(ctx, `SELECT user_id, ou_id FROM user_ous ORDER BY ou_id`)
	if err != nil {
		return nil, err
	}
	divisions, err := p.listPairs(ctx, `SELECT user_id, division_id FROM user_divisions ORDER BY division_id`)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.OUs = authz.NewRefSet(ous[user.ID]...)
		user.Divisions = authz.NewRefSet(divisions[user.ID]...)
	}
	return users, nil
}

// AddMemberships adds OU and division references. Existing pairs are left untouched.
func (p *PostgreSQLUserRepository) AddMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	querier := database.GetTx(ctx, p.db)

	if len(ous) > 0 {
		query := `INSERT INTO user_ous (user_id, ou_id)
				  SELECT $1::uuid, unnest($2::uuid[])
				  ON CONFLICT DO NOTHING`
		if _, err := querier.ExecContext(ctx, query, userID, pq.Array(ous.Strings())); err != nil {
			return membershipError(err, "failed to add user ous")
		}
	}

	if len(divisions) > 0 {
		query := `INSERT INTO user_divisions (user_id, division_id)
				  SELECT $1::uuid, unnest($2::uuid[])
				  ON CONFLICT DO NOTHING`
		if _, err := querier.ExecContext(ctx, query, userID, pq.Array(divisions.Strings())); err != nil {
			return membershipError(err, "failed to add user divisions")
		}
	}
	return nil
}

// RemoveMemberships deletes OU and division references. Absent pairs are ignored.
func (p *PostgreSQLUserRepository) RemoveMemberships(
	ctx context.Context,
	userID uuid.UUID,
	ous, divisions authz.RefSet,
) error {
	querier := database.GetTx(ctx, p.db)

	if len(ous) > 0 {
		query := `DELETE FROM user_ous WHERE user_id = $1 AND ou_id = ANY($2::uuid[])`
		if _, err := querier.ExecContext(ctx, query, userID, pq.Array(ous.Strings())); err != nil {
			return apperrors.Wrap(err, "failed to remove user ous")
		}
	}

	if len(divisions) > 0 {
		query := `DELETE FROM user_divisions WHERE user_id = $1 AND division_id = ANY($2::uuid[])`
		if _, err := querier.ExecContext(ctx, query, userID, pq.Array(divisions.Strings())); err != nil {
			return apperrors.Wrap(err, "failed to remove user divisions")
		}
	}
	return nil
}

// UpdateRole sets the role of a user.
func (p *PostgreSQLUserRepository) UpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	role authz.Role,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		role.String(),
		updatedAt,
		userID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user role")
	}
	return requireAffected(result)
}

// UpdatePassword replaces the password hash of a user.
func (p *PostgreSQLUserRepository) UpdatePassword(
	ctx context.Context,
	userID uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash,
		updatedAt,
		userID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return requireAffected(result)
}

func (p *PostgreSQLUserRepository) listRefs(ctx context.Context, query string, userID uuid.UUID) (authz.RefSet, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user memberships")
	}
	return collectRefs(rows)
}

func (p *PostgreSQLUserRepository) listPairs(ctx context.Context, query string) (map[uuid.UUID][]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	return collectPairs(rows)
}

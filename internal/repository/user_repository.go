package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resume-server/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	// FindActiveByID loads an active account without its password hash.
	FindActiveByID(ctx context.Context, id int64) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByIdentifier resolves an email (case-insensitive) or phone to the
	// full credential-bearing record.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindConflict(ctx context.Context, username, email string, phone *string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	HasAdmin(ctx context.Context) (bool, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const safeUserColumns = `id, username, email, phone, '', role, is_active, last_login, created_at, updated_at`
const fullUserColumns = `id, username, email, phone, password_hash, role, is_active, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, phone, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		strings.ToLower(user.Email),
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, email=$2, phone=$3, role=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		user.Username,
		strings.ToLower(user.Email),
		user.Phone,
		user.Role,
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) FindActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + safeUserColumns + ` FROM users WHERE id=$1 AND is_active=TRUE`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + safeUserColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + fullUserColumns + ` FROM users WHERE email=$1 OR phone=$2`
	return scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(identifier), identifier))
}

func (r *userRepository) FindConflict(ctx context.Context, username, email string, phone *string) (*domain.User, error) {
	query := `SELECT ` + safeUserColumns + ` FROM users WHERE username=$1 OR email=$2`
	args := []any{username, strings.ToLower(email)}
	if phone != nil && *phone != "" {
		query += ` OR phone=$3`
		args = append(args, *phone)
	}
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *userRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + safeUserColumns + ` FROM users WHERE is_active=TRUE ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) HasAdmin(ctx context.Context) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE role='admin')`
	var exists bool
	if err := r.pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

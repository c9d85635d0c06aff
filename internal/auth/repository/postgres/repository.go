package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gizo333/react-server/internal/auth/domain"
	autherror "github.com/gizo333/react-server/internal/errors"
)

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it too.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, user_id, fullname, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, user_id, fullname, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
		LIMIT 1;
	`
	return r.getOne(ctx, query, userID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.UserID, &user.Fullname, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Create inserts the user in a single statement; either the whole row
// commits or nothing does. A unique violation on email is reported as
// ErrEmailAlreadyInUse, which closes the check-then-insert race between
// concurrent registrations.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, fullname, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	row := r.db.QueryRow(ctx, query,
		user.UserID, user.Fullname, user.Email, user.PasswordHash, user.CreatedAt)

	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return autherror.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

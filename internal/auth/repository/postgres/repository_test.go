package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizo333/react-server/internal/auth/domain"
	repo "github.com/gizo333/react-server/internal/auth/repository/postgres"
	autherror "github.com/gizo333/react-server/internal/errors"
)

var userColumns = []string{"id", "user_id", "fullname", "email", "password_hash", "created_at"}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userEmail := "test@example.com"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(int64(1), "user-123", "Test User", userEmail, "hash", time.Now()))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "user-123", user.UserID)
		assert.Equal(t, userEmail, user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // absent user is (nil, nil), not an error
		assert.Nil(t, user)
	})

	t.Run("query failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs(userEmail).
			WillReturnError(errors.New("connection reset"))

		user, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestGetByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(int64(1), "user-123", "Test User", "test@example.com", "hash", time.Now()))

		user, err := r.GetByUserID(ctx, "user-123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByUserID(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	newUser := func() *domain.User {
		return &domain.User{
			UserID:       "user-123",
			Fullname:     "Test User",
			Email:        "test@example.com",
			PasswordHash: "hash",
			CreatedAt:    time.Now(),
		}
	}

	t.Run("success", func(t *testing.T) {
		user := newUser()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.UserID, user.Fullname, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

		err := r.Create(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("unique violation maps to duplicate email", func(t *testing.T) {
		user := newUser()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.UserID, user.Fullname, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, user)
		assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})

	t.Run("other failure is wrapped", func(t *testing.T) {
		user := newUser()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.UserID, user.Fullname, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(errors.New("connection reset"))

		err := r.Create(ctx, user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})
}

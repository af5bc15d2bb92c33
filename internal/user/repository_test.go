package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"brytashop-be/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{
	"id", "name", "email", "password", "permissions",
	"reset_token", "reset_token_expiry", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func userRow(id uint, email, perms string) *sqlmock.Rows {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(userCols).
		AddRow(id, "John", email, "hashed", perms, nil, nil, now, now)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO users \(name, email, password, permissions\)`).
			WithArgs("John", "john@example.com", "hashed", sqlmock.AnyArg()).
			WillReturnRows(userRow(1, "john@example.com", "{USER}"))

		u, err := repo.Create(ctx, &User{
			Name: "John", Email: "john@example.com", Password: "hashed",
			Permissions: []auth.Permission{auth.PermissionUser},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.Equal(t, []auth.Permission{auth.PermissionUser}, u.Permissions)
		assert.Nil(t, u.ResetToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, &User{Email: "john@example.com"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, &User{Email: "john@example.com"})
		assert.EqualError(t, err, "db error")
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WithArgs("john@example.com").
			WillReturnRows(userRow(3, "john@example.com", "{USER,ADMIN}"))

		u, err := repo.FindByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		assert.Equal(t, []auth.Permission{auth.PermissionUser, auth.PermissionAdmin}, u.Permissions)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_FindByResetToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Valid", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`WHERE reset_token = \$1 AND reset_token_expiry >= \$2`).
			WithArgs("abc", now).
			WillReturnRows(userRow(2, "john@example.com", "{USER}"))

		u, err := repo.FindByResetToken(ctx, "abc", now)
		require.NoError(t, err)
		assert.Equal(t, uint(2), u.ID)
	})

	t.Run("ExpiredOrUnknown", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`WHERE reset_token = \$1`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByResetToken(ctx, "abc", now)
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestRepository_SetResetToken(t *testing.T) {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE users\s+SET reset_token = \$1, reset_token_expiry = \$2`).
			WithArgs("tok", expiry, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetResetToken(ctx, 1, "tok", expiry))
	})

	t.Run("NoRows", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetResetToken(ctx, 1, "tok", expiry), ErrUserNotFound)
	})
}

func TestRepository_UpdatePassword(t *testing.T) {
	t.Run("ClearsToken", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`(?s)SET password = \$1, reset_token = NULL, reset_token_expiry = NULL.+WHERE id = \$2 AND reset_token = \$3`).
			WithArgs("newhash", 4, "tok").
			WillReturnRows(userRow(4, "john@example.com", "{USER}"))

		u, err := repo.UpdatePassword(context.Background(), 4, "newhash", "tok")
		require.NoError(t, err)
		assert.Equal(t, uint(4), u.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TokenAlreadyUsed", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`WHERE id = \$2 AND reset_token = \$3`).
			WithArgs("newhash", 4, "tok").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.UpdatePassword(context.Background(), 4, "newhash", "tok")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdatePermissions(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SET permissions = \$1`).
		WithArgs(sqlmock.AnyArg(), 4).
		WillReturnRows(userRow(4, "john@example.com", "{USER,ITEMCREATE}"))

	u, err := repo.UpdatePermissions(context.Background(), 4,
		[]auth.Permission{auth.PermissionUser, auth.PermissionItemCreate})
	require.NoError(t, err)
	assert.Len(t, u.Permissions, 2)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "A", "a@example.com", "h", "{ADMIN}", nil, nil, now, now).
			AddRow(2, "B", "b@example.com", "h", "{USER}", nil, nil, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[1].Email)
}

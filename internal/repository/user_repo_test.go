package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawanlib/internal/model"
)

func newUserRepoMock(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func userRows(u model.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "username", "password_hash", "role", "verified", "refresh_token", "created_at"}).
		AddRow(u.ID, u.Name, u.Username, u.PasswordHash, u.Role, u.Verified, u.RefreshToken, u.CreatedAt)
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	user := &model.User{
		Name:         "Budi Santoso",
		Username:     "budisantoso",
		PasswordHash: "$argon2id$hash",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Name, user.Username, user.PasswordHash, user.Role, user.Verified, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{Username: "budisantoso"})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	want := model.User{ID: 1, Name: "Budi Santoso", Username: "budisantoso", Role: model.RoleUser, CreatedAt: time.Now()}
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
		WithArgs("budisantoso").
		WillReturnRows(userRows(want))

	got, err := repo.FindByUsername(context.Background(), "budisantoso")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Username, got.Username)
	assert.Nil(t, got.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A missing row is nil, nil; the service layer decides what that means.
func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username", "password_hash", "role", "verified", "refresh_token", "created_at"}))

	got, err := repo.FindByUsername(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByRefreshToken(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	token := "stored-refresh-token"
	want := model.User{ID: 1, Username: "budisantoso", RefreshToken: &token, CreatedAt: time.Now()}
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE refresh_token`).
		WithArgs(token).
		WillReturnRows(userRows(want))

	got, err := repo.FindByRefreshToken(context.Background(), token)

	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, token, *got.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs("new-token", 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRefreshToken(context.Background(), 1, "new-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRefreshToken_UnknownUser(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs("new-token", 999).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateRefreshToken(context.Background(), 999, "new-token")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClearRefreshToken(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`UPDATE users SET refresh_token = NULL`).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.ClearRefreshToken(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

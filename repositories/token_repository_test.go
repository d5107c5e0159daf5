package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepositoryGetUserByTokenHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresTokenRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(5, "Test User", "test@example.com", "hash", now, now)

	mock.ExpectQuery(`(?s)SELECT.*FROM access_tokens t.*JOIN users u ON u\.id = t\.user_id.*WHERE t\.token_hash = \$1`).
		WithArgs("deadbeef").
		WillReturnRows(rows)

	user, err := repo.GetUserByTokenHash(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestTokenRepositoryGetUserByTokenHashUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresTokenRepository(db)

	mock.ExpectQuery(`(?s)SELECT.*FROM access_tokens t`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetUserByTokenHash(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepositoryDeleteByHashNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresTokenRepository(db)

	mock.ExpectExec(`DELETE FROM access_tokens WHERE token_hash = \$1`).
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteByHash(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

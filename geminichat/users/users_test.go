package users

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "mobile", "is_active", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "+15550001111").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("8c8f7f0e-2f4e-4a53-9a0f-0a4f8f0f0f01", "+15550001111", true, now, now))

	user, err := NewRepository(mock).Create(context.Background(), "+15550001111")

	require.NoError(t, err)
	assert.Equal(t, "+15550001111", user.Mobile)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByMobile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("ON CONFLICT \\(mobile\\)").
		WithArgs(pgxmock.AnyArg(), "+15550001111").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("8c8f7f0e-2f4e-4a53-9a0f-0a4f8f0f0f01", "+15550001111", true, now, now))

	user, err := NewRepository(mock).FindOrCreateByMobile(context.Background(), "+15550001111")

	require.NoError(t, err)
	assert.Equal(t, "8c8f7f0e-2f4e-4a53-9a0f-0a4f8f0f0f01", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM users").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package otps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewRepository(mock)
	repo.now = func() time.Time { return fixedNow }

	return repo, mock
}

func TestCreate(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("INSERT INTO otps").
		WithArgs(pgxmock.AnyArg(), "+15550001111", "123456", "login", fixedNow.Add(10*time.Minute)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	otp, err := repo.Create(context.Background(), "+15550001111", "123456", PurposeLogin, 10*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(10*time.Minute), otp.ExpiresAt)
	assert.NotEmpty(t, otp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsume(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery("DELETE FROM otps").
			WithArgs("+15550001111", "123456", "login", fixedNow).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("otp-1"))

		ok, err := repo.Consume(context.Background(), "+15550001111", "123456", PurposeLogin)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match or expired", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery("DELETE FROM otps").
			WithArgs("+15550001111", "000000", "reset", fixedNow).
			WillReturnError(pgx.ErrNoRows)

		ok, err := repo.Consume(context.Background(), "+15550001111", "000000", PurposeReset)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery("DELETE FROM otps").WillReturnError(errors.New("connection reset"))

		_, err := repo.Consume(context.Background(), "+15550001111", "123456", PurposeLogin)
		assert.Error(t, err)
	})
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("DELETE FROM otps").
		WithArgs(fixedNow).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPurposeValid(t *testing.T) {
	assert.True(t, PurposeLogin.Valid())
	assert.True(t, PurposeReset.Valid())
	assert.False(t, Purpose("signup").Valid())
}

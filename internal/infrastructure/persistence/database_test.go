package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB opens GORM on top of a mocked SQL connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestDatabase(t *testing.T) {
	t.Run("ping reaches the pool", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		db, err := wrap(gormDB)
		require.NoError(t, err)

		mock.ExpectPing()

		assert.NoError(t, db.PingContext(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed ping is reported", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		db, err := wrap(gormDB)
		require.NoError(t, err)

		mock.ExpectPing().WillReturnError(assert.AnError)

		assert.ErrorIs(t, db.PingContext(context.Background()), assert.AnError)
	})

	t.Run("close releases the pool", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		db, err := wrap(gormDB)
		require.NoError(t, err)
		require.NotNil(t, db.SQL())

		mock.ExpectClose()

		assert.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

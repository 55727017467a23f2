package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/model"
)

// newMockSMSLogRepository drives the postgres dialector against sqlmock.
func newMockSMSLogRepository(t *testing.T) (*SMSLogRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewSMSLogRepository(gormDB), mock, mockDB
}

func TestSMSLogRepository_GetByID(t *testing.T) {
	t.Run("returns the stored entry", func(t *testing.T) {
		repo, mock, mockDB := newMockSMSLogRepository(t)
		defer mockDB.Close()

		ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "to", "body", "status", "timestamp", "error"}).
			AddRow("SL-000004", "+9647701234567", "hello", "FAILED", ts, "invalid number")

		mock.ExpectQuery(`SELECT \* FROM "sms_logs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("SL-000004", 1).
			WillReturnRows(rows)

		entry, err := repo.GetByID(context.Background(), "SL-000004")
		require.NoError(t, err)
		assert.Equal(t, "+9647701234567", entry.To)
		assert.Equal(t, model.SMSStatusFailed, entry.Status)
		assert.Equal(t, "invalid number", entry.Error)
		assert.True(t, entry.Timestamp.Equal(ts))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSMSLogRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sms_logs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("SL-000404", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		entry, err := repo.GetByID(context.Background(), "SL-000404")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

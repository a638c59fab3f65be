package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clubfinanzas/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewDatabaseFromGorm(gormDB, DriverPostgres), mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("succeeds when the connection answers", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()
		assert.NoError(t, db.Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns the driver error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(sql.ErrConnDone)
		assert.ErrorIs(t, db.Ping(context.Background()), sql.ErrConnDone)
	})
}

func TestDatabase_Stats(t *testing.T) {
	db, err := OpenSQLiteMemory()
	require.NoError(t, err)
	database := NewDatabaseFromGorm(db, DriverSQLite)
	defer database.Close()

	stats, err := database.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
	assert.Equal(t, time.Duration(0), stats.WaitDuration)
}

func TestDatabase_AutoMigrateCreatesTables(t *testing.T) {
	db, err := OpenSQLiteMemory()
	require.NoError(t, err)
	database := NewDatabaseFromGorm(db, DriverSQLite)
	defer database.Close()

	require.NoError(t, database.AutoMigrate())

	for _, table := range []string{
		"clubs", "club_configs", "users", "members", "campaigns",
		"contributions", "expenses", "incomes", "debts", "debt_payments", "audit_logs",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewDatabase(t *testing.T) {
	t.Run("opens a sqlite file", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver:        DriverSQLite,
			SQLitePath:    t.TempDir() + "/club.db",
			SlowThreshold: 200 * time.Millisecond,
		}
		database, err := NewDatabase(cfg, zap.NewNop(), "silent")
		require.NoError(t, err)
		defer database.Close()

		assert.Equal(t, DriverSQLite, database.Driver)
		assert.NoError(t, database.Ping(context.Background()))
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop(), "warn")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

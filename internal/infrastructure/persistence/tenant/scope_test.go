package tenant

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type testModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClubID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"size:100"`
}

func (testModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestClubScope(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	clubID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE club_id = \$1`).
		WithArgs(clubID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "name"}).
			AddRow(uuid.New(), clubID, "Cuota"))

	var rows []testModel
	require.NoError(t, db.Scopes(ClubScope(clubID)).Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClubIDScope(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	clubID, id := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE club_id = \$1 AND id = \$2`).
		WithArgs(clubID, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "name"}))

	var rows []testModel
	require.NoError(t, db.Scopes(ClubIDScope(clubID, id)).Find(&rows).Error)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClubScope_NilClubFails(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	var rows []testModel
	err := db.Scopes(ClubScope(uuid.Nil)).Find(&rows).Error
	assert.ErrorIs(t, err, ErrClubIDRequired)

	err = db.Scopes(ClubIDScope(uuid.Nil, uuid.New())).Find(&rows).Error
	assert.ErrorIs(t, err, ErrClubIDRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

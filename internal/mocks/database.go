package mocks

import (
	"testing"

	"cleanhub/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewTestDB returns a DB backed by sqlmock. Repositories are mocked in
// controller tests, so only transaction begin/commit reach the driver.
func NewTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return database.DB{SQL: gormDB}, sqlMock
}

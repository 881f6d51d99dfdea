package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"employee-portal/db"

	"github.com/stretchr/testify/require"
)

// SetupTestDatabase opens a seeded gazetteer in a temp directory. The
// database is closed when the test ends.
func SetupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	testDB, err := db.ConnectToSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })

	require.NoError(t, db.InitializeSchema(testDB))
	return testDB
}

func SetupTestCityRepository(t *testing.T) *db.SQLiteCityRepository {
	return db.NewSQLiteCityRepository(SetupTestDatabase(t))
}

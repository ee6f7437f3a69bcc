package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"guardian-beam/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "beam.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return sqlDB
}

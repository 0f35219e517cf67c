package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/strata/internal/db"
)

// NewTestDB creates an in-memory SQLite store with the full schema applied
// and the main branch seeded. The store is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/db"
)

// NewTestDB creates a private in-memory SQLite database with all migrations
// applied. The returned handle is limited to a single connection, so the
// database lives until it is closed.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open("file::memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

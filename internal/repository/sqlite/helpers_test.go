package sqlite_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository/sqlite"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func seedProfile(t require.TestingT, db *sql.DB, username string) int64 {
	p, err := sqlite.NewProfileRepository(db).Upsert(context.Background(), username)
	require.NoError(t, err)
	return p.ID
}

func seedDeck(t require.TestingT, db *sql.DB, profileID int64, name string) int64 {
	id, err := sqlite.NewDeckRepository(db).Insert(context.Background(), models.Deck{ProfileID: profileID, Name: name})
	require.NoError(t, err)
	return id
}

package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestUpsertIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)
	s.Assert().Greater(first.ID, int64(0))
	s.Assert().Equal("alice", first.Username)

	second, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID)

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(profiles, 1)
}

func (s *ProfileRepositorySuite) TestGetAndGetByUsername() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, "bob")
	s.Require().NoError(err)

	byID, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Assert().Equal("bob", byID.Username)

	byName, err := s.repo.GetByUsername(ctx, "bob")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Assert().Equal(created.ID, byName.ID)

	missing, err := s.repo.Get(ctx, created.ID+100)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *ProfileRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	profileID := seedProfile(s.T(), s.db, "carol")
	seedDeck(s.T(), s.db, profileID, "Spanish")

	ok, err := s.repo.Delete(ctx, profileID)
	s.Require().NoError(err)
	s.Assert().True(ok)

	var decks int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks`).Scan(&decks))
	s.Assert().Zero(decks)

	ok, err = s.repo.Delete(ctx, profileID)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}

package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/srs"
	"github.com/vytor/studyflash/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.StatsRepository
	cards     repository.FlashcardRepository
	profileID int64
	deckID    int64
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.cards = sqlite.NewFlashcardRepository(s.db)
	s.profileID = seedProfile(s.T(), s.db, "alice")
	s.deckID = seedDeck(s.T(), s.db, s.profileID, "Capitals")
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) review(id int64, q srs.Quality, at time.Time) {
	ctx := context.Background()
	card, err := s.cards.Get(ctx, id, s.profileID)
	s.Require().NoError(err)
	next, err := srs.ScheduleSM2(card.ReviewState(), q, at)
	s.Require().NoError(err)

	updated := *card
	updated.ApplyState(next)
	updated.LastReviewedAt = &at
	updated.TimesReviewed++
	if q.Passed() {
		updated.TimesCorrect++
	}
	qi := int(q)
	s.Require().NoError(s.cards.UpdateReview(ctx, updated, card.Version, models.ReviewHistory{
		FlashcardID: id, Mode: models.ReviewModeQuality, Quality: &qi, IsCorrect: q.Passed(), TimeSeconds: 2,
		PrevInterval: card.IntervalDays, NewInterval: next.Interval,
		PrevEase: card.EaseFactor, NewEase: next.EaseFactor, ReviewedAt: at,
	}))
}

func (s *StatsRepositorySuite) TestFlashcardStats() {
	ctx := context.Background()
	due, err := s.cards.Insert(ctx, models.NewFlashcard(s.deckID, "a", "b", testNow.Add(-time.Hour)))
	s.Require().NoError(err)
	_, err = s.cards.Insert(ctx, models.NewFlashcard(s.deckID, "c", "d", testNow.Add(72*time.Hour)))
	s.Require().NoError(err)
	s.review(due, srs.QualityPerfect, testNow.Add(-24*time.Hour))

	stat, err := s.repo.FlashcardStats(ctx, s.profileID, testNow)
	s.Require().NoError(err)
	s.Assert().Equal(2, stat.TotalCards)
	s.Assert().Equal(1, stat.TotalReviews)
	s.Assert().Equal(1, stat.CardsDue)
	s.Assert().Equal(1, stat.CardsDueSoon)
	s.Assert().InDelta(100.0, stat.OverallAccuracy, 1e-9)
}

func (s *StatsRepositorySuite) TestFlashcardStatsEmpty() {
	stat, err := s.repo.FlashcardStats(context.Background(), s.profileID, testNow)
	s.Require().NoError(err)
	s.Assert().Zero(stat.TotalCards)
	s.Assert().Zero(stat.OverallAccuracy)
}

func (s *StatsRepositorySuite) TestPhaseStatsAndQualityDistribution() {
	ctx := context.Background()
	a, err := s.cards.Insert(ctx, models.NewFlashcard(s.deckID, "a", "b", testNow))
	s.Require().NoError(err)
	_, err = s.cards.Insert(ctx, models.NewFlashcard(s.deckID, "c", "d", testNow))
	s.Require().NoError(err)
	s.review(a, srs.QualityPerfect, testNow)
	s.review(a, srs.QualityCorrectHesitant, testNow.Add(time.Hour))

	phases, err := s.repo.PhaseStats(ctx, s.profileID)
	s.Require().NoError(err)
	s.Require().Len(phases, 2)
	s.Assert().Equal(string(srs.Learning), phases[0].Phase)
	s.Assert().Equal(1, phases[0].TotalCards)
	s.Assert().Equal(string(srs.Reviewing), phases[1].Phase)
	s.Assert().Equal(1, phases[1].TotalCards)

	dist, err := s.repo.QualityDistribution(ctx, s.profileID)
	s.Require().NoError(err)
	s.Require().Len(dist, 2)
	s.Assert().Equal(4, dist[0].Quality)
	s.Assert().Equal(srs.QualityCorrectHesitant.Description(), dist[0].Description)
	s.Assert().Equal(5, dist[1].Quality)
	s.Assert().Equal(1, dist[1].Count)
}

func (s *StatsRepositorySuite) TestReviewActivityGroupsByDay() {
	ctx := context.Background()
	a, err := s.cards.Insert(ctx, models.NewFlashcard(s.deckID, "a", "b", testNow))
	s.Require().NoError(err)
	yesterday := testNow.Add(-24 * time.Hour)
	s.review(a, srs.QualityPerfect, yesterday)
	s.review(a, srs.QualityBlackout, testNow)
	s.review(a, srs.QualityPerfect, testNow.Add(time.Minute))

	days, err := s.repo.ReviewActivity(ctx, s.profileID, testNow.AddDate(0, 0, -14))
	s.Require().NoError(err)
	s.Require().Len(days, 2)
	s.Assert().Equal("2026-03-09", days[0].Day)
	s.Assert().Equal(1, days[0].Reviews)
	s.Assert().Equal("2026-03-10", days[1].Day)
	s.Assert().Equal(2, days[1].Reviews)
	s.Assert().Equal(1, days[1].Correct)

	recent, err := s.repo.ReviewActivity(ctx, s.profileID, testNow)
	s.Require().NoError(err)
	s.Assert().Len(recent, 1)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}

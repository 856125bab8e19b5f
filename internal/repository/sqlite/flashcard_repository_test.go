package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/srs"
	"github.com/vytor/studyflash/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.FlashcardRepository
	profileID int64
	deckID    int64
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)
	s.profileID = seedProfile(s.T(), s.db, "alice")
	s.deckID = seedDeck(s.T(), s.db, s.profileID, "Capitals")
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) insert(front string, mutate func(*models.Flashcard)) int64 {
	c := models.NewFlashcard(s.deckID, front, front+"-back", testNow)
	if mutate != nil {
		mutate(&c)
	}
	id, err := s.repo.Insert(context.Background(), c)
	s.Require().NoError(err)
	return id
}

func (s *FlashcardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	id := s.insert("France", nil)

	card, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("France", card.Front)
	s.Assert().Equal(srs.InitialEaseFactor, card.EaseFactor)
	s.Assert().Equal(srs.InitialInterval, card.IntervalDays)
	s.Assert().Zero(card.Repetitions)
	s.Assert().Equal(int64(1), card.Version)
	s.Assert().Nil(card.LastReviewedAt)
	s.Assert().True(testNow.Equal(card.NextReviewAt))
	s.Assert().Equal(srs.Learning, card.Phase())
}

func (s *FlashcardRepositorySuite) TestGetIsScopedToProfile() {
	ctx := context.Background()
	id := s.insert("Peru", nil)
	other := seedProfile(s.T(), s.db, "mallory")

	card, err := s.repo.Get(ctx, id, other)
	s.Require().NoError(err)
	s.Assert().Nil(card)

	ok, err := s.repo.Delete(ctx, id, other)
	s.Require().NoError(err)
	s.Assert().False(ok)

	ok, err = s.repo.Delete(ctx, id, s.profileID)
	s.Require().NoError(err)
	s.Assert().True(ok)
}

func (s *FlashcardRepositorySuite) TestListDueOrdersMostOverdueThenHardest() {
	ctx := context.Background()
	s.insert("later", func(c *models.Flashcard) { c.NextReviewAt = testNow.Add(48 * time.Hour) })
	easy := s.insert("easy", func(c *models.Flashcard) { c.NextReviewAt = testNow.Add(-time.Hour) })
	hard := s.insert("hard", func(c *models.Flashcard) {
		c.NextReviewAt = testNow.Add(-time.Hour)
		c.EaseFactor = 1.7
	})
	oldest := s.insert("oldest", func(c *models.Flashcard) { c.NextReviewAt = testNow.Add(-72 * time.Hour) })

	filter := models.FlashcardFilter{ProfileID: s.profileID, DueBefore: &testNow}
	cards, err := s.repo.List(ctx, filter)
	s.Require().NoError(err)
	s.Require().Len(cards, 3)
	s.Assert().Equal([]int64{oldest, hard, easy}, []int64{cards[0].ID, cards[1].ID, cards[2].ID})

	n, err := s.repo.Count(ctx, filter)
	s.Require().NoError(err)
	s.Assert().Equal(3, n)

	filter.Limit = 1
	filter.Offset = 1
	page, err := s.repo.List(ctx, filter)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Assert().Equal(hard, page[0].ID)
}

func (s *FlashcardRepositorySuite) TestListFiltersByPhaseAndDeck() {
	ctx := context.Background()
	s.insert("new", nil)
	reviewing := s.insert("known", func(c *models.Flashcard) {
		c.Repetitions = 3
		c.IntervalDays = 16
	})
	otherDeck := seedDeck(s.T(), s.db, s.profileID, "Rivers")
	_, err := s.repo.Insert(ctx, models.NewFlashcard(otherDeck, "Nile", "Africa", testNow))
	s.Require().NoError(err)

	cards, err := s.repo.List(ctx, models.FlashcardFilter{ProfileID: s.profileID, Phase: srs.Reviewing})
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal(reviewing, cards[0].ID)

	n, err := s.repo.Count(ctx, models.FlashcardFilter{ProfileID: s.profileID, Phase: srs.Learning})
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	n, err = s.repo.Count(ctx, models.FlashcardFilter{ProfileID: s.profileID, DeckID: otherDeck})
	s.Require().NoError(err)
	s.Assert().Equal(1, n)
}

func (s *FlashcardRepositorySuite) TestInsertBatch() {
	ctx := context.Background()
	cards := make([]models.Flashcard, 450)
	for i := range cards {
		cards[i] = models.NewFlashcard(s.deckID, fmt.Sprintf("front %d", i), "back", testNow)
	}

	n, err := s.repo.InsertBatch(ctx, cards)
	s.Require().NoError(err)
	s.Assert().Equal(450, n)

	count, err := s.repo.Count(ctx, models.FlashcardFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Assert().Equal(450, count)
}

func (s *FlashcardRepositorySuite) TestInsertBatchIsAllOrNothing() {
	ctx := context.Background()
	cards := []models.Flashcard{
		models.NewFlashcard(s.deckID, "ok", "back", testNow),
		models.NewFlashcard(s.deckID+999, "orphan", "back", testNow),
	}

	_, err := s.repo.InsertBatch(ctx, cards)
	s.Require().Error(err)

	count, err := s.repo.Count(ctx, models.FlashcardFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func (s *FlashcardRepositorySuite) TestUpdateReviewWritesStateAndHistory() {
	ctx := context.Background()
	id := s.insert("Chile", nil)
	card, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)

	next, err := srs.ScheduleSM2(card.ReviewState(), srs.QualityPerfect, testNow)
	s.Require().NoError(err)
	updated := *card
	updated.ApplyState(next)
	updated.LastReviewedAt = &testNow
	updated.TimesReviewed = 1
	updated.TimesCorrect = 1
	q := 5
	history := models.ReviewHistory{
		FlashcardID:  id,
		Mode:         models.ReviewModeQuality,
		Quality:      &q,
		IsCorrect:    true,
		TimeSeconds:  4.5,
		PrevInterval: card.IntervalDays,
		NewInterval:  next.Interval,
		PrevEase:     card.EaseFactor,
		NewEase:      next.EaseFactor,
		ReviewedAt:   testNow,
	}

	s.Require().NoError(s.repo.UpdateReview(ctx, updated, card.Version, history))

	stored, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), stored.Version)
	s.Assert().InDelta(2.6, stored.EaseFactor, 1e-9)
	s.Assert().Equal(1, stored.Repetitions)
	s.Assert().Equal(1, stored.TimesCorrect)
	s.Require().NotNil(stored.LastReviewedAt)
	s.Assert().True(testNow.Equal(*stored.LastReviewedAt))
	s.Assert().True(testNow.AddDate(0, 0, 1).Equal(stored.NextReviewAt))

	hist, err := s.repo.History(ctx, id, 10)
	s.Require().NoError(err)
	s.Require().Len(hist, 1)
	s.Assert().Equal(models.ReviewModeQuality, hist[0].Mode)
	s.Require().NotNil(hist[0].Quality)
	s.Assert().Equal(5, *hist[0].Quality)
	s.Assert().Nil(hist[0].Confidence)
	s.Assert().InDelta(4.5, hist[0].TimeSeconds, 1e-9)
}

func (s *FlashcardRepositorySuite) TestUpdateReviewVersionConflict() {
	ctx := context.Background()
	id := s.insert("Japan", nil)
	card, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)

	conf := 0.8
	history := models.ReviewHistory{
		FlashcardID: id, Mode: models.ReviewModeConfidence, IsCorrect: true, Confidence: &conf,
		PrevInterval: 1, NewInterval: 2, PrevEase: 2.5, NewEase: 2.58, ReviewedAt: testNow,
	}
	s.Require().NoError(s.repo.UpdateReview(ctx, *card, card.Version, history))

	err = s.repo.UpdateReview(ctx, *card, card.Version, history)
	s.Assert().ErrorIs(err, repository.ErrVersionConflict)

	hist, err := s.repo.History(ctx, id, 0)
	s.Require().NoError(err)
	s.Assert().Len(hist, 1)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}

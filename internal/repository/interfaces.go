package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

var (
	// ErrVersionConflict is returned when a row changed between read and write.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("repository: duplicate")
)

// Lookups return (nil, nil) when the row does not exist or is not visible
// to the given profile.

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64, profileID int64) (*models.Deck, error)
	List(ctx context.Context, profileID int64) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Delete(ctx context.Context, id int64, profileID int64) (bool, error)
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Get(ctx context.Context, id int64, profileID int64) (*models.Flashcard, error)
	List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error)
	Count(ctx context.Context, filter models.FlashcardFilter) (int, error)
	Insert(ctx context.Context, card models.Flashcard) (int64, error)
	InsertBatch(ctx context.Context, cards []models.Flashcard) (int, error)
	Delete(ctx context.Context, id int64, profileID int64) (bool, error)
	// UpdateReview stores the card's new review state and appends history in
	// one transaction. It fails with ErrVersionConflict unless the stored
	// version equals expectedVersion; on success the stored version is bumped.
	UpdateReview(ctx context.Context, card models.Flashcard, expectedVersion int64, history models.ReviewHistory) error
	History(ctx context.Context, flashcardID int64, limit int) ([]models.ReviewHistory, error)
}

// StatsRepository handles statistics data access
type StatsRepository interface {
	FlashcardStats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error)
	PhaseStats(ctx context.Context, profileID int64) ([]models.PhaseStat, error)
	QualityDistribution(ctx context.Context, profileID int64) ([]models.QualityCount, error)
	ReviewActivity(ctx context.Context, profileID int64, since time.Time) ([]models.ActivityDay, error)
}

package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/srs"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxCardTextBytes = 4096
)

// ReviewInput is one answer to a card.
type ReviewInput struct {
	Outcome     srs.Outcome
	TimeSeconds float64
	// ExpectedVersion is the card version the client last saw. Zero skips
	// the check against the client's copy; the write itself is still
	// guarded against concurrent reviews.
	ExpectedVersion int64
}

type ReviewResult struct {
	Card     models.Flashcard `json:"card"`
	Previous srs.ReviewState  `json:"previous"`
	Phase    srs.Phase        `json:"phase"`
	Correct  bool             `json:"correct"`
}

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	CreateFlashcard(ctx context.Context, profileID, deckID int64, front, back string) (*models.Flashcard, error)
	GetFlashcard(ctx context.Context, profileID, id int64) (*models.Flashcard, error)
	ListFlashcards(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, int, error)
	DeleteFlashcard(ctx context.Context, profileID, id int64) error
	ReviewHistory(ctx context.Context, profileID, id int64, limit int) ([]models.ReviewHistory, error)
	Review(ctx context.Context, profileID, id int64, in ReviewInput) (*ReviewResult, error)
}

type flashcardService struct {
	cardRepo repository.FlashcardRepository
	deckRepo repository.DeckRepository
	now      Clock
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(cardRepo repository.FlashcardRepository, deckRepo repository.DeckRepository, clock Clock) FlashcardService {
	return &flashcardService{cardRepo: cardRepo, deckRepo: deckRepo, now: orSystem(clock)}
}

func validateCardText(field, s string) (string, *errors.AppError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.NewValidationError(field, "cannot be empty")
	}
	if len(s) > maxCardTextBytes {
		return "", errors.NewValidationError(field, "too long")
	}
	return s, nil
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, profileID, deckID int64, front, back string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: profile_id=%d, deck_id=%d", profileID, deckID)

	front, verr := validateCardText("front", front)
	if verr != nil {
		return nil, verr
	}
	back, verr = validateCardText("back", back)
	if verr != nil {
		return nil, verr
	}

	deck, err := s.deckRepo.Get(ctx, deckID, profileID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	card := models.NewFlashcard(deckID, front, back, s.now())
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.GetFlashcard(ctx, profileID, id)
}

func (s *flashcardService) GetFlashcard(ctx context.Context, profileID, id int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting flashcard: id=%d, profile_id=%d", id, profileID)

	card, err := s.cardRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing flashcards: profile_id=%d, deck_id=%d", filter.ProfileID, filter.DeckID)

	if filter.Phase != "" && !filter.Phase.IsValid() {
		return nil, 0, errors.NewValidationError("phase", "must be learning or reviewing")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	filter.Limit = min(filter.Limit, maxListLimit)
	filter.Offset = max(filter.Offset, 0)

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return cards, total, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, profileID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: id=%d, profile_id=%d", id, profileID)

	ok, err := s.cardRepo.Delete(ctx, id, profileID)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("flashcard", id)
	}
	return nil
}

func (s *flashcardService) ReviewHistory(ctx context.Context, profileID, id int64, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx)

	if _, err := s.GetFlashcard(ctx, profileID, id); err != nil {
		return nil, err
	}
	history, err := s.cardRepo.History(ctx, id, limit)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

// Review schedules the card from the given outcome and stores the new state
// together with a history entry.
func (s *flashcardService) Review(ctx context.Context, profileID, id int64, in ReviewInput) (*ReviewResult, error) {
	log := logger.FromContext(ctx).WithField("flashcard_id", id)
	log.Debug("reviewing flashcard: outcome=%v", in.Outcome)

	if in.TimeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	card, err := s.GetFlashcard(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if in.ExpectedVersion != 0 && in.ExpectedVersion != card.Version {
		log.Debug("stale version: expected=%d, stored=%d", in.ExpectedVersion, card.Version)
		return nil, errors.NewConflictError("flashcard", id, repository.ErrVersionConflict)
	}

	now := s.now()
	prev := card.ReviewState()
	next, err := srs.ScheduleNextReview(&prev, in.Outcome, now)
	if err != nil {
		return nil, outcomeError(err)
	}

	correct := outcomeCorrect(in.Outcome)
	updated := *card
	updated.ApplyState(next)
	updated.LastReviewedAt = &now
	updated.TimesReviewed++
	if correct {
		updated.TimesCorrect++
	}

	history := models.ReviewHistory{
		FlashcardID:  id,
		IsCorrect:    correct,
		TimeSeconds:  in.TimeSeconds,
		PrevInterval: prev.Interval,
		NewInterval:  next.Interval,
		PrevEase:     prev.EaseFactor,
		NewEase:      next.EaseFactor,
		ReviewedAt:   now,
	}
	switch o := in.Outcome.(type) {
	case srs.Quality:
		q := int(o)
		history.Mode = models.ReviewModeQuality
		history.Quality = &q
	case srs.CorrectnessConfidence:
		c := o.Confidence
		history.Mode = models.ReviewModeConfidence
		history.Confidence = &c
	}

	err = s.cardRepo.UpdateReview(ctx, updated, card.Version, history)
	if stderrors.Is(err, repository.ErrVersionConflict) {
		return nil, errors.NewConflictError("flashcard", id, err)
	}
	if err != nil {
		log.Error("failed to store review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	updated.Version = card.Version + 1

	log.Debug("review stored: interval=%d, ease=%.2f, reps=%d", next.Interval, next.EaseFactor, next.Repetitions)
	return &ReviewResult{Card: updated, Previous: prev, Phase: next.Phase(), Correct: correct}, nil
}

func outcomeCorrect(o srs.Outcome) bool {
	switch o := o.(type) {
	case srs.Quality:
		return o.Passed()
	case srs.CorrectnessConfidence:
		return o.IsCorrect
	}
	return false
}

func outcomeError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, srs.ErrInvalidQuality):
		return errors.WrapValidationError("quality", err)
	case stderrors.Is(err, srs.ErrInvalidConfidence):
		return errors.WrapValidationError("confidence", err)
	case stderrors.Is(err, srs.ErrUnknownOutcome):
		return errors.WrapValidationError("outcome", err)
	}
	return errors.NewInternalError(err)
}

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/srs"
)

// SessionService plans study sessions. Sessions are not stored; the returned
// ID only correlates the reviews a client submits for one sitting.
type SessionService interface {
	Start(ctx context.Context, profileID, deckID int64, preference int) (*models.StudySession, error)
}

type sessionService struct {
	cardRepo    repository.FlashcardRepository
	deckRepo    repository.DeckRepository
	defaultSize int
	maxSize     int
	now         Clock
}

// NewSessionService creates a new SessionService. defaultSize applies when
// the caller states no preference; maxSize caps every session.
func NewSessionService(cardRepo repository.FlashcardRepository, deckRepo repository.DeckRepository, defaultSize, maxSize int, clock Clock) SessionService {
	return &sessionService{
		cardRepo:    cardRepo,
		deckRepo:    deckRepo,
		defaultSize: defaultSize,
		maxSize:     maxSize,
		now:         orSystem(clock),
	}
}

func (s *sessionService) Start(ctx context.Context, profileID, deckID int64, preference int) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: profile_id=%d, deck_id=%d, preference=%d", profileID, deckID, preference)

	if preference < 0 {
		return nil, errors.NewValidationError("size_preference", "cannot be negative")
	}
	if preference == 0 {
		preference = s.defaultSize
	}

	if deckID != 0 {
		deck, err := s.deckRepo.Get(ctx, deckID, profileID)
		if err != nil {
			log.Error("failed to get deck: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if deck == nil {
			return nil, errors.NewNotFoundError("deck", deckID)
		}
	}

	now := s.now()
	filter := models.FlashcardFilter{ProfileID: profileID, DeckID: deckID, DueBefore: &now}
	totalDue, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	size := srs.CalculateOptimalSessionSize(totalDue, preference, s.maxSize)
	var cards []models.Flashcard
	if totalDue > 0 {
		filter.Limit = size
		cards, err = s.cardRepo.List(ctx, filter)
		if err != nil {
			log.Error("failed to list due cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	session := &models.StudySession{
		ID:        uuid.NewString(),
		DeckID:    deckID,
		TotalDue:  totalDue,
		Size:      size,
		Cards:     cards,
		CardIDs:   lo.Map(cards, func(c models.Flashcard, _ int) int64 { return c.ID }),
		StartedAt: now,
	}
	log.Info("session %s planned: due=%d, size=%d, cards=%d", session.ID, totalDue, size, len(cards))
	return session, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// MaxImportCards bounds a single import batch.
const MaxImportCards = 1000

// ImportService handles bulk card import
type ImportService interface {
	// PrepareCards validates a batch and returns it trimmed, with repeated
	// fronts dropped. It touches no storage.
	PrepareCards(cards []models.CardInput) ([]models.CardInput, error)
	// ImportCards stores a batch as new cards, due immediately.
	ImportCards(ctx context.Context, profileID, deckID int64, cards []models.CardInput) (int, error)
}

type importService struct {
	cardRepo repository.FlashcardRepository
	deckRepo repository.DeckRepository
	now      Clock
}

// NewImportService creates a new ImportService
func NewImportService(cardRepo repository.FlashcardRepository, deckRepo repository.DeckRepository, clock Clock) ImportService {
	return &importService{cardRepo: cardRepo, deckRepo: deckRepo, now: orSystem(clock)}
}

func (s *importService) PrepareCards(cards []models.CardInput) ([]models.CardInput, error) {
	if len(cards) == 0 {
		return nil, errors.NewValidationError("cards", "cannot be empty")
	}
	if len(cards) > MaxImportCards {
		return nil, errors.NewValidationError("cards", fmt.Sprintf("at most %d per import", MaxImportCards))
	}

	out := make([]models.CardInput, 0, len(cards))
	for i, c := range cards {
		front, verr := validateCardText(fmt.Sprintf("cards[%d].front", i), c.Front)
		if verr != nil {
			return nil, verr
		}
		back, verr := validateCardText(fmt.Sprintf("cards[%d].back", i), c.Back)
		if verr != nil {
			return nil, verr
		}
		out = append(out, models.CardInput{Front: front, Back: back})
	}
	return lo.UniqBy(out, func(c models.CardInput) string { return c.Front }), nil
}

func (s *importService) ImportCards(ctx context.Context, profileID, deckID int64, cards []models.CardInput) (int, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": profileID,
		"deck_id":    deckID,
	})
	log.Info("importing %d cards", len(cards))

	cards, err := s.PrepareCards(cards)
	if err != nil {
		return 0, err
	}

	deck, err := s.deckRepo.Get(ctx, deckID, profileID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if deck == nil {
		return 0, errors.NewNotFoundError("deck", deckID)
	}

	now := s.now()
	batch := lo.Map(cards, func(c models.CardInput, _ int) models.Flashcard {
		return models.NewFlashcard(deckID, c.Front, c.Back, now)
	})
	n, err := s.cardRepo.InsertBatch(ctx, batch)
	if err != nil {
		log.Error("failed to insert cards: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("imported %d cards", n)
	return n, nil
}

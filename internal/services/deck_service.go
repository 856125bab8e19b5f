package services

import (
	"context"
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

const maxDeckNameLength = 120

// DeckService handles deck-related business logic
type DeckService interface {
	ListDecks(ctx context.Context, profileID int64) ([]models.Deck, error)
	CreateDeck(ctx context.Context, profileID int64, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, profileID, id int64) (*models.Deck, error)
	DeleteDeck(ctx context.Context, profileID, id int64) error
}

type deckService struct {
	deckRepo repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository) DeckService {
	return &deckService{deckRepo: deckRepo}
}

func (s *deckService) ListDecks(ctx context.Context, profileID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: profile_id=%d", profileID)

	decks, err := s.deckRepo.List(ctx, profileID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) CreateDeck(ctx context.Context, profileID int64, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	name = strings.TrimSpace(name)
	log.Debug("creating deck: profile_id=%d, name=%s", profileID, name)

	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxDeckNameLength {
		return nil, errors.NewValidationError("name", "too long")
	}

	id, err := s.deckRepo.Insert(ctx, models.Deck{
		ProfileID:   profileID,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
	if stderrors.Is(err, repository.ErrDuplicate) {
		return nil, errors.NewDuplicateError("deck", name)
	}
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.GetDeck(ctx, profileID, id)
}

func (s *deckService) GetDeck(ctx context.Context, profileID, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d, profile_id=%d", id, profileID)

	deck, err := s.deckRepo.Get(ctx, id, profileID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, profileID, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d, profile_id=%d", id, profileID)

	ok, err := s.deckRepo.Delete(ctx, id, profileID)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("deck", id)
	}
	return nil
}

package worker

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// CardImporter stores a batch of cards in a deck.
// This avoids import cycles by not importing the services package
type CardImporter interface {
	ImportCards(ctx context.Context, profileID, deckID int64, cards []models.CardInput) (int, error)
}

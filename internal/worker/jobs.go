package worker

import (
	"context"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
)

// ImportCardsJob adds a batch of cards to a deck in the background.
type ImportCardsJob struct {
	Importer  CardImporter
	ProfileID int64
	DeckID    int64
	Cards     []models.CardInput
}

func (j *ImportCardsJob) Name() string { return "import_cards" }

func (j *ImportCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": j.ProfileID,
		"deck_id":    j.DeckID,
	})
	log.Info("starting background import of %d cards", len(j.Cards))

	n, err := j.Importer.ImportCards(ctx, j.ProfileID, j.DeckID, j.Cards)
	if err != nil {
		log.Error("import failed: %v", err)
		return err
	}

	log.Info("import finished: %d cards added", n)
	return nil
}

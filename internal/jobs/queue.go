package jobs

import "github.com/vytor/studyflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueImport schedules a card import without waiting for a free
	// worker. It fails with worker.ErrQueueFull when the queue is saturated.
	EnqueueImport(profileID, deckID int64, cards []models.CardInput) error
}

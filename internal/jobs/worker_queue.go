package jobs

import (
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.CardImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.CardImporter) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
	}
}

func (q *WorkerQueue) EnqueueImport(profileID, deckID int64, cards []models.CardInput) error {
	return q.importPool.Submit(&worker.ImportCardsJob{
		Importer:  q.importer,
		ProfileID: profileID,
		DeckID:    deckID,
		Cards:     cards,
	})
}

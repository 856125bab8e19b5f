package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/worker"
)

type chanImporter chan []models.CardInput

func (c chanImporter) ImportCards(_ context.Context, _, _ int64, cards []models.CardInput) (int, error) {
	c <- cards
	return len(cards), nil
}

func TestWorkerQueue_EnqueueImportRunsJob(t *testing.T) {
	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	defer pool.Stop()

	done := make(chanImporter, 1)
	q := jobs.NewWorkerQueue(pool, done)

	require.NoError(t, q.EnqueueImport(1, 2, []models.CardInput{{Front: "a", Back: "b"}}))
	assert.Len(t, <-done, 1)
}

func TestWorkerQueue_EnqueueImportFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	q := jobs.NewWorkerQueue(pool, make(chanImporter, 1))

	require.NoError(t, q.EnqueueImport(1, 2, nil))
	assert.ErrorIs(t, q.EnqueueImport(1, 2, nil), worker.ErrQueueFull)
}

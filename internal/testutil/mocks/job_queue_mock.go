package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(profileID, deckID int64, cards []models.CardInput) error {
	args := m.Called(profileID, deckID, cards)
	return args.Error(0)
}

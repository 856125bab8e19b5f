package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id int64, profileID int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Count(ctx context.Context, filter models.FlashcardFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockFlashcardRepository) Insert(ctx context.Context, card models.Flashcard) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) (int, error) {
	args := m.Called(ctx, cards)
	return args.Int(0), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id int64, profileID int64) (bool, error) {
	args := m.Called(ctx, id, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlashcardRepository) UpdateReview(ctx context.Context, card models.Flashcard, expectedVersion int64, history models.ReviewHistory) error {
	args := m.Called(ctx, card, expectedVersion, history)
	return args.Error(0)
}

func (m *MockFlashcardRepository) History(ctx context.Context, flashcardID int64, limit int) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, flashcardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Get(ctx context.Context, id int64, profileID int64) (*models.Deck, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckRepository) List(ctx context.Context, profileID int64) ([]models.Deck, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deck), args.Error(1)
}

func (m *MockDeckRepository) Insert(ctx context.Context, deck models.Deck) (int64, error) {
	args := m.Called(ctx, deck)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id int64, profileID int64) (bool, error) {
	args := m.Called(ctx, id, profileID)
	return args.Bool(0), args.Error(1)
}

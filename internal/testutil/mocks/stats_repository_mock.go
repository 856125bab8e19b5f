package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/studyflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) FlashcardStats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error) {
	args := m.Called(ctx, profileID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardStat), args.Error(1)
}

func (m *MockStatsRepository) PhaseStats(ctx context.Context, profileID int64) ([]models.PhaseStat, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PhaseStat), args.Error(1)
}

func (m *MockStatsRepository) QualityDistribution(ctx context.Context, profileID int64) ([]models.QualityCount, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QualityCount), args.Error(1)
}

func (m *MockStatsRepository) ReviewActivity(ctx context.Context, profileID int64, since time.Time) ([]models.ActivityDay, error) {
	args := m.Called(ctx, profileID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActivityDay), args.Error(1)
}

package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

func TestStatsService_OverviewFillsGaps(t *testing.T) {
	repo := new(mocks.MockStatsRepository)
	repo.On("FlashcardStats", mock.Anything, int64(1), now).Return(&models.FlashcardStat{TotalCards: 3}, nil)
	repo.On("PhaseStats", mock.Anything, int64(1)).Return(nil, nil)
	repo.On("QualityDistribution", mock.Anything, int64(1)).
		Return([]models.QualityCount{{Quality: 4, Count: 7}}, nil)
	repo.On("ReviewActivity", mock.Anything, int64(1), mock.Anything).
		Return([]models.ActivityDay{{Day: "2026-03-10", Reviews: 5, Correct: 4}}, nil)

	out, err := services.NewStatsService(repo, testutil.FixedClock(now)).Overview(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, out.Summary.TotalCards)
	assert.NotNil(t, out.Phases)

	require.Len(t, out.Quality, 6)
	assert.Equal(t, 7, out.Quality[4].Count)
	assert.Zero(t, out.Quality[0].Count)
	assert.Equal(t, "Perfect recall", out.Quality[5].Description)

	require.Len(t, out.Activity, services.ActivityDays)
	assert.Equal(t, "2026-02-25", out.Activity[0].Day)
	assert.Equal(t, "2026-03-10", out.Activity[13].Day)
	assert.Equal(t, 5, out.Activity[13].Reviews)
}

func TestStatsService_OverviewFailure(t *testing.T) {
	repo := new(mocks.MockStatsRepository)
	repo.On("FlashcardStats", mock.Anything, int64(1), now).Return(nil, stderrors.New("boom"))
	repo.On("PhaseStats", mock.Anything, int64(1)).Return(nil, nil)
	repo.On("QualityDistribution", mock.Anything, int64(1)).Return(nil, nil)
	repo.On("ReviewActivity", mock.Anything, int64(1), mock.Anything).Return(nil, nil)

	_, err := services.NewStatsService(repo, testutil.FixedClock(now)).Overview(context.Background(), 1)

	assert.Equal(t, errors.ErrCodeInternal, appCode(t, err))
}

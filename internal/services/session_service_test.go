package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

func dueFilter(limit int) models.FlashcardFilter {
	return models.FlashcardFilter{ProfileID: 1, DueBefore: &now, Limit: limit}
}

func TestSessionService_StartSizesFromDueCount(t *testing.T) {
	cards := new(mocks.MockFlashcardRepository)
	cards.On("Count", mock.Anything, dueFilter(0)).Return(100, nil)
	cards.On("List", mock.Anything, dueFilter(30)).Return([]models.Flashcard{*newCard(4), *newCard(9)}, nil)
	svc := services.NewSessionService(cards, nil, 20, 50, testutil.FixedClock(now))

	session, err := svc.Start(context.Background(), 1, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 100, session.TotalDue)
	assert.Equal(t, 30, session.Size)
	assert.Equal(t, []int64{4, 9}, session.CardIDs)
	assert.True(t, now.Equal(session.StartedAt))
	_, err = uuid.Parse(session.ID)
	assert.NoError(t, err)
	cards.AssertExpectations(t)
}

func TestSessionService_StartWithNothingDue(t *testing.T) {
	cards := new(mocks.MockFlashcardRepository)
	cards.On("Count", mock.Anything, dueFilter(0)).Return(0, nil)
	svc := services.NewSessionService(cards, nil, 20, 50, testutil.FixedClock(now))

	session, err := svc.Start(context.Background(), 1, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 10, session.Size)
	assert.Empty(t, session.Cards)
	assert.NotNil(t, session.Cards)
	cards.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSessionService_StartUnknownDeck(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	decks.On("Get", mock.Anything, int64(3), int64(1)).Return(nil, nil)
	svc := services.NewSessionService(new(mocks.MockFlashcardRepository), decks, 20, 50, testutil.FixedClock(now))

	_, err := svc.Start(context.Background(), 1, 3, 0)

	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestSessionService_StartRejectsNegativePreference(t *testing.T) {
	svc := services.NewSessionService(new(mocks.MockFlashcardRepository), nil, 20, 50, testutil.FixedClock(now))

	_, err := svc.Start(context.Background(), 1, 0, -5)

	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))
}

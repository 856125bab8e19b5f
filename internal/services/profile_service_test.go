package services_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/testutil/mocks"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return errors.AsAppError(err).Code
}

func TestProfileService_CreateTrimsUsername(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Upsert", mock.Anything, "alice").Return(&models.Profile{ID: 1, Username: "alice"}, nil)

	p, err := services.NewProfileService(repo).CreateProfile(context.Background(), "  alice ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateRejectsBadUsernames(t *testing.T) {
	svc := services.NewProfileService(new(mocks.MockProfileRepository))

	for _, name := range []string{"", "   ", strings.Repeat("x", 65)} {
		_, err := svc.CreateProfile(context.Background(), name)
		assert.Equal(t, errors.ErrCodeValidation, appCode(t, err), "username %q", name)
	}
}

func TestProfileService_GetMissing(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Get", mock.Anything, int64(9)).Return(nil, nil)

	_, err := services.NewProfileService(repo).GetProfile(context.Background(), 9)

	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestProfileService_GetRepositoryFailure(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Get", mock.Anything, int64(9)).Return(nil, stderrors.New("db down"))

	_, err := services.NewProfileService(repo).GetProfile(context.Background(), 9)

	assert.Equal(t, errors.ErrCodeInternal, appCode(t, err))
}

func TestProfileService_Delete(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Delete", mock.Anything, int64(1)).Return(true, nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(false, nil)
	svc := services.NewProfileService(repo)

	assert.NoError(t, svc.DeleteProfile(context.Background(), 1))
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, svc.DeleteProfile(context.Background(), 2)))
}

package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/studyflash/internal/srs"
)

func TestQualityDescriptions(t *testing.T) {
	labels := srs.QualityDescriptions()

	assert.Len(t, labels, 6)
	for i, l := range labels {
		assert.Equal(t, i, l.Quality)
		assert.NotEmpty(t, l.Description)
	}
	assert.Equal(t, "Complete blackout", srs.QualityBlackout.Description())
	assert.Equal(t, "Perfect recall", srs.QualityPerfect.Description())
}

func TestQuality_Passed(t *testing.T) {
	for q := srs.Quality(0); q <= 5; q++ {
		assert.Equal(t, q >= 3, q.Passed(), "quality %d", int(q))
	}
}

func TestQuality_InvalidDescription(t *testing.T) {
	assert.Equal(t, "Quality(9)", srs.Quality(9).Description())
	assert.False(t, srs.Quality(-1).IsValid())
}

func TestReviewState_Phase(t *testing.T) {
	assert.Equal(t, srs.Learning, srs.DefaultState().Phase())
	assert.Equal(t, srs.Learning, srs.ReviewState{Repetitions: 1}.Phase())
	assert.Equal(t, srs.Reviewing, srs.ReviewState{Repetitions: 2}.Phase())
}

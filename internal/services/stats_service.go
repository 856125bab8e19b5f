package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/srs"
	"golang.org/x/sync/errgroup"
)

// ActivityDays is the length of the activity window in Overview, today included.
const ActivityDays = 14

// StatsService handles statistics-related business logic
type StatsService interface {
	Overview(ctx context.Context, profileID int64) (*models.StatsOverview, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	now       Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, clock Clock) StatsService {
	return &statsService{statsRepo: statsRepo, now: orSystem(clock)}
}

func (s *statsService) Overview(ctx context.Context, profileID int64) (*models.StatsOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("building stats overview: profile_id=%d", profileID)

	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(ActivityDays - 1))

	var out models.StatsOverview
	var dist []models.QualityCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Summary, err = s.statsRepo.FlashcardStats(gctx, profileID, now)
		return err
	})
	g.Go(func() (err error) {
		out.Phases, err = s.statsRepo.PhaseStats(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		dist, err = s.statsRepo.QualityDistribution(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		out.Activity, err = s.statsRepo.ReviewActivity(gctx, profileID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to build stats overview: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out.Quality = fillQualities(dist)
	out.Activity = fillActivity(out.Activity, since)
	if out.Phases == nil {
		out.Phases = []models.PhaseStat{}
	}
	return &out, nil
}

// fillQualities returns one entry per grade 0..5, zero where none were given.
func fillQualities(counts []models.QualityCount) []models.QualityCount {
	byQuality := lo.KeyBy(counts, func(c models.QualityCount) int { return c.Quality })
	return lo.Map(srs.QualityDescriptions(), func(l srs.QualityLabel, _ int) models.QualityCount {
		return models.QualityCount{
			Quality:     l.Quality,
			Description: l.Description,
			Count:       byQuality[l.Quality].Count,
		}
	})
}

// fillActivity returns one entry per day of the window, oldest first.
func fillActivity(days []models.ActivityDay, since time.Time) []models.ActivityDay {
	byDay := lo.KeyBy(days, func(d models.ActivityDay) string { return d.Day })
	out := make([]models.ActivityDay, ActivityDays)
	for i := range out {
		key := since.AddDate(0, 0, i).Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			d = models.ActivityDay{Day: key}
		}
		out[i] = d
	}
	return out
}

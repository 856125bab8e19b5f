package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/srs"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) FlashcardStats(ctx context.Context, profileID int64, now time.Time) (*models.FlashcardStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching flashcard stats: profile_id=%d", profileID)

	now = utc(now)
	soon := now.AddDate(0, 0, 7)

	var stat models.FlashcardStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(f.id) AS total_cards,
    COALESCE(SUM(f.times_reviewed), 0) AS total_reviews,
    COUNT(CASE WHEN f.ease_factor > 2.5 AND f.interval_days > 30 THEN f.id END) AS cards_mastered,
    COUNT(CASE WHEN f.ease_factor < 2.0 AND f.times_reviewed > 3 THEN f.id END) AS cards_struggling,
    COUNT(CASE WHEN f.next_review_at <= ? THEN f.id END) AS cards_due,
    COUNT(CASE WHEN f.next_review_at <= ? AND f.next_review_at > ? THEN f.id END) AS cards_due_soon,
    CASE
        WHEN SUM(f.times_reviewed) > 0
        THEN ROUND(100.0 * SUM(f.times_correct) / SUM(f.times_reviewed), 1)
        ELSE 0
    END AS overall_accuracy,
    COALESCE(AVG(f.ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(f.interval_days), 0) AS avg_interval_days
FROM flashcards f
JOIN decks d ON d.id = f.deck_id
WHERE d.profile_id = ?
`, now, soon, now, profileID).Scan(
		&stat.TotalCards,
		&stat.TotalReviews,
		&stat.CardsMastered,
		&stat.CardsStruggling,
		&stat.CardsDue,
		&stat.CardsDueSoon,
		&stat.OverallAccuracy,
		&stat.AvgEaseFactor,
		&stat.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get flashcard stats: %v", err)
		return nil, err
	}
	return &stat, nil
}

func (r *statsRepository) PhaseStats(ctx context.Context, profileID int64) ([]models.PhaseStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching phase stats: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT
    CASE WHEN f.repetitions < 2 THEN ? ELSE ? END AS phase,
    COUNT(f.id) AS total_cards,
    COALESCE(AVG(f.ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(f.interval_days), 0) AS avg_interval_days
FROM flashcards f
JOIN decks d ON d.id = f.deck_id
WHERE d.profile_id = ?
GROUP BY phase
ORDER BY phase
`, string(srs.Learning), string(srs.Reviewing), profileID)
	if err != nil {
		log.Error("failed to query phase stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.PhaseStat
	for rows.Next() {
		var s models.PhaseStat
		if err := rows.Scan(&s.Phase, &s.TotalCards, &s.AvgEaseFactor, &s.AvgInterval); err != nil {
			log.Error("failed to scan phase stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	log.Debug("found %d phase stats", len(stats))
	return stats, rows.Err()
}

// QualityDistribution counts graded reviews per quality, lowest first.
// Qualities never given are absent.
func (r *statsRepository) QualityDistribution(ctx context.Context, profileID int64) ([]models.QualityCount, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching quality distribution: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT h.quality, COUNT(*) AS cnt
FROM review_history h
JOIN flashcards f ON f.id = h.flashcard_id
JOIN decks d ON d.id = f.deck_id
WHERE d.profile_id = ? AND h.mode = ? AND h.quality IS NOT NULL
GROUP BY h.quality
ORDER BY h.quality
`, profileID, models.ReviewModeQuality)
	if err != nil {
		log.Error("failed to query quality distribution: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.QualityCount
	for rows.Next() {
		var qc models.QualityCount
		if err := rows.Scan(&qc.Quality, &qc.Count); err != nil {
			log.Error("failed to scan quality row: %v", err)
			return nil, err
		}
		qc.Description = srs.Quality(qc.Quality).Description()
		out = append(out, qc)
	}
	return out, rows.Err()
}

// ReviewActivity groups reviews since the given instant by UTC calendar day.
func (r *statsRepository) ReviewActivity(ctx context.Context, profileID int64, since time.Time) ([]models.ActivityDay, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching review activity: profile_id=%d, since=%s", profileID, since.Format(time.RFC3339))

	rows, err := r.db.QueryContext(ctx, `
SELECT
    substr(h.reviewed_at, 1, 10) AS day,
    COUNT(*) AS reviews,
    COALESCE(SUM(h.is_correct), 0) AS correct,
    COALESCE(AVG(h.time_seconds), 0) AS avg_time
FROM review_history h
JOIN flashcards f ON f.id = h.flashcard_id
JOIN decks d ON d.id = f.deck_id
WHERE d.profile_id = ? AND h.reviewed_at >= ?
GROUP BY day
ORDER BY day
`, profileID, utc(since))
	if err != nil {
		log.Error("failed to query review activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	var days []models.ActivityDay
	for rows.Next() {
		var d models.ActivityDay
		if err := rows.Scan(&d.Day, &d.Reviews, &d.Correct, &d.AvgTimeS); err != nil {
			log.Error("failed to scan activity row: %v", err)
			return nil, err
		}
		days = append(days, d)
	}
	log.Debug("found %d activity days", len(days))
	return days, rows.Err()
}

var _ repository.StatsRepository = (*statsRepository)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/srs"
)

// rows per INSERT statement in InsertBatch
const insertBatchSize = 200

var flashcardColumns = []string{
	"f.id", "f.deck_id", "f.front", "f.back", "f.ease_factor", "f.interval_days", "f.repetitions",
	"f.next_review_at", "f.last_reviewed_at", "f.times_reviewed", "f.times_correct", "f.version", "f.created_at",
}

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func scanFlashcard(row interface{ Scan(...any) error }, c *models.Flashcard) error {
	return row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.IntervalDays, &c.Repetitions,
		&c.NextReviewAt, &c.LastReviewedAt, &c.TimesReviewed, &c.TimesCorrect, &c.Version, &c.CreatedAt)
}

// scoped selects cards visible to a profile.
func scoped(query squirrel.SelectBuilder, profileID int64) squirrel.SelectBuilder {
	return query.From("flashcards f").
		Join("decks d ON d.id = f.deck_id").
		Where(squirrel.Eq{"d.profile_id": profileID})
}

func applyFilter(query squirrel.SelectBuilder, filter models.FlashcardFilter) squirrel.SelectBuilder {
	query = scoped(query, filter.ProfileID)
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"f.deck_id": filter.DeckID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"f.next_review_at": utc(*filter.DueBefore)})
	}
	switch filter.Phase {
	case srs.Learning:
		query = query.Where(squirrel.Lt{"f.repetitions": 2})
	case srs.Reviewing:
		query = query.Where(squirrel.GtOrEq{"f.repetitions": 2})
	}
	return query
}

func (r *flashcardRepository) Get(ctx context.Context, id int64, profileID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%d, profile_id=%d", id, profileID)

	query, args, err := scoped(sqlBuilder.Select(flashcardColumns...), profileID).
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var c models.Flashcard
	err = scanFlashcard(r.db.QueryRowContext(ctx, query, args...), &c)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

// List returns matching cards, most overdue first and hardest first on ties.
func (r *flashcardRepository) List(ctx context.Context, filter models.FlashcardFilter) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: profile_id=%d, deck_id=%d, phase=%s", filter.ProfileID, filter.DeckID, filter.Phase)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := max(filter.Offset, 0)

	query, args, err := applyFilter(sqlBuilder.Select(flashcardColumns...), filter).
		OrderBy("f.next_review_at ASC", "f.ease_factor ASC", "f.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := scanFlashcard(rows, &c); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) Count(ctx context.Context, filter models.FlashcardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	query, args, err := applyFilter(sqlBuilder.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Error("failed to count flashcards: %v", err)
		return 0, err
	}
	log.Debug("counted %d flashcards", n)
	return n, nil
}

func insertFlashcards(cards []models.Flashcard) squirrel.InsertBuilder {
	q := sqlBuilder.Insert("flashcards").Columns(
		"deck_id", "front", "back", "ease_factor", "interval_days", "repetitions",
		"next_review_at", "last_reviewed_at", "times_reviewed", "times_correct", "version",
	)
	for _, c := range cards {
		version := c.Version
		if version < 1 {
			version = 1
		}
		q = q.Values(c.DeckID, c.Front, c.Back, c.EaseFactor, c.IntervalDays, c.Repetitions,
			utc(c.NextReviewAt), utcPtr(c.LastReviewedAt), c.TimesReviewed, c.TimesCorrect, version)
	}
	return q
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: deck_id=%d", c.DeckID)

	res, err := insertFlashcards([]models.Flashcard{c}).RunWith(r.db).ExecContext(ctx)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get flashcard id: %v", err)
		return 0, err
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, nil
}

// InsertBatch inserts all cards or none.
func (r *flashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	if len(cards) == 0 {
		return 0, nil
	}
	log.Debug("batch inserting %d flashcards", len(cards))

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for start := 0; start < len(cards); start += insertBatchSize {
			chunk := cards[start:min(start+insertBatchSize, len(cards))]
			query, args, err := insertFlashcards(chunk).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
			inserted += len(chunk)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to batch insert flashcards: %v", err)
		return 0, err
	}
	log.Debug("batch inserted %d flashcards", inserted)
	return inserted, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id int64, profileID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM flashcards
WHERE id = ? AND deck_id IN (SELECT id FROM decks WHERE profile_id = ?)
`, id, profileID)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return false, err
	}
	return affected(res)
}

func (r *flashcardRepository) UpdateReview(ctx context.Context, c models.Flashcard, expectedVersion int64, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard review: id=%d, version=%d, interval=%d, ease=%.2f",
		c.ID, expectedVersion, c.IntervalDays, c.EaseFactor)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE flashcards
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review_at = ?, last_reviewed_at = ?,
    times_reviewed = ?, times_correct = ?, version = version + 1
WHERE id = ? AND version = ?
`, c.EaseFactor, c.IntervalDays, c.Repetitions, utc(c.NextReviewAt), utcPtr(c.LastReviewedAt),
			c.TimesReviewed, c.TimesCorrect, c.ID, expectedVersion)
		if err != nil {
			log.Error("failed to update flashcard: %v", err)
			return err
		}
		ok, err := affected(res)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn("flashcard %d changed since version %d", c.ID, expectedVersion)
			return repository.ErrVersionConflict
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO review_history (flashcard_id, mode, quality, is_correct, confidence, time_seconds,
                            prev_interval, new_interval, prev_ease, new_ease, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, h.Mode, h.Quality, h.IsCorrect, h.Confidence, h.TimeSeconds,
			h.PrevInterval, h.NewInterval, h.PrevEase, h.NewEase, utc(h.ReviewedAt))
		if err != nil {
			log.Error("failed to insert review history: %v", err)
		}
		return err
	})
}

func (r *flashcardRepository) History(ctx context.Context, flashcardID int64, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("fetching review history: flashcard_id=%d", flashcardID)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, flashcard_id, mode, quality, is_correct, confidence, time_seconds,
       prev_interval, new_interval, prev_ease, new_ease, reviewed_at
FROM review_history
WHERE flashcard_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, flashcardID, limit)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ReviewHistory
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.FlashcardID, &h.Mode, &h.Quality, &h.IsCorrect, &h.Confidence, &h.TimeSeconds,
			&h.PrevInterval, &h.NewInterval, &h.PrevEase, &h.NewEase, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

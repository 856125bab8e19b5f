package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

const deckColumns = `
SELECT d.id, d.profile_id, d.name, d.description, d.created_at,
       (SELECT COUNT(*) FROM flashcards f WHERE f.deck_id = d.id) AS card_count
FROM decks d`

func scanDeck(row interface{ Scan(...any) error }, d *models.Deck) error {
	return row.Scan(&d.ID, &d.ProfileID, &d.Name, &d.Description, &d.CreatedAt, &d.CardCount)
}

func (r *deckRepository) Get(ctx context.Context, id int64, profileID int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d, profile_id=%d", id, profileID)

	var d models.Deck
	err := scanDeck(r.db.QueryRowContext(ctx, deckColumns+` WHERE d.id = ? AND d.profile_id = ?`, id, profileID), &d)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, profileID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, deckColumns+` WHERE d.profile_id = ? ORDER BY d.name ASC`, profileID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := scanDeck(rows, &d); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: profile_id=%d, name=%s", d.ProfileID, d.Name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO decks (profile_id, name, description) VALUES (?, ?, ?)`,
		d.ProfileID, d.Name, d.Description)
	if isUniqueViolation(err) {
		log.Debug("deck name already taken: %s", d.Name)
		return 0, repository.ErrDuplicate
	}
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64, profileID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d, profile_id=%d", id, profileID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return false, err
	}
	return affected(res)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
INSERT INTO profiles (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING id, username, created_at
`, username).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, created_at
FROM profiles
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.getWhere(ctx, "username = ?", username)
}

func (r *profileRepository) getWhere(ctx context.Context, cond string, arg any) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: %s %v", cond, arg)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `SELECT id, username, created_at FROM profiles WHERE `+cond, arg).
		Scan(&p.ID, &p.Username, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: %v", arg)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile; decks, cards and history go with it through
// ON DELETE CASCADE.
func (r *profileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile %d: %v", id, err)
		return false, err
	}
	return affected(res)
}

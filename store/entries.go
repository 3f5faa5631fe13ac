package store

import (
	"context"
	"time"

	"journal-service/models"

	"github.com/google/uuid"
)

// ListEntries returns a user's entries ordered by date, optionally bounded
// by an inclusive [from, to] date range.
func (s *Store) ListEntries(ctx context.Context, userID, from, to string) ([]models.Entry, error) {
	query := `SELECT id, user_id, date_key, mood, title, note, weather, created_at, updated_at
		FROM entries WHERE user_id = ?`
	args := []interface{}{userID}

	if from != "" {
		query += ` AND date_key >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date_key <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date_key`

	entries := []models.Entry{}
	err := s.db.SelectContext(ctx, &entries, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertEntry inserts or overwrites the entry for (user_id, date_key).
// Last write wins per key; absent optional fields become NULL.
func (s *Store) UpsertEntry(ctx context.Context, req models.UpsertEntryRequest) (*models.Entry, error) {
	now := time.Now().UTC()

	// An absent weather field and an explicit JSON null both land as NULL.
	var weather interface{}
	if len(req.Weather) > 0 && string(req.Weather) != "null" {
		weather = []byte(req.Weather)
	}

	query := s.db.Rebind(`INSERT INTO entries (id, user_id, date_key, mood, title, note, weather, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date_key) DO UPDATE SET
			mood = excluded.mood,
			title = excluded.title,
			note = excluded.note,
			weather = excluded.weather,
			updated_at = excluded.updated_at`)
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(), req.UserID, req.DateKey, req.Mood, req.Title, req.Note, weather, now, now)
	if err != nil {
		return nil, err
	}

	var entry models.Entry
	query = s.db.Rebind(`SELECT id, user_id, date_key, mood, title, note, weather, created_at, updated_at
		FROM entries WHERE user_id = ? AND date_key = ?`)
	if err := s.db.GetContext(ctx, &entry, query, req.UserID, req.DateKey); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry for (user_id, date). Deleting a missing
// entry is a no-op.
func (s *Store) DeleteEntry(ctx context.Context, userID, date string) error {
	query := s.db.Rebind(`DELETE FROM entries WHERE user_id = ? AND date_key = ?`)
	_, err := s.db.ExecContext(ctx, query, userID, date)
	return err
}

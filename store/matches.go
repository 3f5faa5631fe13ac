package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"journal-service/models"

	"github.com/google/uuid"
)

// CreateRequest inserts a pending match request from sender to receiver.
// Direction is preserved; the canonical pair columns enforce at most one
// request per unordered pair, in either direction. Returns ErrDuplicate if
// a request for the pair already exists.
func (s *Store) CreateRequest(ctx context.Context, sender, receiver string) (*models.MatchRequest, error) {
	lo, hi := models.CanonicalPair(sender, receiver)
	now := time.Now().UTC()
	req := &models.MatchRequest{
		ID:               uuid.NewString(),
		SenderUsername:   sender,
		ReceiverUsername: receiver,
		PairLo:           lo,
		PairHi:           hi,
		Status:           models.RequestPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	query := s.db.Rebind(`INSERT INTO match_requests
		(id, sender_username, receiver_username, pair_lo, pair_hi, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		req.ID, req.SenderUsername, req.ReceiverUsername, req.PairLo, req.PairHi, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return req, nil
}

// RequestsForUser returns every request the user sent and every request the
// user received, unfiltered by status.
func (s *Store) RequestsForUser(ctx context.Context, username string) (sent, received []models.MatchRequest, err error) {
	const columns = `id, sender_username, receiver_username, pair_lo, pair_hi, status, created_at, updated_at`

	sent = []models.MatchRequest{}
	query := s.db.Rebind(`SELECT ` + columns + ` FROM match_requests WHERE sender_username = ? ORDER BY created_at`)
	if err = s.db.SelectContext(ctx, &sent, query, username); err != nil {
		return nil, nil, err
	}

	received = []models.MatchRequest{}
	query = s.db.Rebind(`SELECT ` + columns + ` FROM match_requests WHERE receiver_username = ? ORDER BY created_at`)
	if err = s.db.SelectContext(ctx, &received, query, username); err != nil {
		return nil, nil, err
	}

	return sent, received, nil
}

// RespondRequest sets the status of a pending request to accepted or
// rejected. The responder must be the request's receiver and the request
// must still be pending; otherwise ErrNotFound is returned without
// revealing whether the request exists. Accepting also persists the
// canonical match row in the same transaction.
func (s *Store) RespondRequest(ctx context.Context, requestID, responder, status string) (*models.MatchRequest, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var req models.MatchRequest
	query := tx.Rebind(`SELECT id, sender_username, receiver_username, pair_lo, pair_hi, status, created_at, updated_at
		FROM match_requests WHERE id = ? AND receiver_username = ? AND status = ?`)
	err = tx.GetContext(ctx, &req, query, requestID, responder, models.RequestPending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	query = tx.Rebind(`UPDATE match_requests SET status = ?, updated_at = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, req.Status, req.UpdatedAt, req.ID); err != nil {
		return nil, err
	}

	if status == models.RequestAccepted {
		query = tx.Rebind(`INSERT INTO matches (user1, user2, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`)
		if _, err := tx.ExecContext(ctx, query, req.PairLo, req.PairHi, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &req, nil
}

// MatchExists reports whether a match row exists for the pair, in canonical
// order.
func (s *Store) MatchExists(ctx context.Context, a, b string) (bool, error) {
	lo, hi := models.CanonicalPair(a, b)
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM matches WHERE user1 = ? AND user2 = ?`)
	if err := s.db.GetContext(ctx, &count, query, lo, hi); err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveMatch deletes the match row for the pair. Idempotent: removing a
// match that does not exist is a no-op.
func (s *Store) RemoveMatch(ctx context.Context, a, b string) error {
	lo, hi := models.CanonicalPair(a, b)
	query := s.db.Rebind(`DELETE FROM matches WHERE user1 = ? AND user2 = ?`)
	_, err := s.db.ExecContext(ctx, query, lo, hi)
	return err
}

// ListPartners returns the distinct usernames matched with the given user,
// from either slot of the match rows.
func (s *Store) ListPartners(ctx context.Context, username string) ([]string, error) {
	var matches []models.Match
	query := s.db.Rebind(`SELECT user1, user2, created_at FROM matches WHERE user1 = ? OR user2 = ? ORDER BY user1, user2`)
	if err := s.db.SelectContext(ctx, &matches, query, username, username); err != nil {
		return nil, err
	}

	partners := []string{}
	seen := map[string]bool{}
	for _, m := range matches {
		partner := m.User1
		if partner == username {
			partner = m.User2
		}
		if !seen[partner] {
			seen[partner] = true
			partners = append(partners, partner)
		}
	}
	return partners, nil
}

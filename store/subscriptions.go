package store

import (
	"context"
	"time"

	"journal-service/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UpsertSubscription stores a push subscription keyed by endpoint.
// Re-subscribing from the same endpoint overwrites the owner and keys and
// refreshes last_used_at.
func (s *Store) UpsertSubscription(ctx context.Context, userID, endpoint, p256dh, auth string) error {
	query := s.db.Rebind(`INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (endpoint) DO UPDATE SET
			user_id = excluded.user_id,
			p256dh = excluded.p256dh,
			auth = excluded.auth,
			last_used_at = excluded.last_used_at`)
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(), userID, endpoint, p256dh, auth, time.Now().UTC())
	return err
}

// SubscriptionsForUsers returns all subscriptions belonging to any of the
// given users.
func (s *Store) SubscriptionsForUsers(ctx context.Context, userIDs []string) ([]models.PushSubscription, error) {
	subs := []models.PushSubscription{}
	if len(userIDs) == 0 {
		return subs, nil
	}

	query, args, err := sqlx.In(`SELECT id, user_id, endpoint, p256dh, auth, last_used_at
		FROM push_subscriptions WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}
	if err := s.db.SelectContext(ctx, &subs, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteSubscriptionsByEndpoint removes the subscriptions with the given
// endpoints. Used to clean up endpoints the push service reported as gone.
func (s *Store) DeleteSubscriptionsByEndpoint(ctx context.Context, endpoints []string) error {
	if len(endpoints) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM push_subscriptions WHERE endpoint IN (?)`, endpoints)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}

package models

import "time"

// PushSubscription is a browser push endpoint plus its encryption keys,
// unique per endpoint. Re-subscribing from the same endpoint overwrites.
type PushSubscription struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Endpoint   string    `json:"endpoint" db:"endpoint"`
	P256dh     string    `json:"p256dh" db:"p256dh"`
	Auth       string    `json:"auth" db:"auth"`
	LastUsedAt time.Time `json:"last_used_at" db:"last_used_at"`
}

// SubscribeRequest mirrors the browser PushSubscription JSON shape.
type SubscribeRequest struct {
	UserID       string               `json:"userId"`
	Subscription *BrowserSubscription `json:"subscription"`
}

// BrowserSubscription is the serialized subscription object from
// PushManager.subscribe.
type BrowserSubscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// SubscriptionKeys carries the client public key and auth secret.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// NotifyRequest is the body of POST /api/push/notify-on-entry.
type NotifyRequest struct {
	ActorUserID string `json:"actorUserId"`
	DateKey     string `json:"date_key"`
	Title       string `json:"title"`
	Mood        string `json:"mood"`
	Note        string `json:"note"`
}

// NotificationPayload is what the service worker receives and renders.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

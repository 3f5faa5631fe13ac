// Package push delivers Web Push notifications to stored browser
// subscriptions using VAPID authentication.
package push

import (
	"context"
	"net/http"
	"sync"

	"journal-service/config"
	"journal-service/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Sender signs and sends Web Push messages with the configured VAPID keys.
type Sender struct {
	subject    string
	publicKey  string
	privateKey string
}

// NewSender builds a Sender from configuration.
func NewSender(cfg config.Config) *Sender {
	return &Sender{
		subject:    cfg.VAPIDSubject,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
	}
}

// Configured reports whether both VAPID keys are present.
func (s *Sender) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// Result records the outcome of one delivery attempt. Status is the push
// service's HTTP status, or 0 when the request never completed.
type Result struct {
	Endpoint string `json:"endpoint"`
	OK       bool   `json:"ok"`
	Status   int    `json:"status,omitempty"`
}

// Send attempts delivery to a single subscription.
func (s *Sender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) Result {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return Result{Endpoint: sub.Endpoint}
	}
	defer resp.Body.Close()

	return Result{
		Endpoint: sub.Endpoint,
		OK:       resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:   resp.StatusCode,
	}
}

// Broadcast sends the payload to every subscription concurrently and
// returns one Result per subscription. Attempts are independent; a failed
// delivery never blocks the others.
func (s *Sender) Broadcast(ctx context.Context, subs []models.PushSubscription, payload []byte) []Result {
	results := make([]Result, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub models.PushSubscription) {
			defer wg.Done()
			results[i] = s.Send(ctx, sub, payload)
		}(i, sub)
	}
	wg.Wait()

	return results
}

// ExpiredEndpoints returns the endpoints whose delivery failed with a
// permanently-gone status. Other failures are left for the next triggering
// event to retry.
func ExpiredEndpoints(results []Result) []string {
	var expired []string
	for _, r := range results {
		if !r.OK && (r.Status == http.StatusNotFound || r.Status == http.StatusGone) {
			expired = append(expired, r.Endpoint)
		}
	}
	return expired
}

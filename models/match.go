package models

import "time"

// Match request lifecycle states.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// MatchRequest is a directional proposal from sender to receiver.
// PairLo/PairHi hold the two usernames in lexicographic order so a unique
// index on them blocks a second request for the pair in either direction.
type MatchRequest struct {
	ID               string    `json:"id" db:"id"`
	SenderUsername   string    `json:"sender_username" db:"sender_username"`
	ReceiverUsername string    `json:"receiver_username" db:"receiver_username"`
	PairLo           string    `json:"-" db:"pair_lo"`
	PairHi           string    `json:"-" db:"pair_hi"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Match is a symmetric relationship; User1 < User2 lexicographically.
type Match struct {
	User1     string    `json:"user1" db:"user1"`
	User2     string    `json:"user2" db:"user2"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchActionRequest is the body for the POST/PUT/DELETE actions
// on /api/matches.
type MatchActionRequest struct {
	Action         string `json:"action"`
	Username       string `json:"username"`
	TargetUsername string `json:"targetUsername"`
	RequestID      string `json:"requestId"`
	Status         string `json:"status"`
}

// MatchRequestsResponse is returned by the get_requests action.
type MatchRequestsResponse struct {
	Sent     []MatchRequest `json:"sent"`
	Received []MatchRequest `json:"received"`
}

// CanonicalPair orders two usernames lexicographically (user1 < user2).
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

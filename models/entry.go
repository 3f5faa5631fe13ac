package models

import (
	"encoding/json"
	"time"
)

// Entry is a single journal entry, unique per (user_id, date_key).
// Optional fields are stored as NULL when absent; Weather is opaque JSON
// produced by the client and is passed through untouched.
type Entry struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	DateKey   string          `json:"date_key" db:"date_key"`
	Mood      *string          `json:"mood" db:"mood"`
	Title     *string          `json:"title" db:"title"`
	Note      *string          `json:"note" db:"note"`
	Weather   *json.RawMessage `json:"weather" db:"weather"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// UpsertEntryRequest is the body of PUT /api/entries.
type UpsertEntryRequest struct {
	UserID  string          `json:"userId"`
	DateKey string          `json:"date_key"`
	Mood    *string         `json:"mood"`
	Title   *string         `json:"title"`
	Note    *string         `json:"note"`
	Weather json.RawMessage `json:"weather"`
}

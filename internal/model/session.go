// Package model defines the data contracts exchanged between the collection
// store, the lead-intelligence pipeline, and the presentation layer.
package model

import (
	"strings"
	"time"
)

// SessionStatus represents the lifecycle state of a collection session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusError      SessionStatus = "error"
)

// Session is one batch collection run. It is immutable once created; the
// pipeline only reads it.
type Session struct {
	ID       string        `json:"id"`
	Date     time.Time     `json:"date"`
	Task     string        `json:"task"`
	Category string        `json:"category"`
	City     string        `json:"city"`
	Status   SessionStatus `json:"status"`
	Records  []Record      `json:"records"`
	Notes    string        `json:"notes,omitempty"`
}

// Record is one establishment observation within a session. LocalID is unique
// only within the originating session. Phone and website arrive as
// possibly-empty strings; Present is the single presence predicate used
// everywhere blank-vs-missing matters.
type Record struct {
	LocalID     int      `json:"local_id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Rating      float64  `json:"rating"`       // 0 means unknown, else 1.0-5.0
	ReviewCount int      `json:"review_count"` // non-negative
	Reviews     []Review `json:"reviews,omitempty"`
	Verified    bool     `json:"verified"`
}

// Review is a review excerpt carried through for display, not analyzed.
type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"` // 1-5
}

// Present reports whether an optional string field carries a value
// (non-blank after trimming).
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// DedupKey builds the establishment identity key. Two records with equal keys
// denote the same establishment regardless of originating session.
func DedupKey(name, city string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(city))
}

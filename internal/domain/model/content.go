//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"encoding/json"
	"time"
)

// Candidate is a public catalog entry for one candidate within a content
// area. Profile holds the free-form JSON document the Q&A surface projects
// answers from.
type Candidate struct {
	ID        string          `json:"id"         db:"id"`
	Area      string          `json:"area"       db:"area"`
	Name      string          `json:"name"       db:"name"`
	Party     string          `json:"party"      db:"party"`
	Profile   json.RawMessage `json:"profile"    db:"profile"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// QuizQuestion is one gamified quiz entry. Questions are partitioned by the
// group label carried in the access-grant cookie and time-locked until
// AvailableFrom.
type QuizQuestion struct {
	ID            string     `json:"id"                       db:"id"`
	GroupLabel    string     `json:"group_label"              db:"group_label"`
	Question      string     `json:"question"                 db:"question"`
	Choices       []string   `json:"choices"                  db:"choices"`
	AvailableFrom *time.Time `json:"available_from,omitempty" db:"available_from"`
	CreatedAt     time.Time  `json:"created_at"               db:"created_at"`
}

// Locked reports whether the question is still time-locked at now.
func (q QuizQuestion) Locked(now time.Time) bool {
	return q.AvailableFrom != nil && now.Before(*q.AvailableFrom)
}

// Poll is a public opinion poll summary row.
type Poll struct {
	ID        string    `json:"id"         db:"id"`
	Area      string    `json:"area"       db:"area"`
	Title     string    `json:"title"      db:"title"`
	OpensAt   time.Time `json:"opens_at"   db:"opens_at"`
	ClosesAt  time.Time `json:"closes_at"  db:"closes_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package models

import "time"

const (
	MinMastery = 0
	MaxMastery = 5
	// MasteredThreshold is the mastery level from which a word counts as mastered.
	MasteredThreshold = 4
)

type VocabularyItem struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Turkish         string     `json:"turkish"`
	Translation     string     `json:"translation"`
	MasteryLevel    int        `json:"mastery_level"`
	TimesPracticed  int        `json:"times_practiced"`
	TimesCorrect    int        `json:"times_correct"`
	LastPracticedAt *time.Time `json:"last_practiced_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// VocabularyFilter selects a user's words for listing.
type VocabularyFilter struct {
	UserID int64
	// PracticeOrder sorts weakest words first (mastery asc, never-practiced first)
	// instead of newest first.
	PracticeOrder bool
	Limit         int
	Offset        int
}

// MasteryStats summarises a user's vocabulary by mastery band.
type MasteryStats struct {
	Total    int `json:"total"`
	New      int `json:"new"`
	Learning int `json:"learning"`
	Mastered int `json:"mastered"`
}

type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

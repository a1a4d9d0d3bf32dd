package models

import "time"

type UserProgress struct {
	UserID            int64      `json:"user_id"`
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	TotalLessons      int        `json:"total_lessons"`
	TotalWordsLearned int        `json:"total_words_learned"`
	XPPoints          int        `json:"xp_points"`
	Level             int        `json:"level"`
	LastLessonDate    *time.Time `json:"last_lesson_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type LevelProgress struct {
	Level        int `json:"level"`
	XPIntoLevel  int `json:"xp_into_level"`
	XPForLevel   int `json:"xp_for_level"`
	PercentLevel int `json:"percent"`
}

// ProgressOverview is everything the profile screen shows.
type ProgressOverview struct {
	UserProgress
	LevelProgress LevelProgress `json:"level_progress"`
	Mastery       MasteryStats  `json:"mastery"`
	Achievements  []Achievement `json:"achievements"`
}

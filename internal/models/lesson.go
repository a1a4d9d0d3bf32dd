package models

import "time"

// LessonAttempt is the graded outcome of one exercise.
type LessonAttempt struct {
	Question      string       `json:"question"`
	UserAnswer    string       `json:"userAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	IsCorrect     bool         `json:"isCorrect"`
	Verdict       string       `json:"verdict,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
	Type          ExerciseType `json:"type,omitempty"`
}

type LessonHistory struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	TotalQuestions int             `json:"total_questions"`
	CorrectAnswers int             `json:"correct_answers"`
	Exercises      []LessonAttempt `json:"exercises"`
	CompletedAt    time.Time       `json:"completed_at"`
}

// VocabularyUpdate asks for one mastery adjustment of the named word.
type VocabularyUpdate struct {
	Word      string `json:"word"`
	IsCorrect bool   `json:"isCorrect"`
}

type LessonCompletionRequest struct {
	TotalQuestions    int                `json:"totalQuestions"`
	CorrectAnswers    int                `json:"correctAnswers"`
	Exercises         []LessonAttempt    `json:"exercises"`
	VocabularyUpdates []VocabularyUpdate `json:"vocabularyUpdates"`
}

type LessonCompletionResponse struct {
	Success   bool `json:"success"`
	XPEarned  int  `json:"xpEarned"`
	NewStreak int  `json:"newStreak"`
}

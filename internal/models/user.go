package models

import "time"

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	PasswordHash   string    `json:"-"`
	NativeLanguage string    `json:"native_language"`
	CEFRLevel      string    `json:"cefr_level"`
	CreatedAt      time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings is the user-editable part of a User.
type Settings struct {
	NativeLanguage string `json:"native_language"`
	CEFRLevel      string `json:"cefr_level"`
}

package progress

import (
	"time"

	"github.com/vytor/dilvane/internal/models"
)

const (
	XPPerCorrect = 10
	XPPerAttempt = 2
	XPPerLevel   = 100
	dateLayout   = "2006-01-02"
)

// XPEarned awards full credit for correct answers and partial credit for the rest.
func XPEarned(correct, total int) int {
	return correct*XPPerCorrect + (total-correct)*XPPerAttempt
}

// Level is a pure function of cumulative XP.
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a calendar date the way it is stored.
func FormatDay(t time.Time) string {
	return Day(t).Format(dateLayout)
}

// ParseDay is the inverse of FormatDay. Timestamps are accepted and truncated.
func ParseDay(s string) (time.Time, error) {
	if len(s) >= len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// NextStreak applies the continuation rules: same day keeps the streak,
// the following day extends it, anything else starts over.
func NextStreak(current *models.UserProgress, today time.Time) int {
	if current == nil || current.LastLessonDate == nil {
		return 1
	}
	last := Day(*current.LastLessonDate)
	today = Day(today)
	switch {
	case last.Equal(today):
		return current.CurrentStreak
	case last.AddDate(0, 0, 1).Equal(today):
		return current.CurrentStreak + 1
	default:
		return 1
	}
}

// ApplyLessonCompletion computes the progress after one completed lesson.
// current may be nil for a learner without a progress record.
func ApplyLessonCompletion(current *models.UserProgress, correct, total int, today time.Time) (int, models.UserProgress) {
	xp := XPEarned(correct, total)

	var next models.UserProgress
	if current != nil {
		next = *current
	}

	streak := NextStreak(current, today)
	day := Day(today)

	next.CurrentStreak = streak
	next.LongestStreak = max(next.LongestStreak, streak)
	next.TotalLessons++
	next.XPPoints += xp
	next.Level = Level(next.XPPoints)
	next.LastLessonDate = &day
	return xp, next
}

// LevelProgressOf describes how far xp is into its level.
func LevelProgressOf(xp int) models.LevelProgress {
	into := xp % XPPerLevel
	return models.LevelProgress{
		Level:        Level(xp),
		XPIntoLevel:  into,
		XPForLevel:   XPPerLevel,
		PercentLevel: into * 100 / XPPerLevel,
	}
}

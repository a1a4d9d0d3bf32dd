package mastery

import (
	"time"

	"github.com/vytor/dilvane/internal/models"
)

// Apply records one practice of word. Correct answers raise mastery by one,
// wrong answers lower it by one, always within [MinMastery, MaxMastery].
func Apply(word models.VocabularyItem, isCorrect bool, now time.Time) models.VocabularyItem {
	word.TimesPracticed++
	if isCorrect {
		word.TimesCorrect++
		word.MasteryLevel = min(word.MasteryLevel+1, models.MaxMastery)
	} else {
		word.MasteryLevel = max(word.MasteryLevel-1, models.MinMastery)
	}
	word.MasteryLevel = Clamp(word.MasteryLevel)
	word.LastPracticedAt = &now
	word.UpdatedAt = now
	return word
}

// Clamp forces level into the valid mastery range.
func Clamp(level int) int {
	return min(max(level, models.MinMastery), models.MaxMastery)
}

// Stats buckets words into new (0), learning (1-3) and mastered (4+).
func Stats(words []models.VocabularyItem) models.MasteryStats {
	s := models.MasteryStats{Total: len(words)}
	for _, w := range words {
		switch {
		case w.MasteryLevel >= models.MasteredThreshold:
			s.Mastered++
		case w.MasteryLevel > 0:
			s.Learning++
		default:
			s.New++
		}
	}
	return s
}

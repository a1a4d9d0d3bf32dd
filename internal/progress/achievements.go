package progress

import "github.com/vytor/dilvane/internal/models"

type achievementRule struct {
	name        string
	description string
	unlocked    func(p models.UserProgress, mastered int) bool
}

var achievementRules = []achievementRule{
	{"First Word", "Add your first vocabulary word", func(p models.UserProgress, _ int) bool { return p.TotalWordsLearned >= 1 }},
	{"Word Collector", "Add 10 vocabulary words", func(p models.UserProgress, _ int) bool { return p.TotalWordsLearned >= 10 }},
	{"First Lesson", "Complete your first lesson", func(p models.UserProgress, _ int) bool { return p.TotalLessons >= 1 }},
	{"Dedicated Learner", "Complete 10 lessons", func(p models.UserProgress, _ int) bool { return p.TotalLessons >= 10 }},
	{"On Fire", "Reach a 7-day streak", func(p models.UserProgress, _ int) bool { return p.LongestStreak >= 7 }},
	{"Master", "Master 5 vocabulary words", func(_ models.UserProgress, mastered int) bool { return mastered >= 5 }},
}

// Achievements evaluates every badge against the learner's progress.
func Achievements(p models.UserProgress, masteredWords int) []models.Achievement {
	out := make([]models.Achievement, 0, len(achievementRules))
	for _, r := range achievementRules {
		out = append(out, models.Achievement{
			Name:        r.name,
			Description: r.description,
			Unlocked:    r.unlocked(p, masteredWords),
		})
	}
	return out
}

// Overview bundles progress with its derived views.
func Overview(p models.UserProgress, stats models.MasteryStats) models.ProgressOverview {
	p.Level = Level(p.XPPoints)
	return models.ProgressOverview{
		UserProgress:  p,
		LevelProgress: LevelProgressOf(p.XPPoints),
		Mastery:       stats,
		Achievements:  Achievements(p, stats.Mastered),
	}
}

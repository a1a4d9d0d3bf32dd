package grading

import (
	"strings"

	"github.com/vytor/dilvane/internal/models"
)

// ExpectedAnswer is the text shown to the learner as the right answer.
func ExpectedAnswer(ex models.Exercise) string {
	return ex.Common().Answer
}

// acceptedAnswers lists every text an answer to ex may match, ExpectedAnswer
// first. Ordering exercises also accept their words joined in order.
func acceptedAnswers(ex models.Exercise) []string {
	accepted := []string{ExpectedAnswer(ex)}
	var order []string
	switch e := ex.(type) {
	case models.WordBank:
		order = e.CorrectOrder
	case models.SentenceArrange:
		order = e.CorrectOrder
	}
	if len(order) > 0 {
		if joined := strings.Join(order, " "); joined != accepted[0] {
			accepted = append(accepted, joined)
		}
	}
	return accepted
}

// GradeExercise grades answer against ex and builds the attempt record. The
// best accepting match among the accepted answers wins and the attempt reports
// the text that produced it. Wrong answers are shown ExpectedAnswer.
func GradeExercise(ex models.Exercise, answer string) (Result, models.LessonAttempt) {
	accepted := acceptedAnswers(ex)
	expected := accepted[0]
	r := Grade(expected, answer)
	for _, alt := range accepted[1:] {
		if ar := Grade(alt, answer); ar.Verdict.Correct() && ar.Similarity > r.Similarity {
			expected, r = alt, ar
		}
	}

	return r, models.LessonAttempt{
		Question:      ex.Common().Question,
		UserAnswer:    answer,
		CorrectAnswer: expected,
		IsCorrect:     r.Verdict.Correct(),
		Verdict:       string(r.Verdict),
		Feedback:      Feedback(r, expected),
		Type:          ex.Kind(),
	}
}

// ReferencesWord reports whether ex practises the vocabulary entry whose Turkish text is word.
func ReferencesWord(ex models.Exercise, word string) bool {
	w := Normalize(word)
	if w == "" {
		return false
	}
	b := ex.Common()
	return Normalize(b.Question) == w || Normalize(b.Answer) == w
}

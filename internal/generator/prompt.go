package generator

import (
	"fmt"
	"strings"

	"github.com/vytor/dilvane/internal/models"
)

const (
	MaxVocabulary = 20
	MaxNotes      = 5
)

func buildSystemPrompt(native string) string {
	return fmt.Sprintf(`You are creating Turkish language lessons for a %[1]s speaker.

Language rules:
- ALL translations, hints and instructions MUST be in %[1]s.
- Turkish content MUST be 100%% Turkish and %[1]s content MUST be 100%% %[1]s.
- NEVER mix languages within the same sentence or phrase.`, native)
}

func buildUserMessage(in Input) string {
	native := in.NativeLanguage
	var b strings.Builder

	fmt.Fprintf(&b, "CEFR level: %s\n", in.CEFRLevel)
	if level, ok := models.LookupCEFR(in.CEFRLevel); ok {
		fmt.Fprintf(&b, "%s\n", level.Description)
	}
	b.WriteString("Adjust complexity, vocabulary and sentence length accordingly.\n")

	b.WriteString("\nLearner vocabulary (prioritize lower mastery items):\n")
	b.WriteString(buildVocabulary(in.Vocabulary, native))

	b.WriteString("\n\nLearner notes:\n")
	b.WriteString(buildNotes(in.Notes))

	fmt.Fprintf(&b, "\n\nCreate exactly %d exercises mixing these types:\n", in.Count)
	fmt.Fprintf(&b, `- "translate-to-native": question is Turkish, answer is the %[1]s translation. Add wordDetails for each Turkish word.
- "translate-to-turkish": question is %[1]s, answer is the Turkish translation.
- "word-bank": question is a Turkish sentence, answer the %[1]s sentence. wordBank has 6-8 %[1]s words including 2-3 distractors; correctOrder is the answer words in order.
- "sentence-arrange": question is a %[1]s sentence, answer the Turkish sentence. wordBank holds the shuffled Turkish words plus 1-2 distractors; correctOrder is the Turkish words in order.
- "multiple-choice": question is Turkish, answer the %[1]s translation, options has 4 %[1]s choices with exactly one correct.
- "fill-blank": question is a Turkish sentence with ___ for the blank, answer the missing Turkish word, hint the %[1]s translation of the sentence, options 4 Turkish words.
- "listening-comprehension": question is a short Turkish phrase to be read aloud, answer its %[1]s translation.
`, native)

	b.WriteString(`
Rules:
- Include at least 2 "word-bank" and 2 "sentence-arrange" exercises.
- Focus on vocabulary with mastery 0-2 and make exercises progressively harder.
- Leave fields that do not apply to a type empty.`)

	return b.String()
}

func buildVocabulary(words []models.VocabularyItem, native string) string {
	if len(words) > MaxVocabulary {
		words = words[:MaxVocabulary]
	}
	lines := make([]string, len(words))
	for i, w := range words {
		lines[i] = fmt.Sprintf("- Turkish: %q | %s: %q | Mastery: %d/%d", w.Turkish, native, w.Translation, w.MasteryLevel, models.MaxMastery)
	}
	return strings.Join(lines, "\n")
}

func buildNotes(notes []models.Note) string {
	if len(notes) == 0 {
		return "No specific notes"
	}
	if len(notes) > MaxNotes {
		notes = notes[:MaxNotes]
	}
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = n.Content
	}
	return strings.Join(lines, "\n")
}

package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/dilvane/internal/models"
)

func TestBuildVocabulary_Truncates(t *testing.T) {
	words := make([]models.VocabularyItem, 30)
	for i := range words {
		words[i] = models.VocabularyItem{Turkish: fmt.Sprintf("w%d", i), Translation: "x"}
	}

	out := buildVocabulary(words, "English")
	assert.Equal(t, MaxVocabulary, strings.Count(out, "\n")+1)
	assert.NotContains(t, out, `"w20"`)
}

func TestBuildNotes(t *testing.T) {
	assert.Equal(t, "No specific notes", buildNotes(nil))

	notes := make([]models.Note, 8)
	for i := range notes {
		notes[i] = models.Note{Content: fmt.Sprintf("note %d", i)}
	}
	out := buildNotes(notes)
	assert.Contains(t, out, "note 4")
	assert.NotContains(t, out, "note 5")
}

func TestBuildUserMessage_UnknownLevelSkipsDescription(t *testing.T) {
	msg := buildUserMessage(Input{NativeLanguage: "French", CEFRLevel: "Z9", Count: 8,
		Vocabulary: []models.VocabularyItem{{Turkish: "ev", Translation: "maison"}}})
	assert.Contains(t, msg, "CEFR level: Z9\nAdjust")
	assert.Contains(t, msg, `French: "maison"`)
}

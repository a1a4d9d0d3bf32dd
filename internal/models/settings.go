package models

const (
	DefaultNativeLanguage = "English"
	DefaultCEFRLevel      = "A1"
)

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages lists the native languages lessons can be explained in.
var SupportedLanguages = []Language{
	{Code: "English", Name: "English"},
	{Code: "German", Name: "Deutsch"},
	{Code: "French", Name: "Français"},
	{Code: "Spanish", Name: "Español"},
	{Code: "Italian", Name: "Italiano"},
	{Code: "Portuguese", Name: "Português"},
	{Code: "Dutch", Name: "Nederlands"},
	{Code: "Russian", Name: "Русский"},
	{Code: "Arabic", Name: "العربية"},
	{Code: "Chinese", Name: "中文"},
	{Code: "Japanese", Name: "日本語"},
	{Code: "Korean", Name: "한국어"},
}

type CEFRLevel struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CEFRLevels is ordered from A1 to C2. Description calibrates generated lessons.
var CEFRLevels = []CEFRLevel{
	{Code: "A1", Name: "Beginner", Description: "Complete beginner - very simple words, short phrases, basic greetings"},
	{Code: "A2", Name: "Elementary", Description: "Elementary - simple sentences, everyday expressions, basic conversations"},
	{Code: "B1", Name: "Intermediate", Description: "Intermediate - can discuss familiar topics, express opinions simply"},
	{Code: "B2", Name: "Upper Intermediate", Description: "Upper intermediate - complex texts, fluent conversations, abstract topics"},
	{Code: "C1", Name: "Advanced", Description: "Advanced - nuanced language, idiomatic expressions, academic/professional contexts"},
	{Code: "C2", Name: "Mastery", Description: "Mastery - near-native fluency, subtle meanings, sophisticated expression"},
}

func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// LookupCEFR returns the level with the given code.
func LookupCEFR(code string) (CEFRLevel, bool) {
	for _, l := range CEFRLevels {
		if l.Code == code {
			return l, true
		}
	}
	return CEFRLevel{}, false
}

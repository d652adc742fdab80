package constants

import "strings"

// EntryType is the semantic kind of a journal entry.
type EntryType string

const (
	EntryNote   EntryType = "note"
	EntryAction EntryType = "action"
	EntryMemory EntryType = "memory"
	EntryIdea   EntryType = "idea"
	EntryLog    EntryType = "log"
)

// DefaultEntryType is the fail-open fallback when classification is unavailable.
const DefaultEntryType = EntryNote

var allEntryTypes = []EntryType{
	EntryNote,
	EntryAction,
	EntryMemory,
	EntryIdea,
	EntryLog,
}

func EntryTypesAsStrings() []string {
	result := make([]string, len(allEntryTypes))
	for i, t := range allEntryTypes {
		result[i] = string(t)
	}
	return result
}

// CanonicalEntryType maps free-form input onto a known entry type.
func CanonicalEntryType(input string) (EntryType, bool) {
	if input == "" {
		return DefaultEntryType, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]EntryType{
		"todo":        EntryAction,
		"task":        EntryAction,
		"tasks":       EntryAction,
		"reminder":    EntryAction,
		"thought":     EntryIdea,
		"journal":     EntryNote,
		"diary":       EntryMemory,
		"observation": EntryLog,
		"record":      EntryLog,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range allEntryTypes {
		if normalized == string(t) {
			return t, true
		}
	}

	return DefaultEntryType, false
}

// detectedTypeSuggestions maps the document service's detected_file_type onto
// an entry type suggestion (precedence tier 2 in type resolution).
var detectedTypeSuggestions = map[string]EntryType{
	"task_list":    EntryAction,
	"checklist":    EntryAction,
	"agenda":       EntryAction,
	"receipt":      EntryNote,
	"journal_page": EntryMemory,
	"letter":       EntryMemory,
	"sketch":       EntryIdea,
	"whiteboard":   EntryIdea,
}

// SuggestionForDetectedType returns the entry type implied by a detected file
// type, or "" when the detection carries no type signal.
func SuggestionForDetectedType(detected string) EntryType {
	t, ok := detectedTypeSuggestions[strings.ToLower(strings.TrimSpace(detected))]
	if !ok {
		return ""
	}
	return t
}

package constants

import (
	"strings"
)

// Category is the life-area classification of a journal entry.
type Category string

const (
	Health        Category = "Health"
	Work          Category = "Work"
	Relationships Category = "Relationships"
	Finance       Category = "Finance"
	Leisure       Category = "Leisure"
	Growth        Category = "Growth"
	Home          Category = "Home"
	Life          Category = "Life"
)

// DefaultCategory is the fail-open fallback when classification is unavailable.
const DefaultCategory = Life

var allCategories = []Category{
	Health,
	Work,
	Relationships,
	Finance,
	Leisure,
	Growth,
	Home,
	Life,
}

func CategoriesAsStrings() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CanonicalCategory maps free-form input onto a known category.
func CanonicalCategory(input string) (Category, bool) {
	if input == "" {
		return DefaultCategory, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"fitness":   Health,
		"gym":       Health,
		"wellness":  Health,
		"career":    Work,
		"job":       Work,
		"family":    Relationships,
		"friends":   Relationships,
		"money":     Finance,
		"budget":    Finance,
		"spending":  Finance,
		"hobby":     Leisure,
		"travel":    Leisure,
		"learning":  Growth,
		"education": Growth,
		"household": Home,
		"chores":    Home,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return DefaultCategory, false
}

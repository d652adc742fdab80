package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/journal-capture/constants"
)

// Taxonomy is the entry-type and category vocabulary offered to the
// classification service. The built-in lists can be overridden with a YAML
// file for deployments that extend the life-area set.
type Taxonomy struct {
	EntryTypes []string `yaml:"entry_types"`
	Categories []string `yaml:"categories"`
}

// DefaultTaxonomy returns the built-in vocabulary.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		EntryTypes: constants.EntryTypesAsStrings(),
		Categories: constants.CategoriesAsStrings(),
	}
}

// LoadTaxonomy reads a YAML taxonomy file. Missing sections fall back to the
// built-in lists; an empty path returns the defaults.
func LoadTaxonomy(path string) (Taxonomy, error) {
	tax := DefaultTaxonomy()
	if path == "" {
		return tax, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return tax, fmt.Errorf("read taxonomy file: %w", err)
	}

	var file Taxonomy
	if err := yaml.Unmarshal(b, &file); err != nil {
		return tax, fmt.Errorf("parse taxonomy file: %w", err)
	}

	if len(file.EntryTypes) > 0 {
		tax.EntryTypes = file.EntryTypes
	}
	if len(file.Categories) > 0 {
		tax.Categories = file.Categories
	}
	return tax, nil
}

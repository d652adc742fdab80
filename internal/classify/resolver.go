package classify

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/journal-capture/constants"
)

// ChoiceSource says where a pre-selected entry type came from. The input UI
// may pre-fill a type from an attachment suggestion without the user ever
// touching it; only ChoiceUser outranks everything.
type ChoiceSource string

const (
	ChoiceNone       ChoiceSource = "none"
	ChoiceAttachment ChoiceSource = "attachment"
	ChoiceUser       ChoiceSource = "user"
)

// TypeChoice is the tri-state type selection handed in with a submission.
type TypeChoice struct {
	Source ChoiceSource
	Type   constants.EntryType
}

// Provenance records which precedence tier produced a resolved value, so the
// confirmation stage can display "detected" without re-deriving it.
type Provenance string

const (
	FromUser       Provenance = "user"
	FromAttachment Provenance = "attachment"
	FromClassifier Provenance = "classifier"
	FromDefault    Provenance = "default"
)

// Resolution is the final semantic classification of a capture.
type Resolution struct {
	EntryType          constants.EntryType
	Category           constants.Category
	TypeProvenance     Provenance
	CategoryProvenance Provenance
}

// Resolver applies the type precedence: explicit user choice, then
// attachment suggestion, then the classification service, then the fixed
// default. Category always comes from the classification call, fail-open.
type Resolver struct {
	classifier Classifier
	log        *slog.Logger
}

func NewResolver(classifier Classifier, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{classifier: classifier, log: logger}
}

// Resolve never fails: an unreachable classifier degrades to the defaults.
func (r *Resolver) Resolve(ctx context.Context, choice TypeChoice, attachmentSuggestion constants.EntryType, content, documentContext string) Resolution {
	// The pre-filled UI choice counts as an attachment suggestion unless the
	// user explicitly picked it.
	if choice.Source == ChoiceAttachment && attachmentSuggestion == "" {
		attachmentSuggestion = choice.Type
	}

	classifiedType, classifiedCategory, err := r.classifier.Classify(ctx, content, documentContext)

	res := Resolution{}
	switch {
	case choice.Source == ChoiceUser && choice.Type != "":
		res.EntryType = choice.Type
		res.TypeProvenance = FromUser
	case attachmentSuggestion != "":
		res.EntryType = attachmentSuggestion
		res.TypeProvenance = FromAttachment
	case err == nil:
		res.EntryType = classifiedType
		res.TypeProvenance = FromClassifier
	default:
		res.EntryType = constants.DefaultEntryType
		res.TypeProvenance = FromDefault
	}

	if err == nil {
		res.Category = classifiedCategory
		res.CategoryProvenance = FromClassifier
	} else {
		r.log.Warn("classify.fail_open",
			"error", err,
			"default_entry_type", string(constants.DefaultEntryType),
			"default_category", string(constants.DefaultCategory),
		)
		res.Category = constants.DefaultCategory
		res.CategoryProvenance = FromDefault
	}

	r.log.Info("resolve.ok",
		"entry_type", string(res.EntryType),
		"type_provenance", string(res.TypeProvenance),
		"category", string(res.Category),
		"category_provenance", string(res.CategoryProvenance),
	)
	return res
}

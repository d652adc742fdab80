package compose

import (
	"fmt"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
)

// FocalPoint is the relative crop anchor of a gallery element, editor-owned.
type FocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EntryImage is one element of the entry gallery. Order is the original
// input index of the attachment, never completion order.
type EntryImage struct {
	URL           string         `json:"url"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	IsPoster      bool           `json:"is_poster"`
	Order         int            `json:"order"`
	FocalPoint    *FocalPoint    `json:"focal_point,omitempty"`
}

// Metadata is supplied by an external collaborator and passed through
// unchanged; the pipeline never computes or inspects it.
type Metadata map[string]any

// Draft is the normalized capture output handed to the confirmation stage.
// Immutable once assembled.
type Draft struct {
	Content            string              `json:"content"`
	EntryType          constants.EntryType `json:"entry_type"`
	Category           constants.Category  `json:"category"`
	TypeProvenance     classify.Provenance `json:"type_provenance"`
	CategoryProvenance classify.Provenance `json:"category_provenance"`
	Images             []EntryImage        `json:"images"`
	Tags               []string            `json:"tags,omitempty"`
	Metadata           Metadata            `json:"metadata,omitempty"`
}

// Assemble validates the draft invariants and builds the final record.
// An invariant failure here is a programming error in the upstream stages,
// not a user-facing condition.
func Assemble(content string, res classify.Resolution, images []EntryImage, tags []string, meta Metadata) (*Draft, error) {
	if content == "" {
		return nil, invariant("draft content must not be empty")
	}
	if len(images) > constants.MaxAttachments {
		return nil, invariant(fmt.Sprintf("gallery holds %d elements, limit is %d",
			len(images), constants.MaxAttachments))
	}

	posters := 0
	for i, img := range images {
		if img.IsPoster {
			posters++
		}
		if i > 0 && images[i-1].Order >= img.Order {
			return nil, invariant(fmt.Sprintf("gallery order not ascending at element %d", i))
		}
	}
	if posters > 1 {
		return nil, invariant(fmt.Sprintf("%d poster elements, at most one allowed", posters))
	}
	if len(images) > 0 && posters == 0 {
		return nil, invariant("gallery has elements but no poster")
	}

	if res.EntryType == "" || res.Category == "" {
		return nil, invariant("entry type and category must be resolved")
	}

	return &Draft{
		Content:            content,
		EntryType:          res.EntryType,
		Category:           res.Category,
		TypeProvenance:     res.TypeProvenance,
		CategoryProvenance: res.CategoryProvenance,
		Images:             images,
		Tags:               tags,
		Metadata:           meta,
	}, nil
}

func invariant(msg string) error {
	return common.NewAppError("INVARIANT_VIOLATION", msg, common.ErrInvariantViolation)
}

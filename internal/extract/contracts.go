package extract

import (
	"context"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
)

// Status is the terminal state of one attachment's extraction.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Result is the single tagged outcome for one attachment. Produced exactly
// once per attachment; never mutated after creation. A failed result carries
// no narrative or structured data.
type Result struct {
	InputIndex         int
	Kind               constants.AttachmentKind
	Status             Status
	Narrative          string
	StructuredData     map[string]any
	SuggestedEntryType constants.EntryType // "" when the service offered none
	SuggestedTags      []string
	DetectedFileType   string // documents only
	FailureReason      string // diagnostics only, never user-facing
}

func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Failed builds the failure variant for an attachment.
func Failed(att *capture.Attachment, err error) Result {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return Result{
		InputIndex:    att.InputIndex,
		Kind:          att.Kind,
		Status:        StatusFailed,
		FailureReason: reason,
	}
}

// ImageExtractor derives a narrative and structured data from one image,
// given the user's running text as context.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, att *capture.Attachment, userText string) (Result, error)
}

// DocumentExtractor derives text and a detected file type from one document.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, att *capture.Attachment) (Result, error)
}

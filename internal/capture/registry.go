package capture

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/common"
)

// Registry validates and holds the attachments of one capture session.
// A session has exactly one writer; the registry keeps no state beyond
// memory and touches neither disk nor network.
type Registry struct {
	attachments []*Attachment
	nextIndex   int
	logger      *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register classifies and stores a file. Unsupported files fail fast and do
// not count toward the attachment limit.
func (r *Registry) Register(fileName, mimeType string, data []byte) (*Attachment, error) {
	kind, format, err := classifyFile(fileName, mimeType)
	if err != nil {
		r.logger.Warn("registry.register.unsupported", "file_name", fileName, "mime_type", mimeType)
		return nil, err
	}

	if len(r.attachments) >= constants.MaxAttachments {
		r.logger.Warn("registry.register.limit_exceeded", "file_name", fileName, "limit", constants.MaxAttachments)
		return nil, common.NewAppError("LIMIT_EXCEEDED",
			fmt.Sprintf("at most %d attachments per capture", constants.MaxAttachments),
			common.ErrLimitExceeded)
	}

	att := &Attachment{
		ID:         uuid.New(),
		InputIndex: r.nextIndex,
		Kind:       kind,
		Format:     format,
		FileName:   fileName,
		MIMEType:   mimeType,
		Size:       int64(len(data)),
		Data:       data,
	}
	att.URL = "attachment://" + att.ID.String()
	r.nextIndex++
	r.attachments = append(r.attachments, att)

	r.logger.Info("registry.register.ok",
		"attachment_id", att.ID,
		"input_index", att.InputIndex,
		"kind", att.Kind,
		"format", att.Format,
		"size", att.Size,
	)
	return att, nil
}

// SetURL records the upload-layer reference for an attachment. The gallery
// carries these through; the pipeline never dereferences them.
func (r *Registry) SetURL(inputIndex int, url string) bool {
	for _, att := range r.attachments {
		if att.InputIndex == inputIndex {
			att.URL = url
			return true
		}
	}
	return false
}

// Remove drops the attachment with the given input index. Indices of the
// remaining attachments are stable; freed indices are not reused.
func (r *Registry) Remove(inputIndex int) bool {
	for i, att := range r.attachments {
		if att.InputIndex == inputIndex {
			r.attachments = append(r.attachments[:i], r.attachments[i+1:]...)
			r.logger.Info("registry.remove.ok", "attachment_id", att.ID, "input_index", inputIndex)
			return true
		}
	}
	return false
}

// List returns the attachments in input order. The returned slice is a copy;
// the attachments themselves are shared and must not be mutated.
func (r *Registry) List() []*Attachment {
	out := make([]*Attachment, len(r.attachments))
	copy(out, r.attachments)
	return out
}

func (r *Registry) Len() int {
	return len(r.attachments)
}

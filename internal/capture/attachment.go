package capture

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/common"
)

// Attachment is one user-supplied file in a capture session. Immutable once
// created; owned by the Registry until handed to an extractor.
type Attachment struct {
	ID         uuid.UUID
	InputIndex int
	Kind       constants.AttachmentKind
	Format     string // normalized extension, e.g. "jpg", "pdf", "xlsx"
	FileName   string
	MIMEType   string
	Size       int64
	Data       []byte
	URL        string // reference assigned by the upload layer, if any
}

// classifyFile resolves the kind and normalized format for a candidate file.
func classifyFile(fileName, mimeType string) (constants.AttachmentKind, string, error) {
	ext := constants.NormalizeExt(filepath.Ext(fileName))
	kind, ok := constants.KindForFile(mimeType, ext)
	if !ok {
		return "", "", common.NewAppError("UNSUPPORTED_TYPE",
			"file type is not supported for capture", common.ErrUnsupportedType)
	}
	return kind, ext, nil
}

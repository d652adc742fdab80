package constants

import "strings"

// MaxAttachments is the fixed ceiling on attachments per capture session.
const MaxAttachments = 9

// AttachmentKind partitions attachments for extractor routing.
type AttachmentKind string

const (
	KindImage    AttachmentKind = "IMAGE"
	KindDocument AttachmentKind = "DOCUMENT"
)

// imageExtensions holds the allowed image file extensions for capture.
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"heic": {},
}

// documentExtensions holds the allowed document file extensions for capture.
var documentExtensions = map[string]struct{}{
	"pdf":  {},
	"xlsx": {},
	"xls":  {},
	"csv":  {},
	"docx": {},
	"txt":  {},
	"md":   {},
}

// mimeKinds maps well-known MIME types to a kind; extension is the fallback.
var mimeKinds = map[string]AttachmentKind{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"image/heic":      KindImage,
	"application/pdf": KindDocument,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": KindDocument,
	"application/vnd.ms-excel": KindDocument,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDocument,
	"text/plain":    KindDocument,
	"text/csv":      KindDocument,
	"text/markdown": KindDocument,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// KindForFile classifies a file by MIME type first, extension second.
// Returns false when neither identifies a supported attachment.
func KindForFile(mimeType, ext string) (AttachmentKind, bool) {
	if k, ok := mimeKinds[strings.ToLower(strings.TrimSpace(mimeType))]; ok {
		return k, true
	}
	ext = NormalizeExt(ext)
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, true
	}
	if _, ok := documentExtensions[ext]; ok {
		return KindDocument, true
	}
	return "", false
}

// SupportedExt reports whether the extension alone is enough to accept a file.
func SupportedExt(ext string) bool {
	ext = NormalizeExt(ext)
	if _, ok := imageExtensions[ext]; ok {
		return true
	}
	_, ok := documentExtensions[ext]
	return ok
}

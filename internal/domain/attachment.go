package domain

import "time"

// AttachmentKind labels what the extractor detected, not what it extracted:
// a scanned PDF still gets KindPDF with empty text.
type AttachmentKind string

const (
	KindPDF     AttachmentKind = "PDF"
	KindDOCX    AttachmentKind = "DOCX"
	KindText    AttachmentKind = "TEXT"
	KindHTML    AttachmentKind = "HTML"
	KindUnknown AttachmentKind = "UNKNOWN"
	KindMissing AttachmentKind = "MISSING"
)

// Attachment lives only in the active chat session; it is never persisted.
type Attachment struct {
	Path    string
	Name    string
	Kind    AttachmentKind
	Text    string
	AddedAt time.Time
}

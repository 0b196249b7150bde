package domain

import "time"

// Document is a file uploaded against an application. Only the schema exists
// today; no route reads or writes documents.
type Document struct {
	ID            int64
	ApplicationID int64
	DocumentType  string
	FilePath      string
	UploadedAt    time.Time
}

package domain

import "time"

// Interview records a completed interview session. Only the report-path
// lifecycle is managed here; question generation lives behind the remote
// interview API.
type Interview struct {
	ID         int64     `json:"id" bson:"_id,omitempty"`
	UserID     int64     `json:"user_id" bson:"user_id"`
	ReportPath string    `json:"report_path" bson:"report_path"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// File type labels accepted by DeleteFile. They select which record kind has
// its blob reference cleared after a successful storage delete.
const (
	FileTypeResume = "resume"
	FileTypeReport = "report"
)

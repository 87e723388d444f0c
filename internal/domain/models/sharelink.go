package models

import "time"

// FolderLink is an unauthenticated, time-limited, random-code-addressed read
// view over one folder's files. A link is valid iff now < Expiry; expired
// links are deleted lazily on first access.
type FolderLink struct {
	Code      string    `json:"code"`
	FolderID  int64     `json:"folder_id"`
	ClientID  int64     `json:"client_id"`
	Expiry    time.Time `json:"expiry"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the link is no longer valid at the given instant.
func (l *FolderLink) Expired(now time.Time) bool {
	return !now.Before(l.Expiry)
}

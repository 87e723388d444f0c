package models

import "time"

// File is an uploaded file inside a client folder. Path points at the byte
// store on disk; existence there is only checked lazily before download.
type File struct {
	ID           int64     `json:"id"`
	FolderID     int64     `json:"folder_id"`
	Name         string    `json:"name"`
	Path         string    `json:"-"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

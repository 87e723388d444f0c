package models

import "time"

// Folder is a named subdirectory under a client's root, mirrored as both a
// filesystem directory and a database row. Exists reflects the on-disk state
// at list time; it is advisory and never stored.
type Folder struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	FolderName string    `json:"folder_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Exists     bool      `json:"exists"`
}

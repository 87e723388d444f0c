package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and to keep folder
	// names usable as directory entries on common filesystems.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxJSONBodyBytes bounds JSON request bodies. Uploads arrive base64
	// encoded inside JSON, so this sits above the decoded upload limit
	// (base64 inflates by 4/3, plus field overhead).
	MaxJSONBodyBytes = 36 << 20
)

package models

// UploadResult represents a file successfully placed on the KlicStudio service.
type UploadResult struct {
	// FilePath is the service-side reference (e.g. "local:./uploads/video.mp4")
	// to pass to subsequent task operations.
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size_bytes"`
}

// FetchResult represents a task artifact downloaded and decoded to text.
type FetchResult struct {
	FileName    string `json:"file_name"`
	TextContent string `json:"text_content"`
	MimeType    string `json:"mime_type"`
}

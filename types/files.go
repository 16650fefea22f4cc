package types

// File event types pushed by the server.
const (
	FileEventUpload = "upload"
	FileEventDelete = "delete"
)

// FileEntry is one row of the GET /api/files listing. Size and Modified
// arrive pre-formatted by the server; SizeBytes carries the raw value.
type FileEntry struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
	Icon      string `json:"icon"`
	Modified  string `json:"modified"`
	Extension string `json:"extension"`
	Source    string `json:"source"` // "phone" or "pc"
}

// FileEventData is the payload of a pushed file_event.
type FileEventData struct {
	Filename string `json:"filename"`
	Size     string `json:"size,omitempty"`
	Source   string `json:"source,omitempty"`
}

// FileEvent is a server-pushed file change notification. Consumed once to
// decide whether to refresh the listing; never persisted.
type FileEvent struct {
	Type      string        `json:"type"`
	Data      FileEventData `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// UploadResponse is the POST /api/upload and /api/upload-pc response.
// A success:false body can arrive inside an HTTP 200.
type UploadResponse struct {
	Success   bool   `json:"success"`
	Filename  string `json:"filename"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
	Timestamp string `json:"timestamp"`
	Icon      string `json:"icon,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DeleteResponse is the GET /api/delete/<filename> response.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CleanupResponse is the POST /api/cleanup-files response.
type CleanupResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deleted_count"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
}

// DownloadZipRequest is the POST /api/download-zip request body.
type DownloadZipRequest struct {
	Files []string `json:"files"`
}

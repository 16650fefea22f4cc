package types

// SystemInfo is the system snapshot served at GET /api/system-info and
// pushed over the realtime channel as a system_info event. DevicesList,
// when present, is a full authoritative device snapshot.
type SystemInfo struct {
	OS               string   `json:"os,omitempty"`
	OSVersion        string   `json:"os_version,omitempty"`
	LocalIP          string   `json:"local_ip"`
	Hostname         string   `json:"hostname,omitempty"`
	SessionEnabled   bool     `json:"session_enabled"`
	ActiveSessions   int      `json:"active_sessions"`
	ConnectedDevices int      `json:"connected_devices"`
	DevicesList      []Device `json:"devices_list,omitempty"`
	UploadFiles      int      `json:"upload_files"`
	DownloadFiles    int      `json:"download_files"`
	TotalFiles       int      `json:"total_files"`
	ServerTime       string   `json:"server_time,omitempty"`
	MaxFileSize      string   `json:"max_file_size,omitempty"`
	ServerStartTime  float64  `json:"server_start_time"`
}

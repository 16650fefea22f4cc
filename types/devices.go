package types

// Device classes reported by the server.
const (
	DeviceTypeMobile  = "Mobile"
	DeviceTypeTablet  = "Tablet"
	DeviceTypeDesktop = "Desktop"
	DeviceTypeUnknown = "Unknown"
)

// Device event types pushed by the server.
const (
	DeviceEventConnect    = "connect"
	DeviceEventDisconnect = "disconnect"
)

// Device is one connected peer as reported by the server. SID is the
// server-assigned connection identifier and is unique within the directory.
type Device struct {
	SID            string `json:"sid"`
	Type           string `json:"type"`
	DeviceName     string `json:"device_name"`
	DisplayName    string `json:"display_name,omitempty"`
	OSName         string `json:"os_name,omitempty"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version,omitempty"`
	IP             string `json:"ip"`
	PCUsername     string `json:"pc_username,omitempty"`
	ConnectedAt    string `json:"connected_at"`
	LastSeen       string `json:"last_seen,omitempty"`
	Status         string `json:"status,omitempty"`
}

// DeviceEvent is a server-pushed incremental device change. Connect events
// carry the full device record; disconnect events only need the SID.
type DeviceEvent struct {
	Type      string `json:"type"`
	Data      Device `json:"data"`
	Timestamp string `json:"timestamp"`
}

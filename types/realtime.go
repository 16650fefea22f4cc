package types

import "encoding/json"

// Realtime event names, server to client.
const (
	EventConnected     = "connected"
	EventFileEvent     = "file_event"
	EventSystemInfo    = "system_info"
	EventDevicesList   = "devices_list"
	EventDevicesUpdate = "devices_update"
	EventDeviceEvent   = "device_event"
)

// Realtime event names, client to server.
const (
	EventRequestSystemInfo = "request_system_info"
	EventRequestDevices    = "request_devices"
	EventHeartbeat         = "heartbeat"
)

// Envelope is the websocket frame format in both directions: the event name
// plus its raw payload. Heartbeats carry no data.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

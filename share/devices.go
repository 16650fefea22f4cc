// Package share holds the live state fed by the realtime channel: the
// directory of currently connected devices and the last system snapshot.
package share

import (
	"fmt"
	"sort"
	"sync"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// Directory is the authoritative local view of connected devices. Entries
// exist only while the server considers the device online; a disconnected
// device disappears rather than being flagged offline.
type Directory struct {
	mu       sync.RWMutex
	devices  map[string]types.Device
	notifier *notify.Center
}

func NewDirectory(notifier *notify.Center) *Directory {
	return &Directory{
		devices:  make(map[string]types.Device),
		notifier: notifier,
	}
}

// ApplySnapshot replaces the entire directory with the given set. Duplicate
// identifiers in the input collapse to one entry, last write wins.
func (d *Directory) ApplySnapshot(devices []types.Device) {
	replacement := make(map[string]types.Device, len(devices))
	for _, dev := range devices {
		if dev.SID == "" {
			continue
		}
		replacement[dev.SID] = dev
	}

	d.mu.Lock()
	d.devices = replacement
	d.mu.Unlock()

	tool.DefaultLogger.Debugf("Device snapshot applied: %d online", len(replacement))
}

// ApplyEvent upserts on connect, removes on disconnect. A connect for an
// already-present identifier overwrites its fields, which handles a device
// reconnecting with updated metadata.
func (d *Directory) ApplyEvent(event types.DeviceEvent) {
	switch event.Type {
	case types.DeviceEventConnect:
		if event.Data.SID == "" {
			return
		}
		d.mu.Lock()
		d.devices[event.Data.SID] = event.Data
		d.mu.Unlock()
		d.notifier.Notify(types.NotifySuccess,
			fmt.Sprintf("Device connected: %s (%s)", event.Data.Type, event.Data.Browser))
	case types.DeviceEventDisconnect:
		d.mu.Lock()
		delete(d.devices, event.Data.SID)
		d.mu.Unlock()
		d.notifier.Notify(types.NotifyWarning,
			fmt.Sprintf("Device disconnected: %s (%s)", event.Data.Type, event.Data.Browser))
	default:
		tool.DefaultLogger.Debugf("Ignoring device event type %q", event.Type)
	}
}

// Snapshot returns the currently online devices in stable identifier order.
func (d *Directory) Snapshot() []types.Device {
	d.mu.RLock()
	result := make([]types.Device, 0, len(d.devices))
	for _, dev := range d.devices {
		result = append(result, dev)
	}
	d.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].SID < result[j].SID
	})
	return result
}

// Count returns the number of online devices.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.devices)
}

package share

import (
	"testing"
	"time"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/types"
)

func TestStatusApplyForwardsDeviceSnapshot(t *testing.T) {
	status := NewStatus()
	dir := NewDirectory(notify.NewCenter(time.Second))

	if _, ok := status.Info(); ok {
		t.Fatal("Expected no snapshot before Apply")
	}

	status.Apply(types.SystemInfo{
		LocalIP:          "192.168.1.2",
		ConnectedDevices: 2,
		DevicesList: []types.Device{
			{SID: "a"}, {SID: "b"},
		},
	}, dir)

	info, ok := status.Info()
	if !ok || info.LocalIP != "192.168.1.2" {
		t.Errorf("Expected stored snapshot, got %+v (ok=%v)", info, ok)
	}
	if dir.Count() != 2 {
		t.Errorf("Expected embedded device list to reach the directory, got %d", dir.Count())
	}

	// A snapshot without a device list leaves the directory alone.
	status.Apply(types.SystemInfo{LocalIP: "192.168.1.3"}, dir)
	if dir.Count() != 2 {
		t.Errorf("Expected directory untouched without a device list, got %d", dir.Count())
	}
}

func TestStatusProbe(t *testing.T) {
	status := NewStatus()
	if _, ok := status.Probe(); ok {
		t.Fatal("Expected unreachable before any probe")
	}
	status.SetProbe(12*time.Millisecond, true)
	rtt, ok := status.Probe()
	if !ok || rtt != 12*time.Millisecond {
		t.Errorf("Expected recorded probe, got %v (ok=%v)", rtt, ok)
	}
}

func TestStatusUptime(t *testing.T) {
	status := NewStatus()
	if got := status.Uptime(); got != "0s" {
		t.Errorf("Expected 0s without a snapshot, got %q", got)
	}

	start := float64(time.Now().Add(-90 * time.Second).Unix())
	status.Apply(types.SystemInfo{ServerStartTime: start}, nil)
	got := status.Uptime()
	if got != "1m 30s" && got != "1m 31s" {
		t.Errorf("Expected roughly 1m 30s of uptime, got %q", got)
	}
}

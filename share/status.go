package share

import (
	"sync"
	"time"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// Status holds the last system-info snapshot plus the locally measured
// round-trip time to the server. Mutated only from the event-processing
// timeline and the poller.
type Status struct {
	mu        sync.RWMutex
	info      types.SystemInfo
	haveInfo  bool
	rtt       time.Duration
	reachable bool
}

func NewStatus() *Status {
	return &Status{}
}

// Apply stores a system-info snapshot. When the snapshot embeds a device
// list, it is forwarded to the directory as a full snapshot.
func (s *Status) Apply(info types.SystemInfo, dir *Directory) {
	s.mu.Lock()
	s.info = info
	s.haveInfo = true
	s.mu.Unlock()

	if info.DevicesList != nil && dir != nil {
		dir.ApplySnapshot(info.DevicesList)
	}
}

// Info returns the last snapshot and whether one has arrived yet.
func (s *Status) Info() (types.SystemInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.haveInfo
}

// SetProbe records the latest reachability probe result.
func (s *Status) SetProbe(rtt time.Duration, reachable bool) {
	s.mu.Lock()
	s.rtt = rtt
	s.reachable = reachable
	s.mu.Unlock()
}

// Probe returns the latest reachability probe result.
func (s *Status) Probe() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rtt, s.reachable
}

// Uptime derives the server uptime string from the last snapshot's start
// time, counting locally the way the web UI does.
func (s *Status) Uptime() string {
	s.mu.RLock()
	start := s.info.ServerStartTime
	have := s.haveInfo
	s.mu.RUnlock()

	if !have || start <= 0 {
		return "0s"
	}
	seconds := time.Now().Unix() - int64(start)
	return tool.FormatUptime(seconds)
}

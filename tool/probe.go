package tool

import (
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// QuickICMPProbe sends one unprivileged ICMP echo to host and reports the
// round-trip time. ok is false when the host did not answer within timeout
// or ICMP is unavailable.
func QuickICMPProbe(host string, timeout time.Duration) (rtt time.Duration, ok bool) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return 0, false
	}
	pinger.SetPrivileged(false)
	pinger.Count = 1
	pinger.Timeout = timeout
	if err := pinger.Run(); err != nil {
		return 0, false
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, false
	}
	return stats.AvgRtt, true
}

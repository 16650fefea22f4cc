package share

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

const (
	// DefaultPollInterval matches the web UI's 30 second system-info cycle.
	DefaultPollInterval = 30 * time.Second
	probeTimeout        = 2 * time.Second
)

// DeviceRequester lets the poller piggyback a device-list request on the
// realtime channel when one is connected.
type DeviceRequester interface {
	RequestDevices()
}

// Poller refreshes the system snapshot over HTTP on a fixed interval,
// probes server reachability, and nudges the realtime channel for a fresh
// device list. It is the eventual-consistency correction for anything lost
// in transit.
type Poller struct {
	client    *http.Client
	server    string
	status    *Status
	directory *Directory
	channel   DeviceRequester
	interval  time.Duration
}

func NewPoller(server string, status *Status, directory *Directory, channel DeviceRequester, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:    tool.GetHttpClient(),
		server:    server,
		status:    status,
		directory: directory,
		channel:   channel,
		interval:  interval,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	info, err := p.fetchSystemInfo(ctx)
	if err != nil {
		tool.DefaultLogger.Debugf("System info poll failed: %v", err)
	} else {
		p.status.Apply(*info, p.directory)
	}

	host := p.server
	if h, _, err := net.SplitHostPort(p.server); err == nil {
		host = h
	}
	rtt, ok := tool.QuickICMPProbe(host, probeTimeout)
	p.status.SetProbe(rtt, ok)

	if p.channel != nil {
		p.channel.RequestDevices()
	}
}

func (p *Poller) fetchSystemInfo(ctx context.Context) (*types.SystemInfo, error) {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodGet, tool.BuildSystemInfoURL(p.server), nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create system info request: %v", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send system info request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("system info request failed: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read system info response: %v", err)
	}
	var info types.SystemInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse system info response: %v", err)
	}
	return &info, nil
}

package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"

	"github.com/riyaz/simpleshare-go/files"
	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/realtime"
	"github.com/riyaz/simpleshare-go/session"
	"github.com/riyaz/simpleshare-go/share"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/transfer"
	"github.com/riyaz/simpleshare-go/types"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseServer != "" {
		appCfg.Server = cfg.UseServer
	}
	if cfg.UseAlias != "" {
		appCfg.Alias = cfg.UseAlias
	}
	if cfg.UseOrigin != "" {
		appCfg.Origin = cfg.UseOrigin
	}
	if cfg.UseStateDir != "" {
		appCfg.StateDir = cfg.UseStateDir
	}
	tool.CurrentConfig = appCfg

	tool.InitLogger()
	switch cfg.Log {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	center := notify.NewCenter(notify.DefaultDismissAfter)

	if cfg.UseQROut != "" {
		if err := tool.WriteConnectQR(tool.BuildServerURL(appCfg.Server), cfg.UseQROut, 0); err != nil {
			tool.DefaultLogger.Warnf("Failed to write connect QR code: %v", err)
		} else {
			tool.DefaultLogger.Infof("Connect QR code written to %s", cfg.UseQROut)
		}
	}

	// Session gate runs before anything else touches the server.
	store := session.NewStore(appCfg.Server, appCfg.StateDir, center)
	if err := store.CheckSession(ctx); err != nil {
		tool.DefaultLogger.Warnf("Session check failed: %v", err)
	}

	directory := share.NewDirectory(center)
	status := share.NewStatus()
	reconciler := files.NewReconciler(files.NewAPI(appCfg.Server), center)

	channel := realtime.NewChannel(realtime.DefaultHeartbeatPeriod)
	channel.Handle(types.EventConnected, func(json.RawMessage) {})
	channel.Handle(types.EventFileEvent, func(data json.RawMessage) {
		var event types.FileEvent
		if err := sonic.Unmarshal(data, &event); err != nil {
			tool.DefaultLogger.Debugf("Malformed file event: %v", err)
			return
		}
		reconciler.OnFileEvent(event)
	})
	channel.Handle(types.EventSystemInfo, func(data json.RawMessage) {
		var info types.SystemInfo
		if err := sonic.Unmarshal(data, &info); err != nil {
			tool.DefaultLogger.Debugf("Malformed system info: %v", err)
			return
		}
		status.Apply(info, directory)
	})
	applySnapshot := func(data json.RawMessage) {
		var devices []types.Device
		if err := sonic.Unmarshal(data, &devices); err != nil {
			tool.DefaultLogger.Debugf("Malformed device snapshot: %v", err)
			return
		}
		directory.ApplySnapshot(devices)
	}
	channel.Handle(types.EventDevicesList, applySnapshot)
	channel.Handle(types.EventDevicesUpdate, applySnapshot)
	channel.Handle(types.EventDeviceEvent, func(data json.RawMessage) {
		var event types.DeviceEvent
		if err := sonic.Unmarshal(data, &event); err != nil {
			tool.DefaultLogger.Debugf("Malformed device event: %v", err)
			return
		}
		directory.ApplyEvent(event)
	})
	channel.OnConnectionChange(func(online bool) {
		if online {
			center.Notify(types.NotifyInfo, "Real-time connection established")
		} else {
			center.Notify(types.NotifyWarning, "Real-time connection lost")
		}
	})

	transport := realtime.NewWSTransport(
		tool.BuildWebsocketURL(appCfg.Server, appCfg.ClientID), channel)
	channel.AttachTransport(transport)
	go transport.Run(ctx)

	reconciler.Refresh()

	poller := share.NewPoller(appCfg.Server, status, directory, channel, share.DefaultPollInterval)
	go poller.Run(ctx)

	if len(cfg.SendFiles) > 0 {
		coordinator := transfer.NewCoordinator(appCfg.Server, appCfg.Origin, center)
		coordinator.OnMutation(reconciler.OnLocalMutation)
		coordinator.OnProgress(func(name string, percent float64) {
			tool.DefaultLogger.Debugf("Uploading %s... %.0f%%", name, percent)
		})
		go func() {
			succeeded, err := coordinator.UploadBatch(ctx, cfg.SendFiles)
			if err != nil {
				tool.DefaultLogger.Warnf("Upload batch finished with errors: %v", err)
			}
			tool.DefaultLogger.Infof("Upload batch done: %d/%d succeeded", succeeded, len(cfg.SendFiles))
		}()
	}

	<-ctx.Done()
	tool.DefaultLogger.Info("Shutting down")
}

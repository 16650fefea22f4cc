package tool

import (
	"flag"
	"strings"

	"github.com/riyaz/simpleshare-go/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	var send string
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseServer, "useServer", "", "override server address (host:port)")
	flag.StringVar(&cfg.UseAlias, "useAlias", "", "specify alias for this client")
	flag.StringVar(&cfg.UseOrigin, "useOrigin", "", "upload origin: phone|pc")
	flag.StringVar(&cfg.UseStateDir, "useStateDir", "", "override state directory (session token storage)")
	flag.StringVar(&cfg.UseQROut, "qrOut", "", "write a connect QR code PNG to this path on startup")
	flag.StringVar(&send, "send", "", "comma separated list of files to upload after connecting")
	flag.Parse()

	if send != "" {
		for _, p := range strings.Split(send, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.SendFiles = append(cfg.SendFiles, p)
			}
		}
	}
	return cfg
}

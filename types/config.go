package types

// AppConfig represents the client configuration loaded from the config file.
type AppConfig struct {
	Server    string `yaml:"server"`              // host:port of the SimpleShare server
	Alias     string `yaml:"alias"`               // display name announced to the server
	ClientID  string `yaml:"clientId"`            // stable per-install identifier
	Origin    string `yaml:"origin"`              // upload origin: "phone" or "pc"
	StateDir  string `yaml:"stateDir"`            // directory for the session token file
	Theme     string `yaml:"theme,omitempty"`     // persisted UI theme identifier
	ThemeIcon string `yaml:"themeIcon,omitempty"` // persisted UI theme glyph
}

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UseServer     string // override server host:port
	UseAlias      string
	UseOrigin     string // override upload origin: phone|pc
	UseStateDir   string
	UseQROut      string   // write a connect QR PNG to this path on startup
	SendFiles     []string // files to upload once connected (comma separated flag)
}

package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riyaz/simpleshare-go/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

// Upload origins understood by the server. Each maps to its own endpoint.
const (
	OriginPhone = "phone"
	OriginPC    = "pc"
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Server:   "127.0.0.1:5000", // SimpleShare default port
		Alias:    NameGenerator(),
		ClientID: GenerateRandomUUID(),
		Origin:   OriginPC,
		StateDir: ".",
	}
}

// LoadConfig reads the config file at path, creating it with defaults when
// missing. A missing clientId is generated and written back so the identity
// stays stable across restarts.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file with client id %s", cfg.ClientID)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	var configChanged bool
	if cfg.ClientID == "" {
		cfg.ClientID = GenerateRandomUUID()
		DefaultLogger.Infof("Generated client id %s", cfg.ClientID)
		configChanged = true
	}
	if cfg.Origin != OriginPhone && cfg.Origin != OriginPC {
		DefaultLogger.Warnf("Unknown origin %q in config, using %q", cfg.Origin, OriginPC)
		cfg.Origin = OriginPC
		configChanged = true
	}
	if cfg.StateDir == "" {
		cfg.StateDir = "."
	}

	if configChanged {
		if writeErr := writeConfig(path, cfg); writeErr != nil {
			DefaultLogger.Warnf("Failed to update config file: %v", writeErr)
		}
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// PersistAppConfig updates the in-memory config and writes it back to disk.
// Used when the UI layer changes the persisted theme.
func PersistAppConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	CurrentConfig = *cfg
	if err := writeConfig(ConfigPath, CurrentConfig); err != nil {
		DefaultLogger.Warnf("Failed to persist config: %v", err)
	}
}

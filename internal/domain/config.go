package domain

import "time"

// Config mirrors ~/.easyproton/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Storage             StorageSettings `yaml:"storage"`
	Launch              LaunchSettings  `yaml:"launch"`
	Log                 LogSettings     `yaml:"log"`
}

// StorageSettings selects the history store backend.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	// Path overrides the backend's default file location.
	Path string `yaml:"path"`
}

// LaunchSettings controls the environment handed to Proton.
type LaunchSettings struct {
	SteamClientInstallPath string            `yaml:"steam_client_install_path"`
	Locale                 string            `yaml:"locale"`
	DLLOverrides           string            `yaml:"dll_overrides"`
	Env                    map[string]string `yaml:"env,omitempty"`
	GamescopeBinary        string            `yaml:"gamescope_binary"`
	ForceCloseGrace        time.Duration     `yaml:"force_close_grace"`
}

// LogSettings controls how session log lines are printed.
type LogSettings struct {
	ShowTimestamps bool `yaml:"show_timestamps"`
}

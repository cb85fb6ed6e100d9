package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default settings file.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

package helpers

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/easy-proton/internal/app"
	configapp "github.com/doeshing/easy-proton/internal/application/config"
	"github.com/doeshing/easy-proton/internal/domain"
	configinfra "github.com/doeshing/easy-proton/internal/infrastructure/config"
)

// SettingSections are the top-level keys of config.yaml.
var SettingSections = []string{"config_format_version", "storage", "launch", "log"}

// openSections hold user-defined keys; missing keys below them are created.
var openSections = map[string]bool{"launch.env": true}

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// ParseSettingKey splits a dotted key such as "launch.locale" and checks
// that it starts with a known section.
func ParseSettingKey(key string) ([]string, error) {
	parts := strings.Split(strings.TrimSpace(key), ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid setting key %q", key)
		}
	}
	if !slices.Contains(SettingSections, parts[0]) {
		return nil, fmt.Errorf("unknown settings section %q (valid: %s)", parts[0], strings.Join(SettingSections, ", "))
	}
	return parts, nil
}

// LookupSetting returns the value stored under keys.
func LookupSetting(cfg domain.Config, keys []string) (interface{}, error) {
	tree, err := settingsTree(cfg)
	if err != nil {
		return nil, err
	}
	var node interface{} = tree
	for i, key := range keys {
		section, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s is a value, not a section", strings.Join(keys[:i], "."))
		}
		next, ok := section[key]
		if !ok {
			return nil, unknownSettingError(keys[:i+1], section)
		}
		node = next
	}
	return node, nil
}

// ApplySetting returns cfg with raw stored under keys. raw is read as YAML,
// so "true", "3" and "[a, b]" keep their types; anything unparsable stays a
// string. The result must still decode into domain.Config.
func ApplySetting(cfg domain.Config, keys []string, raw string) (domain.Config, error) {
	if len(keys) == 0 {
		return domain.Config{}, fmt.Errorf("setting key is empty")
	}
	tree, err := settingsTree(cfg)
	if err != nil {
		return domain.Config{}, err
	}

	section := tree
	for i, key := range keys[:len(keys)-1] {
		next, ok := section[key]
		if !ok {
			if !openSections[strings.Join(keys[:i], ".")] && !openSections[strings.Join(keys[:i+1], ".")] {
				return domain.Config{}, unknownSettingError(keys[:i+1], section)
			}
			next = map[string]interface{}{}
			section[key] = next
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return domain.Config{}, fmt.Errorf("%s is a value, not a section", strings.Join(keys[:i+1], "."))
		}
		section = child
	}
	leaf := keys[len(keys)-1]
	if _, ok := section[leaf]; !ok && !openSections[strings.Join(keys[:len(keys)-1], ".")] {
		return domain.Config{}, unknownSettingError(keys, section)
	}
	section[leaf] = parseSettingValue(raw)

	return settingsFromTree(tree)
}

// SaveConfigWithValidation validates and saves configuration with automatic backup
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) error {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return err
	}

	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if _, err := os.Stat(loader.Path()); err == nil {
		if _, err := loader.Backup(); err != nil {
			return fmt.Errorf("failed to create configuration backup: %w", err)
		}
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func parseSettingValue(raw string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
		return raw
	}
	return parsed
}

func settingsTree(cfg domain.Config) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	tree := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return tree, nil
}

// settingsFromTree decodes tree, rejecting keys config.yaml does not know.
func settingsFromTree(tree map[string]interface{}) (domain.Config, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to marshal settings: %w", err)
	}
	var cfg domain.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return domain.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func unknownSettingError(keys []string, parent map[string]interface{}) error {
	known := make([]string, 0, len(parent))
	for k := range parent {
		known = append(known, k)
	}
	sort.Strings(known)
	return fmt.Errorf("unknown setting %s (known here: %s)", strings.Join(keys, "."), strings.Join(known, ", "))
}

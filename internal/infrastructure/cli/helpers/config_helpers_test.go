package helpers

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	configinfra "github.com/doeshing/easy-proton/internal/infrastructure/config"
)

func TestSettingSectionsMatchConfigFile(t *testing.T) {
	data, err := yaml.Marshal(configinfra.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		t.Fatal(err)
	}
	var got []string
	for k := range tree {
		got = append(got, k)
	}
	sort.Strings(got)
	want := append([]string(nil), SettingSections...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSettingKey(t *testing.T) {
	tests := []struct {
		key     string
		want    []string
		wantErr string
	}{
		{key: "launch.locale", want: []string{"launch", "locale"}},
		{key: " storage.backend ", want: []string{"storage", "backend"}},
		{key: "log", want: []string{"log"}},
		{key: "launch..locale", wantErr: "invalid setting key"},
		{key: "", wantErr: "invalid setting key"},
		{key: "ui.theme", wantErr: "valid: config_format_version, storage, launch, log"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseSettingKey(tt.key)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseSettingKey() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupSetting(t *testing.T) {
	cfg := configinfra.DefaultConfig()
	cfg.Launch.Locale = "ja_JP.UTF-8"

	if v, err := LookupSetting(cfg, []string{"launch", "locale"}); err != nil || v != "ja_JP.UTF-8" {
		t.Fatalf("launch.locale = %v, %v", v, err)
	}
	if v, err := LookupSetting(cfg, []string{"storage"}); err != nil {
		t.Fatal(err)
	} else if _, ok := v.(map[string]interface{}); !ok {
		t.Fatalf("storage = %#v, want a section", v)
	}
	_, err := LookupSetting(cfg, []string{"launch", "missing"})
	if err == nil || !strings.Contains(err.Error(), "unknown setting launch.missing") || !strings.Contains(err.Error(), "locale") {
		t.Fatalf("missing key error = %v", err)
	}
	if _, err := LookupSetting(cfg, []string{"storage", "backend", "x"}); err == nil {
		t.Fatal("descended into a scalar")
	}
}

func TestApplySetting(t *testing.T) {
	base := configinfra.DefaultConfig()

	t.Run("typed scalar", func(t *testing.T) {
		got, err := ApplySetting(base, []string{"log", "show_timestamps"}, "false")
		if err != nil {
			t.Fatal(err)
		}
		if got.Log.ShowTimestamps {
			t.Fatal("show_timestamps still true")
		}
		if !base.Log.ShowTimestamps {
			t.Fatal("input config modified")
		}
	})

	t.Run("duration", func(t *testing.T) {
		got, err := ApplySetting(base, []string{"launch", "force_close_grace"}, "5s")
		if err != nil {
			t.Fatal(err)
		}
		if got.Launch.ForceCloseGrace != 5*time.Second {
			t.Fatalf("grace = %v", got.Launch.ForceCloseGrace)
		}
	})

	t.Run("env entries are created", func(t *testing.T) {
		got, err := ApplySetting(base, []string{"launch", "env", "DXVK_HUD"}, "fps")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(map[string]string{"DXVK_HUD": "fps"}, got.Launch.Env); diff != "" {
			t.Fatalf("env mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unparsable yaml stays a string", func(t *testing.T) {
		got, err := ApplySetting(base, []string{"launch", "dll_overrides"}, "[unterminated")
		if err != nil {
			t.Fatal(err)
		}
		if got.Launch.DLLOverrides != "[unterminated" {
			t.Fatalf("dll_overrides = %q", got.Launch.DLLOverrides)
		}
	})

	failures := []struct {
		name string
		keys []string
		want string
	}{
		{"unknown key in fixed section", []string{"launch", "typo"}, "known here:"},
		{"unknown nested section", []string{"storage", "extra", "x"}, "unknown setting storage.extra"},
		{"through a scalar", []string{"storage", "backend", "x"}, "is a value, not a section"},
		{"env values are flat", []string{"launch", "env", "A", "B"}, "unknown setting launch.env.A.B"},
		{"empty", nil, "empty"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplySetting(base, tt.keys, "1")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("ApplySetting() error = %v, want %q", err, tt.want)
			}
		})
	}
}

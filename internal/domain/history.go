package domain

import (
	"encoding/json"
	"time"
)

// HistoryRecord is a launch configuration remembered for one-click relaunch.
// ID is minted once and never derived from the mutable fields.
type HistoryRecord struct {
	LaunchConfiguration
	ID             string
	DisplayName    string
	LastLaunchedAt time.Time
}

// historyRecordJSON keeps the on-disk layout of the history file written by earlier releases:
// flat path fields, "name" and a millisecond "time".
type historyRecordJSON struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Time           int64          `json:"time"`
	RuntimePath    string         `json:"proton"`
	SandboxPath    string         `json:"prefix"`
	ExecutablePath string         `json:"game"`
	Options        *LaunchOptions `json:"options,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r HistoryRecord) MarshalJSON() ([]byte, error) {
	var ts int64
	if !r.LastLaunchedAt.IsZero() {
		ts = r.LastLaunchedAt.UnixMilli()
	}
	return json.Marshal(historyRecordJSON{
		ID:             r.ID,
		Name:           r.DisplayName,
		Time:           ts,
		RuntimePath:    r.RuntimePath,
		SandboxPath:    r.SandboxPath,
		ExecutablePath: r.ExecutablePath,
		Options:        r.Options,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *HistoryRecord) UnmarshalJSON(data []byte) error {
	var raw historyRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = HistoryRecord{
		LaunchConfiguration: LaunchConfiguration{
			RuntimePath:    raw.RuntimePath,
			SandboxPath:    raw.SandboxPath,
			ExecutablePath: raw.ExecutablePath,
			Options:        raw.Options,
		},
		ID:          raw.ID,
		DisplayName: raw.Name,
	}
	if raw.Time != 0 {
		r.LastLaunchedAt = time.UnixMilli(raw.Time)
	}
	return nil
}

// Config returns the launchable part of the record.
func (r HistoryRecord) Config() LaunchConfiguration {
	return r.LaunchConfiguration.Clone()
}

// FindRecord returns the index of the record with the given id, or -1.
func FindRecord(records []HistoryRecord, id string) int {
	if id == "" {
		return -1
	}
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByConfig returns the index of the most recent record launching
// exactly cfg (same runtime, prefix and executable), or -1.
func FindByConfig(records []HistoryRecord, cfg LaunchConfiguration) int {
	for i := range records {
		r := records[i]
		if r.RuntimePath == cfg.RuntimePath &&
			r.SandboxPath == cfg.SandboxPath &&
			r.ExecutablePath == cfg.ExecutablePath {
			return i
		}
	}
	return -1
}

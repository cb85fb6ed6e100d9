// Package launch drives one launcher session: it owns the working launch
// configuration and the in-memory history, runs the Idle -> Launching ->
// Idle cycle and reports every outcome to the session log.
package launch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/doeshing/easy-proton/internal/application/history"
	"github.com/doeshing/easy-proton/internal/application/sessionlog"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/ports"
)

// Request describes one launch attempt. When RecordID is set the launch
// starts from that history record and Config is ignored. A nil Config means
// the session's working configuration.
type Request struct {
	Config      *domain.LaunchConfiguration
	DisplayName string
	RecordID    string
}

// Result reports a successful launch.
type Result struct {
	Status string
	Record domain.HistoryRecord
	// HistoryErr is set when the game started but the history could not be
	// persisted. The in-memory history is left as it was.
	HistoryErr error
}

// Session is the orchestrator behind every user action.
type Session struct {
	Invoker *Invoker
	History *history.Service
	Configs ports.ConfigurationStore
	Picker  ports.PathPicker
	Log     *sessionlog.Log
	Logger  ports.Logger

	mu           sync.Mutex
	state        domain.LaunchState
	config       domain.LaunchConfiguration
	records      []domain.HistoryRecord
	nameOverride string
}

// Init loads the last configuration and the history. Both are best effort:
// failures end up in the session log and the session starts empty.
func (s *Session) Init(ctx context.Context) {
	if s.Configs != nil {
		cfg, err := s.Configs.Load(ctx)
		switch {
		case err != nil:
			s.logf("failed to load configuration: %v", err)
		case cfg != nil && !cfg.IsEmpty():
			s.mu.Lock()
			s.config = cfg.Clone()
			s.mu.Unlock()
		}
	}

	records, err := s.History.Load(ctx)
	if err != nil {
		s.logf("failed to load history: %v", err)
		return
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	if len(records) > 0 {
		s.logf("loaded %d game records", len(records))
	}
}

// State returns the current launch state.
func (s *Session) State() domain.LaunchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == "" {
		return domain.LaunchStateIdle
	}
	return s.state
}

// Config returns a copy of the working configuration.
func (s *Session) Config() domain.LaunchConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// SetConfig replaces the working configuration.
func (s *Session) SetConfig(cfg domain.LaunchConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg.Clone()
}

// SetPath updates one path of the working configuration.
func (s *Session) SetPath(target domain.PathTarget, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch target {
	case domain.PathTargetRuntime:
		s.config.RuntimePath = path
	case domain.PathTargetSandbox:
		s.config.SandboxPath = path
	case domain.PathTargetExecutable:
		s.config.ExecutablePath = path
	default:
		return fmt.Errorf("unknown path target %q", target)
	}
	return nil
}

// SetDisplayName sets a one-shot name used by the next successful launch of
// the working configuration.
func (s *Session) SetDisplayName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nameOverride = name
}

// DisplayName returns the pending one-shot name.
func (s *Session) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nameOverride
}

// Records returns a copy of the in-memory history, most recent first.
func (s *Session) Records() []domain.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Record looks up a history record by id.
func (s *Session) Record(id string) (domain.HistoryRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.FindRecord(s.records, id)
	if idx < 0 {
		return domain.HistoryRecord{}, false
	}
	return s.records[idx], true
}

// Launch runs one launch cycle. Only one launch may be in flight; a second
// call while Launching returns domain.ErrLaunchInProgress.
func (s *Session) Launch(ctx context.Context, req Request) (Result, error) {
	cfg, matched, name, err := s.resolve(req)
	if err != nil {
		s.logf("error: %v", err)
		return Result{}, err
	}
	if err := cfg.Validate(); err != nil {
		s.logf("error: %v", err)
		return Result{}, err
	}

	if err := s.begin(); err != nil {
		return Result{}, err
	}
	defer s.end()

	status, err := s.Invoker.Launch(ctx, cfg)
	if err != nil {
		s.logf("launch failed: %v", err)
		return Result{}, err
	}
	s.logf("%s", status)

	result := Result{Status: status}
	s.mu.Lock()
	next, histErr := s.History.Record(ctx, s.records, cfg, name, matched)
	if histErr == nil {
		s.records = next
		result.Record = next[0]
	}
	s.nameOverride = ""
	s.config = cfg.Clone()
	s.mu.Unlock()

	if histErr != nil {
		result.HistoryErr = histErr
		s.logf("history not saved: %v", histErr)
		s.logError("persist history", histErr)
	}
	if s.Configs != nil {
		if err := s.Configs.Save(ctx, cfg); err != nil {
			s.logf("failed to save configuration: %v", err)
		}
	}
	return result, nil
}

// Relaunch starts the game stored in the history record with id.
func (s *Session) Relaunch(ctx context.Context, id string) (Result, error) {
	return s.Launch(ctx, Request{RecordID: id})
}

// EditRecord saves the name and executable of a history record. An unknown
// id is ignored.
func (s *Session) EditRecord(ctx context.Context, updated domain.HistoryRecord) (bool, error) {
	s.mu.Lock()
	next, found, err := s.History.Save(ctx, s.records, updated)
	if err == nil && found {
		s.records = next
	}
	s.mu.Unlock()

	switch {
	case err != nil:
		s.logf("history not saved: %v", err)
		return false, err
	case found:
		s.logf("updated game: %s", next[0].DisplayName)
	}
	return found, nil
}

// DeleteRecord removes a history record. Deleting an unknown id is a no-op
// and returns a nil record.
func (s *Session) DeleteRecord(ctx context.Context, id string) (*domain.HistoryRecord, error) {
	s.mu.Lock()
	next, removed, err := s.History.Delete(ctx, s.records, id)
	if err == nil && removed != nil {
		s.records = next
	}
	s.mu.Unlock()

	if err != nil {
		s.logf("history not saved: %v", err)
		return nil, err
	}
	if removed != nil {
		s.logf("deleted game: %s", removed.DisplayName)
	}
	return removed, nil
}

// ClearHistory drops every history record.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.History.Clear(ctx); err != nil {
		s.logf("history not saved: %v", err)
		return err
	}
	s.records = []domain.HistoryRecord{}
	s.logf("cleared game history")
	return nil
}

// ForceCloseAll stops every game started through the launcher. It does not
// change the launch state: a launch in flight finishes on its own.
func (s *Session) ForceCloseAll(ctx context.Context) (string, error) {
	status, err := s.Invoker.ForceCloseAll(ctx)
	if err != nil {
		s.logf("force close failed: %v", err)
		return "", err
	}
	s.logf("%s", status)
	return status, nil
}

// PickPath asks the picker for a path and stores it in the working
// configuration. Cancelling the picker is a no-op.
func (s *Session) PickPath(ctx context.Context, target domain.PathTarget) (string, bool, error) {
	if !target.Valid() {
		return "", false, fmt.Errorf("unknown path target %q", target)
	}
	if s.Picker == nil {
		return "", false, errors.New("no path picker available")
	}
	path, ok, err := s.Picker.Pick(ctx, target.DirectoryMode())
	if err != nil {
		s.logf("path selection failed: %v", err)
		return "", false, err
	}
	if !ok || path == "" {
		return "", false, nil
	}
	if err := s.SetPath(target, path); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// SaveConfig persists the working configuration as the default.
func (s *Session) SaveConfig(ctx context.Context) error {
	if s.Configs == nil {
		return errors.New("no configuration store available")
	}
	if err := s.Configs.Save(ctx, s.Config()); err != nil {
		s.logf("failed to save configuration: %v", err)
		return err
	}
	return nil
}

func (s *Session) resolve(req Request) (domain.LaunchConfiguration, *domain.HistoryRecord, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.RecordID != "" {
		idx := domain.FindRecord(s.records, req.RecordID)
		if idx < 0 {
			return domain.LaunchConfiguration{}, nil, "", fmt.Errorf("%w: %s", domain.ErrRecordNotFound, req.RecordID)
		}
		matched := s.records[idx]
		return matched.Config(), &matched, req.DisplayName, nil
	}

	cfg := s.config
	if req.Config != nil {
		cfg = *req.Config
	}
	name := req.DisplayName
	if name == "" {
		name = s.nameOverride
	}
	// Launching a configuration that is already in the history refreshes
	// that record instead of adding a twin.
	var matched *domain.HistoryRecord
	if idx := domain.FindByConfig(s.records, cfg); idx >= 0 {
		rec := s.records[idx]
		matched = &rec
	}
	return cfg.Clone(), matched, name, nil
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.LaunchStateLaunching {
		return domain.ErrLaunchInProgress
	}
	s.state = domain.LaunchStateLaunching
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.LaunchStateIdle
}

func (s *Session) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Appendf(format, args...)
	}
}

func (s *Session) logError(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Error(msg, err, nil)
	}
}

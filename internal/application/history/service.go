// Package history maintains the bounded, most-recent-first list of launched
// games and persists it through a ports.KeyValueStore.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/ports"
)

// IDGenerator mints record identities.
type IDGenerator func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Service reconciles launches into the history and applies record edits.
// It never holds the list itself: callers pass the current list in and
// commit the returned one only when no error is reported.
type Service struct {
	Store  ports.KeyValueStore
	Clock  clockwork.Clock
	NewID  IDGenerator
	Logger ports.Logger
	// Limit caps the list; zero means domain.HistoryLimit.
	Limit int
}

// NewService builds a Service with wall-clock time and UUID identities.
func NewService(store ports.KeyValueStore, log ports.Logger) *Service {
	return &Service{
		Store:  store,
		Clock:  clockwork.NewRealClock(),
		NewID:  NewID,
		Logger: log,
	}
}

// Load reads the persisted history. A missing collection is an empty list.
// Records written before identities existed get one minted here, and the
// repaired list is written back so the minted ids survive the next start.
// A failed write-back is logged, not returned.
func (s *Service) Load(ctx context.Context) ([]domain.HistoryRecord, error) {
	if s.Store == nil {
		return nil, errors.New("history.Service store not configured")
	}
	var records []domain.HistoryRecord
	found, err := s.Store.Get(ctx, domain.HistoryKey, &records)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Key: domain.HistoryKey, Err: err}
	}
	if !found {
		return []domain.HistoryRecord{}, nil
	}
	normalized, repaired := s.normalize(records)
	if repaired {
		if err := s.persist(ctx, normalized); err != nil {
			s.warn("repaired history not saved", map[string]interface{}{"error": err.Error()})
		} else {
			s.debug("history repaired", map[string]interface{}{"records": len(normalized)})
		}
	}
	return normalized, nil
}

// Record reconciles a successful launch into list and persists the result.
// matched is the history record the launch was started from, if any.
func (s *Service) Record(
	ctx context.Context,
	list []domain.HistoryRecord,
	launched domain.LaunchConfiguration,
	displayName string,
	matched *domain.HistoryRecord,
) ([]domain.HistoryRecord, error) {
	id := ""
	if matched == nil {
		id = s.newID()
	}
	next := Reconcile(list, launched, displayName, matched, id, s.now(), s.limit())
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.debug("history recorded", map[string]interface{}{"id": next[0].ID, "records": len(next)})
	return next, nil
}

// Save applies the editable fields of updated to the record with the same
// id. The returned bool is false when no record matched; in that case the
// list is returned unchanged and nothing is persisted.
func (s *Service) Save(
	ctx context.Context,
	list []domain.HistoryRecord,
	updated domain.HistoryRecord,
) ([]domain.HistoryRecord, bool, error) {
	next, ok := ApplyEdit(list, updated, s.now())
	if !ok {
		return list, false, nil
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// Delete removes the record with id and returns it. Deleting an unknown id
// is a no-op that returns the list unchanged and a nil record.
func (s *Service) Delete(
	ctx context.Context,
	list []domain.HistoryRecord,
	id string,
) ([]domain.HistoryRecord, *domain.HistoryRecord, error) {
	next, removed := Remove(list, id)
	if removed == nil {
		return list, nil, nil
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, nil, err
	}
	return next, removed, nil
}

// Clear persists an empty history.
func (s *Service) Clear(ctx context.Context) error {
	return s.persist(ctx, []domain.HistoryRecord{})
}

// Reconcile builds the history that results from launching cfg. The record
// identity comes from matched when relaunching, otherwise from newID.
// Existing entries are matched on identity only: paths are editable and
// therefore never used to dedupe.
func Reconcile(
	list []domain.HistoryRecord,
	cfg domain.LaunchConfiguration,
	displayName string,
	matched *domain.HistoryRecord,
	newID string,
	now time.Time,
	limit int,
) []domain.HistoryRecord {
	if limit <= 0 {
		limit = domain.HistoryLimit
	}

	candidate := domain.HistoryRecord{
		LaunchConfiguration: cfg.Clone(),
		ID:                  newID,
		LastLaunchedAt:      now,
	}
	name := strings.TrimSpace(displayName)
	if matched != nil {
		candidate.ID = matched.ID
		if name == "" {
			name = matched.DisplayName
		}
	}
	if name == "" {
		name = domain.DisplayNameFromPath(cfg.ExecutablePath)
	}
	candidate.DisplayName = name

	next := make([]domain.HistoryRecord, 0, min(len(list)+1, limit))
	next = append(next, candidate)
	for _, rec := range list {
		if len(next) == limit {
			break
		}
		if rec.ID == candidate.ID {
			continue
		}
		next = append(next, rec)
	}
	return next
}

// ApplyEdit replaces the name and executable of the record matching
// updated.ID and moves it to the front. Runtime, prefix and options are
// fixed per record and stay as they are. Blank fields keep the old value.
func ApplyEdit(list []domain.HistoryRecord, updated domain.HistoryRecord, now time.Time) ([]domain.HistoryRecord, bool) {
	idx := domain.FindRecord(list, updated.ID)
	if idx < 0 {
		return list, false
	}

	rec := list[idx]
	if name := strings.TrimSpace(updated.DisplayName); name != "" {
		rec.DisplayName = name
	}
	if exe := strings.TrimSpace(updated.ExecutablePath); exe != "" {
		rec.ExecutablePath = exe
	}
	rec.LastLaunchedAt = now

	next := make([]domain.HistoryRecord, 0, len(list))
	next = append(next, rec)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	return next, true
}

// Remove drops the record with id. The removed record is nil when nothing
// matched.
func Remove(list []domain.HistoryRecord, id string) ([]domain.HistoryRecord, *domain.HistoryRecord) {
	idx := domain.FindRecord(list, id)
	if idx < 0 {
		return list, nil
	}
	removed := list[idx]
	next := make([]domain.HistoryRecord, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	return next, &removed
}

func (s *Service) persist(ctx context.Context, list []domain.HistoryRecord) error {
	if s.Store == nil {
		return errors.New("history.Service store not configured")
	}
	if err := s.Store.Set(ctx, domain.HistoryKey, list); err != nil {
		return &domain.PersistenceError{Op: "set", Key: domain.HistoryKey, Err: err}
	}
	if err := s.Store.Flush(ctx); err != nil {
		return &domain.PersistenceError{Op: "flush", Err: err}
	}
	return nil
}

// normalize drops duplicate identities, mints ids for legacy records and
// enforces the cap on data read from disk. repaired reports whether the
// result differs from what is stored.
func (s *Service) normalize(records []domain.HistoryRecord) (out []domain.HistoryRecord, repaired bool) {
	seen := make(map[string]struct{}, len(records))
	out = make([]domain.HistoryRecord, 0, len(records))
	for _, rec := range records {
		if len(out) == s.limit() {
			repaired = true
			break
		}
		if rec.ID == "" {
			rec.ID = s.newID()
			repaired = true
			s.debug("minted id for legacy record", map[string]interface{}{"game": rec.ExecutablePath})
		}
		if _, dup := seen[rec.ID]; dup {
			repaired = true
			continue
		}
		seen[rec.ID] = struct{}{}
		if strings.TrimSpace(rec.DisplayName) == "" {
			rec.DisplayName = domain.DisplayNameFromPath(rec.ExecutablePath)
		}
		out = append(out, rec)
	}
	return out, repaired
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) newID() string {
	if s.NewID == nil {
		return NewID()
	}
	return s.NewID()
}

func (s *Service) limit() int {
	if s.Limit <= 0 {
		return domain.HistoryLimit
	}
	return s.Limit
}

func (s *Service) warn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

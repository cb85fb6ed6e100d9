package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/easy-proton/internal/domain"
)

// maxPositionDigits bounds bare numbers read as list positions. The list
// never holds more than domain.HistoryLimit records.
const maxPositionDigits = 3

// ResolveRecord finds a history record by reference:
//   - "#N" is always the 1-based list position N;
//   - a bare number of up to three digits is a position when one exists at
//     that index, otherwise it is tried as an id prefix;
//   - anything else is a full id or a unique id prefix.
func ResolveRecord(records []domain.HistoryRecord, ref string) (domain.HistoryRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.HistoryRecord{}, fmt.Errorf("record reference is empty")
	}
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil {
			return domain.HistoryRecord{}, fmt.Errorf("invalid record position %q", ref)
		}
		return recordAt(records, n)
	}
	position := 0
	if n, err := strconv.Atoi(ref); err == nil && len(ref) <= maxPositionDigits {
		if rec, err := recordAt(records, n); err == nil {
			return rec, nil
		}
		position = n
	}
	if idx := domain.FindRecord(records, ref); idx >= 0 {
		return records[idx], nil
	}

	var matches []domain.HistoryRecord
	for _, rec := range records {
		if strings.HasPrefix(rec.ID, ref) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		if position != 0 || ref == "0" {
			return domain.HistoryRecord{}, fmt.Errorf("%w: no record at position %d", domain.ErrRecordNotFound, position)
		}
		return domain.HistoryRecord{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.HistoryRecord{}, fmt.Errorf("record reference %q is ambiguous", ref)
	}
}

func recordAt(records []domain.HistoryRecord, n int) (domain.HistoryRecord, error) {
	if n < 1 || n > len(records) {
		return domain.HistoryRecord{}, fmt.Errorf("%w: no record at position %d", domain.ErrRecordNotFound, n)
	}
	return records[n-1], nil
}

package helpers

import (
	"errors"
	"testing"

	"github.com/doeshing/easy-proton/internal/domain"
)

func TestResolveRecord(t *testing.T) {
	records := []domain.HistoryRecord{
		{ID: "abc12345-0000", DisplayName: "Foo"},
		{ID: "abd99999-0000", DisplayName: "Bar"},
		{ID: "1234", DisplayName: "Numeric"},
		{ID: "12099999-0000", DisplayName: "Digits"},
	}
	tests := []struct {
		ref      string
		want     string
		notFound bool
		wantErr  bool
	}{
		{ref: "1", want: "Foo"},
		{ref: "2", want: "Bar"},
		{ref: "abd99999-0000", want: "Bar"},
		{ref: "abc", want: "Foo"},
		{ref: "1234", want: "Numeric"},
		{ref: "ab", wantErr: true},
		{ref: "#2", want: "Bar"},
		{ref: "#4", want: "Digits"},
		{ref: "120", want: "Digits"},
		{ref: "12", wantErr: true},
		{ref: "#5", notFound: true},
		{ref: "#x", wantErr: true},
		{ref: "5", notFound: true},
		{ref: "0", notFound: true},
		{ref: "zzz", notFound: true},
		{ref: " ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ResolveRecord(records, tt.ref)
		switch {
		case tt.notFound:
			if !errors.Is(err, domain.ErrRecordNotFound) {
				t.Errorf("ResolveRecord(%q) err = %v, want ErrRecordNotFound", tt.ref, err)
			}
		case tt.wantErr:
			if err == nil {
				t.Errorf("ResolveRecord(%q) succeeded", tt.ref)
			}
		default:
			if err != nil || got.DisplayName != tt.want {
				t.Errorf("ResolveRecord(%q) = %q, %v; want %q", tt.ref, got.DisplayName, err, tt.want)
			}
		}
	}
}

package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("Delete Foo?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Delete Foo? [y/N]") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestPrompterConfirmEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	if _, err := p.Confirm("Continue?"); err == nil {
		t.Fatal("expected error on empty input")
	}
	if !p.Enabled() {
		t.Fatal("non-file readers are treated as interactive")
	}
}

package subject

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Subject
		wantErr bool
	}{
		{"math", Math, false},
		{" English ", English, false},
		{"语文", Chinese, false},
		{"英语", English, false},
		{"英语听力", "", true}, // no substring matching
		{"古诗", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknown) {
				t.Errorf("Parse(%q) err = %v, want ErrUnknown", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	for _, s := range All {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
		if s.Label() == string(s) {
			t.Errorf("%q has no label", s)
		}
	}
	if Subject("physics").Valid() {
		t.Error("physics should not be valid")
	}
}

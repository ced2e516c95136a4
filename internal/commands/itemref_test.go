package commands

import (
	"errors"
	"testing"
)

func TestParseItemRef(t *testing.T) {
	num, err := ParseItemRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 5 {
		t.Errorf("expected 5, got %d", num)
	}
}

func TestParseItemRef_IgnoresExtraArgs(t *testing.T) {
	num, err := ParseItemRef([]string{"12", "new", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 12 {
		t.Errorf("expected 12, got %d", num)
	}
}

func TestParseItemRef_NoArgs(t *testing.T) {
	_, err := ParseItemRef(nil)
	if !errors.Is(err, ErrItemRefRequired) {
		t.Errorf("expected ErrItemRefRequired, got %v", err)
	}
}

func TestParseItemRef_Invalid(t *testing.T) {
	tests := []struct {
		arg     string
		wantMsg string
	}{
		{"0", "invalid item number: 0"},
		{"a1", "invalid item number: a1"},
		{"-3", "invalid item number: -3"},
		{"1.5", "invalid item number: 1.5"},
		{"٣", "invalid item number: ٣"},
		{"99999999999999999999", "invalid item number: 99999999999999999999"},
	}
	for _, tt := range tests {
		_, err := ParseItemRef([]string{tt.arg})
		if err == nil {
			t.Errorf("ParseItemRef(%q): expected error", tt.arg)
			continue
		}
		if err.Error() != tt.wantMsg {
			t.Errorf("ParseItemRef(%q): expected %q, got %q", tt.arg, tt.wantMsg, err.Error())
		}
	}
}

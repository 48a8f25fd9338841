package services

import (
	"errors"
	"testing"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
)

func TestValidateEventWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"default window", "8:00", "9:00", false},
		{"padded hours", "08:00", "17:30", false},
		{"start equals end", "10:00", "10:00", true},
		{"start after end", "14:00", "9:00", true},
		{"garbage start", "morning", "9:00", true},
		{"garbage end", "8:00", "nine", true},
		{"missing minutes", "8", "9:00", true},
		{"hour out of range", "25:00", "26:00", true},
		{"minute out of range", "8:61", "9:00", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateEventWindow(test.start, test.end)
			if test.wantErr {
				if !errors.Is(err, errs.ErrValidation) {
					t.Errorf("validateEventWindow(%q, %q) = %v, want ErrValidation", test.start, test.end, err)
				}
			} else if err != nil {
				t.Errorf("validateEventWindow(%q, %q) = %v, want nil", test.start, test.end, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := parseClock("13:45")
	if err != nil {
		t.Fatalf("parseClock: %v", err)
	}
	if minutes != 13*60+45 {
		t.Errorf("parseClock(13:45) = %d, want %d", minutes, 13*60+45)
	}
}

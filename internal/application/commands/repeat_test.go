package commands

import (
	"slices"
	"testing"
)

func TestRepeat_Dates(t *testing.T) {
	tests := []struct {
		name   string
		repeat Repeat
		date   string
		want   []string
	}{
		{"single", Repeat{}, "2024-03-10", []string{"2024-03-10"}},
		{"daily across month", Repeat{Frequency: "daily", Count: 3}, "2024-02-28",
			[]string{"2024-02-28", "2024-02-29", "2024-03-01"}},
		{"weekly", Repeat{Frequency: "Weekly", Count: 2}, "2024-03-10",
			[]string{"2024-03-10", "2024-03-17"}},
		{"monthly skips short months", Repeat{Frequency: "monthly", Count: 3}, "2024-01-31",
			[]string{"2024-01-31", "2024-03-31", "2024-05-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.repeat.Dates(tt.date)
			if err != nil {
				t.Fatalf("Dates failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Dates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepeat_Validate(t *testing.T) {
	tests := []struct {
		name    string
		repeat  Repeat
		wantErr bool
		errMsg  string
	}{
		{"none", Repeat{}, false, ""},
		{"valid", Repeat{Frequency: "daily", Count: 5}, false, ""},
		{"unknown frequency", Repeat{Frequency: "hourly", Count: 5}, true, "expected daily, weekly or monthly"},
		{"zero count", Repeat{Frequency: "daily"}, true, "must be between 1 and 366"},
		{"too many", Repeat{Frequency: "daily", Count: 367}, true, "must be between 1 and 366"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.repeat.Validate()
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

package temporal

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Date
		present bool
		wantErr bool
	}{
		{
			name:    "valid date",
			value:   "20220518",
			want:    Date{2022, time.May, 18},
			present: true,
		},
		{
			name:    "empty is absent not an error",
			value:   "",
			present: false,
		},
		{
			name:    "too short",
			value:   "2022518",
			wantErr: true,
		},
		{
			name:    "too long",
			value:   "202205181",
			wantErr: true,
		},
		{
			name:    "not digits",
			value:   "2022051a",
			wantErr: true,
		},
		{
			name:    "signed",
			value:   "-2220518",
			wantErr: true,
		},
		{
			name:    "impossible calendar date",
			value:   "20220230",
			wantErr: true,
		},
		{
			name:    "month zero",
			value:   "20220018",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := ParseDate(tt.value)

			if tt.wantErr {
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("ParseDate(%q) error = %v, want FormatError", tt.value, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.value, err)
			}
			if present != tt.present {
				t.Fatalf("ParseDate(%q) present = %v, want %v", tt.value, present, tt.present)
			}
			if present && got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDateCached(t *testing.T) {
	first, _, err := ParseDate("20230201")
	if err != nil {
		t.Fatal(err)
	}

	second, present, err := ParseDate("20230201")
	if err != nil || !present {
		t.Fatalf("cached parse failed: present = %v, err = %v", present, err)
	}
	if first != second {
		t.Errorf("cached parse returned %v, want %v", second, first)
	}
}

func TestParseClockOffset(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		present bool
		wantErr bool
	}{
		{
			name:    "regular time",
			value:   "10:30:15",
			want:    10*time.Hour + 30*time.Minute + 15*time.Second,
			present: true,
		},
		{
			name:    "after midnight",
			value:   "26:20:45",
			want:    26*time.Hour + 20*time.Minute + 45*time.Second,
			present: true,
		},
		{
			name:    "digit grouping is not validated",
			value:   "7:5:2",
			want:    7*time.Hour + 5*time.Minute + 2*time.Second,
			present: true,
		},
		{
			name:    "empty is absent not an error",
			value:   "",
			present: false,
		},
		{
			name:    "two parts",
			value:   "10:30",
			wantErr: true,
		},
		{
			name:    "four parts",
			value:   "1:10:30:15",
			wantErr: true,
		},
		{
			name:    "not integers",
			value:   "aa:bb:cc",
			wantErr: true,
		},
		{
			name:    "negative part",
			value:   "-1:30:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := ParseClockOffset(tt.value)

			if tt.wantErr {
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("ParseClockOffset(%q) error = %v, want FormatError", tt.value, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseClockOffset(%q) unexpected error: %v", tt.value, err)
			}
			if present != tt.present {
				t.Fatalf("ParseClockOffset(%q) present = %v, want %v", tt.value, present, tt.present)
			}
			if present && got != tt.want {
				t.Errorf("ParseClockOffset(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDateOrderingHelpers(t *testing.T) {
	earlier := Date{2022, time.May, 18}
	later := Date{2022, time.May, 19}

	if !earlier.Before(later) || later.Before(earlier) {
		t.Error("Before is inconsistent")
	}
	if !later.After(earlier) || earlier.After(later) {
		t.Error("After is inconsistent")
	}
	if earlier.Next() != later {
		t.Errorf("Next() = %v, want %v", earlier.Next(), later)
	}

	endOfYear := Date{2022, time.December, 31}
	if endOfYear.Next() != (Date{2023, time.January, 1}) {
		t.Errorf("Next() across year = %v", endOfYear.Next())
	}

	if got := (Date{2022, time.May, 16}).Weekday(); got != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", got)
	}
}

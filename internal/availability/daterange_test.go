package availability

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
		wantDays int
	}{
		{"two nights", "2021-11-01", "2021-11-03", false, 2},
		{"one night", "2021-11-01", "2021-11-02", false, 1},
		{"long stay", "2021-11-01", "2021-12-01", false, 30},
		{"equal bounds", "2021-11-01", "2021-11-01", true, 0},
		{"reversed", "2021-11-03", "2021-11-01", true, 0},
		{"bad check_in", "11/01/2021", "2021-11-03", true, 0},
		{"bad check_out", "2021-11-01", "soon", true, 0},
		{"empty check_in", "", "2021-11-03", true, 0},
		{"empty both", "", "", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.checkIn, tt.checkOut)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("ParseRange(%q, %q) err = %v, want ErrInvalidRange", tt.checkIn, tt.checkOut, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q, %q) unexpected error: %v", tt.checkIn, tt.checkOut, err)
			}
			if got := r.Days(); got != tt.wantDays {
				t.Errorf("Days() = %d, want %d", got, tt.wantDays)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := DateRange{CheckIn: date("2021-11-10"), CheckOut: date("2021-11-15")}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", DateRange{date("2021-11-10"), date("2021-11-15")}, true},
		{"nested inside", DateRange{date("2021-11-11"), date("2021-11-13")}, true},
		{"containing", DateRange{date("2021-11-01"), date("2021-11-30")}, true},
		{"overlap left edge", DateRange{date("2021-11-08"), date("2021-11-11")}, true},
		{"overlap right edge", DateRange{date("2021-11-14"), date("2021-11-20")}, true},
		{"single shared night", DateRange{date("2021-11-14"), date("2021-11-15")}, true},
		{"back-to-back before", DateRange{date("2021-11-05"), date("2021-11-10")}, false},
		{"back-to-back after", DateRange{date("2021-11-15"), date("2021-11-20")}, false},
		{"disjoint before", DateRange{date("2021-11-01"), date("2021-11-05")}, false},
		{"disjoint after", DateRange{date("2021-11-20"), date("2021-11-25")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("base.Overlaps(%s..%s) = %v, want %v",
					tt.other.CheckIn.Format(DateLayout), tt.other.CheckOut.Format(DateLayout), got, tt.want)
			}
			// The predicate is symmetric.
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("other.Overlaps(base) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlappingBareBounds(t *testing.T) {
	if !Overlapping(date("2021-11-01"), date("2021-11-03"), date("2021-11-02"), date("2021-11-04")) {
		t.Error("partial overlap not detected")
	}
	if Overlapping(date("2021-11-01"), date("2021-11-03"), date("2021-11-03"), date("2021-11-05")) {
		t.Error("back-to-back stays must not overlap")
	}
}

package release

import (
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
		ok    bool
	}{
		{"year only", "2001", Date{Year: 2001}, true},
		{"year and month", "2001-03", Date{Year: 2001, Month: 3}, true},
		{"full date", "2001-03-07", Date{Year: 2001, Month: 3, Day: 7}, true},
		{"month out of range", "2001-13", Date{}, false},
		{"day out of range", "2001-03-32", Date{}, false},
		{"unpadded month", "2001-3", Date{}, false},
		{"short year", "801", Date{}, false},
		{"trailing garbage", "2001-03-07x", Date{}, false},
		{"not a date", "March 2001", Date{}, false},
		{"empty", "", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want bool
	}{
		{"same year only", Date{Year: 2000}, Date{Year: 2000}, true},
		{"different years", Date{Year: 2000}, Date{Year: 2001}, false},
		{"year vs year-month", Date{Year: 2000}, Date{Year: 2000, Month: 2}, true},
		{"year vs full", Date{Year: 2000}, Date{Year: 2000, Month: 2, Day: 20}, true},
		{"year-month vs full same month", Date{Year: 2000, Month: 2}, Date{Year: 2000, Month: 2, Day: 20}, true},
		{"year-month vs full different month", Date{Year: 2000, Month: 3}, Date{Year: 2000, Month: 2, Day: 20}, false},
		{"full vs full same", Date{Year: 2000, Month: 2, Day: 20}, Date{Year: 2000, Month: 2, Day: 20}, true},
		{"full vs full different day", Date{Year: 2000, Month: 2, Day: 20}, Date{Year: 2000, Month: 2, Day: 21}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Equality is symmetric regardless of precision.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestDateEqualReflexive(t *testing.T) {
	for _, d := range []Date{
		{Year: 1999},
		{Year: 1999, Month: 12},
		{Year: 1999, Month: 12, Day: 31},
	} {
		if !d.Equal(d) {
			t.Errorf("Equal(%v, %v) = false, want true", d, d)
		}
	}
}

func TestDateRoundTrip(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{Year: 2001}, "2001"},
		{Date{Year: 2001, Month: 3}, "2001-03"},
		{Date{Year: 2001, Month: 3, Day: 7}, "2001-03-07"},
		{Date{Year: 801}, "0801"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.date.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
			parsed, ok := ParseDate(tt.date.String())
			if !ok {
				t.Fatalf("ParseDate(%q) failed", tt.date.String())
			}
			if parsed != tt.date {
				t.Errorf("round trip: got %+v, want %+v", parsed, tt.date)
			}
		})
	}
}

package release

import (
	"fmt"
	"regexp"
)

// Date is a partial release date. Year is always set; Month and Day are 0
// when unknown. If Day is set, Month must be set too.
type Date struct {
	Year  int
	Month int
	Day   int
}

var (
	dateFullRe  = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	dateMonthRe = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
	dateYearRe  = regexp.MustCompile(`^(\d{4})$`)
)

// ParseDate parses the canonical yyyy[-mm[-dd]] form. The most precise
// grammar that matches wins. Returns false for anything else; callers treat
// an unparseable date as a finding, not an error.
func ParseDate(s string) (Date, bool) {
	if m := dateFullRe.FindStringSubmatch(s); m != nil {
		return Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}, true
	}
	if m := dateMonthRe.FindStringSubmatch(s); m != nil {
		return Date{Year: atoi(m[1]), Month: atoi(m[2])}, true
	}
	if m := dateYearRe.FindStringSubmatch(s); m != nil {
		return Date{Year: atoi(m[1])}, true
	}
	return Date{}, false
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Equal compares two dates using the precision of the shallower operand.
// A year-only date is equal to any date in that year.
func (d Date) Equal(o Date) bool {
	if d.Year != o.Year {
		return false
	}
	if d.Month == 0 || o.Month == 0 {
		return true
	}
	if d.Month != o.Month {
		return false
	}
	if d.Day == 0 || o.Day == 0 {
		return true
	}
	return d.Day == o.Day
}

// String renders the canonical form for however much of the date is set.
func (d Date) String() string {
	switch {
	case d.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.Month != 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

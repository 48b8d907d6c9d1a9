package capgains

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TaxYear identifies a 1-July to 30-June fiscal year by its ending calendar
// year: FY2024-25 runs from 1 July 2024 to 30 June 2025 and is TaxYear(2025).
// The zero value means "all years" when used as a filter.
type TaxYear int

// AllYears is the unfiltered TaxYear selector.
const AllYears TaxYear = 0

// TaxYearOf returns the tax year a date falls in. July through December
// belong to the year ending the following calendar year, January through
// June to the year ending the same calendar year.
func TaxYearOf(d Date) TaxYear {
	if d.Month() >= time.July {
		return TaxYear(d.Year() + 1)
	}
	return TaxYear(d.Year())
}

// String formats the tax year like "FY2024-25".
func (y TaxYear) String() string {
	if y == AllYears {
		return "all"
	}
	return fmt.Sprintf("FY%d-%02d", int(y)-1, int(y)%100)
}

// From returns the first day of the tax year (1 July).
func (y TaxYear) From() Date { return NewDate(int(y)-1, time.July, 1) }

// To returns the last day of the tax year (30 June).
func (y TaxYear) To() Date { return NewDate(int(y), time.June, 30) }

// Contains reports whether the date falls within the tax year.
// AllYears contains every date.
func (y TaxYear) Contains(d Date) bool {
	return y == AllYears || TaxYearOf(d) == y
}

var fyRE = regexp.MustCompile(`^(?i:FY)?(\d{4})(?:-(\d{2,4}))?$`)

// ParseTaxYear parses a tax year selector. It accepts an ending calendar
// year ("2025"), a fiscal label ("FY2024-25"), or "all". Anything else is a
// usage error.
func ParseTaxYear(s string) (TaxYear, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllYears, nil
	}
	match := fyRE.FindStringSubmatch(s)
	if match == nil {
		return AllYears, fmt.Errorf("invalid tax year %q: want an ending year like %q or a label like %q", s, "2025", "FY2024-25")
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		// unreachable given the regexp
		return AllYears, fmt.Errorf("invalid tax year %q: %w", s, err)
	}
	if match[2] == "" {
		// A bare year is the ending year.
		return TaxYear(year), nil
	}
	// A label like FY2024-25 (or 2024-2025) names the starting year first.
	end, err := strconv.Atoi(match[2])
	if err != nil {
		return AllYears, fmt.Errorf("invalid tax year %q: %w", s, err)
	}
	if end < 100 {
		end += year / 100 * 100
		if end < year {
			end += 100 // FY1999-00
		}
	}
	if end != year+1 {
		return AllYears, fmt.Errorf("invalid tax year %q: %d does not follow %d", s, end, year)
	}
	return TaxYear(end), nil
}

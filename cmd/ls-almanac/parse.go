package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-almanac/internal/civil"
)

// errInvalidInput marks malformed command arguments.
var errInvalidInput = errors.New("invalid input")

// parseDate reads YYYY-MM-DD. The year may be negative (astronomical
// numbering) and dates before 1582-10-15 are Julian calendar dates.
func parseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), "-")
	if len(parts) != 3 {
		return civil.Date{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", errInvalidInput, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: year %q", errInvalidInput, parts[0])
	}
	if neg {
		year = -year
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: month %q", errInvalidInput, parts[1])
	}
	day, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: day %q", errInvalidInput, parts[2])
	}

	return civil.NewDate(year, time.Month(month), day)
}

// parseClock reads [-]HH:MM[:SS.s] into a validated Time.
func parseClock(s string) (civil.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	h, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return civil.Time{}, err
	}
	return civil.NewTime(h, m, sec)
}

// parseDateTime reads YYYY-MM-DD, YYYY-MM-DDTHH:MM[:SS] or the same with a
// space separator.
func parseDateTime(s string) (civil.DateTime, error) {
	s = strings.TrimSpace(s)
	datePart, clockPart := s, ""
	if i := strings.IndexAny(s[min(1, len(s)):], "T "); i >= 0 {
		i++
		datePart, clockPart = s[:i], s[i+1:]
	}

	d, err := parseDate(datePart)
	if err != nil {
		return civil.DateTime{}, err
	}
	var t civil.Time
	if clockPart != "" {
		if t, err = parseClock(clockPart); err != nil {
			return civil.DateTime{}, err
		}
	}
	return civil.NewDateTime(d, t)
}

// parseHours reads decimal hours or H:M:S.
func parseHours(s string) (float64, error) {
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number of hours", errInvalidInput, s)
		}
		return v, nil
	}
	t, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	return t.Decimal(), nil
}

// parseDegrees reads decimal degrees or D:M:S.
func parseDegrees(s string) (float64, error) {
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number of degrees", errInvalidInput, s)
		}
		return v, nil
	}
	d, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	a, err := civil.NewAngle(d, m, sec)
	if err != nil {
		return 0, err
	}
	return a.Decimal(), nil
}

// splitSexagesimal splits "[-]W:M[:S]". A leading minus applies to the most
// significant non-zero component.
func splitSexagesimal(s string) (whole, minute int, second float64, err error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q, want W:M[:S]", errInvalidInput, s)
	}

	if whole, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", errInvalidInput, parts[0])
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", errInvalidInput, parts[1])
	}
	if len(parts) == 3 {
		if second, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", errInvalidInput, parts[2])
		}
	}

	if neg {
		switch {
		case whole != 0:
			whole = -whole
		case minute != 0:
			minute = -minute
		default:
			second = -second
		}
	}
	return whole, minute, second, nil
}

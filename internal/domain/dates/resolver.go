// Package dates resolves natural-language date phrases against a fixed
// reference time so a whole conversation sees one consistent "now".
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized means the phrase is not a date the resolver knows.
var ErrUnrecognized = errors.New("unrecognized date phrase")

const isoLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Resolve turns free text into a calendar date. Supported forms: ISO
// dates ("2024-07-01"), today/tomorrow/yesterday, "in N days", bare
// weekday names and "next <weekday>" (both meaning the soonest strictly
// future occurrence). The result is midnight UTC of the resolved day.
func Resolve(text string, now time.Time) (time.Time, error) {
	phrase := strings.ToLower(strings.TrimSpace(text))
	if phrase == "" {
		return time.Time{}, ErrUnrecognized
	}

	if t, err := time.Parse(isoLayout, phrase); err == nil {
		return t, nil
	}

	today := truncateToDay(now)
	switch phrase {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if rest, ok := strings.CutPrefix(phrase, "in "); ok {
		if days, ok := strings.CutSuffix(rest, " days"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(days))
			if err != nil || n < 0 {
				return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, text)
			}
			return today.AddDate(0, 0, n), nil
		}
	}

	name := strings.TrimPrefix(phrase, "next ")
	if wd, ok := weekdays[name]; ok {
		return nextWeekday(today, wd), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, text)
}

// nextWeekday returns the soonest occurrence of wd strictly after today.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta)
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

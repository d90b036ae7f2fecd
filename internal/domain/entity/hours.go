package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WeekHours maps lowercase weekday keys ("monday".."sunday") to free-text
// opening hours. Values are display text first: either "closed", one or more
// comma-separated ranges ("09:00-12:00,14:00-18:00", the legacy "09h00-18h00"
// spelling included), or anything else, which still renders verbatim but
// cannot answer the open-now query.
type WeekHours map[string]string

// WeekdayKeys returns the weekday keys in display order, Monday first.
func WeekdayKeys() []string {
	return []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
}

// EmptyWeekHours returns a week with every day blank.
func EmptyWeekHours() WeekHours {
	hours := make(WeekHours, 7)
	for _, day := range WeekdayKeys() {
		hours[day] = ""
	}

	return hours
}

// HasAny reports whether at least one day carries non-blank text.
func (h WeekHours) HasAny() bool {
	for _, value := range h {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}

	return false
}

// OpenStatus is the tri-state answer of the open-now query. Unknown means
// the stored text could not be parsed; callers must never treat it as closed.
type OpenStatus int

const (
	StatusUnknown OpenStatus = iota
	StatusOpen
	StatusClosed
)

func (s OpenStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// closedWords are accepted as an explicit "closed all day" marker. The legacy
// dashboards stored the French word.
var closedWords = map[string]bool{"closed": true, "fermé": true, "ferme": true}

var timeTokenPattern = regexp.MustCompile(`^(\d{1,2})(?:[h:](\d{2})?)?$`)

// OpenAt answers whether the business is open at the given time, using the
// weekday of t in t's location.
func (h WeekHours) OpenAt(t time.Time) OpenStatus {
	day := strings.ToLower(t.Weekday().String())
	text := strings.TrimSpace(h[day])
	if text == "" || closedWords[strings.ToLower(text)] {
		return StatusClosed
	}

	ranges, ok := parseDayRanges(text)
	if !ok {
		return StatusUnknown
	}

	minute := t.Hour()*60 + t.Minute()
	for _, r := range ranges {
		if minute >= r.start && minute <= r.end {
			return StatusOpen
		}
	}

	return StatusClosed
}

type minuteRange struct {
	start int
	end   int
}

// parseDayRanges parses one day's text as comma-separated start-end ranges.
func parseDayRanges(text string) ([]minuteRange, bool) {
	parts := strings.Split(text, ",")
	ranges := make([]minuteRange, 0, len(parts))

	for _, part := range parts {
		bounds := strings.Split(strings.TrimSpace(part), "-")
		if len(bounds) != 2 {
			return nil, false
		}

		start, okStart := parseTimeToken(bounds[0])
		end, okEnd := parseTimeToken(bounds[1])
		if !okStart || !okEnd || end < start {
			return nil, false
		}

		ranges = append(ranges, minuteRange{start: start, end: end})
	}

	return ranges, true
}

// parseTimeToken parses "09:00", "09h00", "9h" or "9" into minutes since midnight.
func parseTimeToken(token string) (int, bool) {
	match := timeTokenPattern.FindStringSubmatch(strings.TrimSpace(token))
	if match == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 24 {
		return 0, false
	}

	minute := 0
	if match[2] != "" {
		minute, err = strconv.Atoi(match[2])
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	return hour*60 + minute, true
}

// Parseable reports whether one day's text would answer the open-now query.
// Blank and closed markers count as parseable (they answer "closed").
func ParseableHours(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || closedWords[strings.ToLower(text)] {
		return true
	}
	_, ok := parseDayRanges(text)

	return ok
}

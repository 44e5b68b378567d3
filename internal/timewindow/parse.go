package timewindow

import (
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a clock duration of the form [d.]h:mm[:ss[.fraction]] and
// returns its total minutes reduced to a clock-of-day. Surrounding whitespace is
// ignored; hours must be 0-23 and minutes/seconds 0-59.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	days := 0
	if dot, colon := strings.IndexByte(s, '.'), strings.IndexByte(s, ':'); dot >= 0 && colon >= 0 && dot < colon {
		d, ok := digits(s[:dot], 1, 7)
		if !ok {
			return 0, false
		}
		days = d
		s = s[dot+1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, ok := digits(parts[0], 1, 2)
	if !ok || h > 23 {
		return 0, false
	}
	m, ok := digits(parts[1], 1, 2)
	if !ok || m > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		sec := parts[2]
		if dot := strings.IndexByte(sec, '.'); dot >= 0 {
			if _, ok := digits(sec[dot+1:], 1, 7); !ok {
				return 0, false
			}
			sec = sec[:dot]
		}
		if sv, ok := digits(sec, 1, 2); !ok || sv > 59 {
			return 0, false
		}
	}

	return (days*MinutesPerDay + h*60 + m) % MinutesPerDay, true
}

func digits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Month-first and ISO layouts are tried before the day-first fallbacks.
var primaryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04:05",
	"15:04",
}

var fallbackLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2 Jan 2006 15:04",
	"2 January 2006 15:04",
}

// ParseDateTime parses free-text date-time strings, trying the primary layouts
// first and the day-first layouts second.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layouts := range [][]string{primaryLayouts, fallbackLayouts} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// MinuteOfDay returns the hour and minute of t as minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

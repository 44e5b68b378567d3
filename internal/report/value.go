package report

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

// Value is a decoded spreadsheet cell. A nil Value means the cell is empty.
// The concrete types are DateTime, Duration, Number and Text.
type Value interface {
	String() string
	isValue()
}

// DateTime is a cell holding a calendar date and time.
type DateTime struct{ time.Time }

// Duration is a cell holding an elapsed time.
type Duration struct{ time.Duration }

// Number is a numeric cell; as a time it is read as a spreadsheet serial date.
type Number float64

// Text is any other cell content.
type Text string

func (DateTime) isValue() {}
func (Duration) isValue() {}
func (Number) isValue()   {}
func (Text) isValue()     {}

func (v DateTime) String() string { return v.Format("2006-01-02 15:04:05") }
func (v Duration) String() string { return v.Duration.String() }
func (v Number) String() string   { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Text) String() string     { return string(v) }

// TextOf returns the trimmed display text of a cell, or "" when it is empty.
func TextOf(v Value) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// MinuteOfDay interprets a cell as a clock-of-day minute. Date-times use their
// hour and minute, durations their total minutes, numbers the time part of the
// serial date, and text is tried as a clock duration and then as a date-time.
func MinuteOfDay(v Value) (int, bool) {
	switch v := v.(type) {
	case DateTime:
		return timewindow.MinuteOfDay(v.Time), true
	case Duration:
		return durationMinutes(v.Duration), true
	case Number:
		return serialMinuteOfDay(float64(v))
	case Text:
		return textMinuteOfDay(string(v))
	default:
		return 0, false
	}
}

func durationMinutes(d time.Duration) int {
	m := int(d/time.Minute) % timewindow.MinutesPerDay
	if m < 0 {
		m += timewindow.MinutesPerDay
	}
	return m
}

// serialMinuteOfDay reads the fractional day of a serial date, rounded to the
// millisecond and truncated to whole minutes.
func serialMinuteOfDay(serial float64) (int, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return 0, false
	}
	_, frac := math.Modf(math.Abs(serial))
	ms := int64(math.Round(frac * 86_400_000))
	return int(ms/60_000) % timewindow.MinutesPerDay, true
}

func textMinuteOfDay(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if m, ok := timewindow.ParseClock(s); ok {
		return m, true
	}
	if t, ok := timewindow.ParseDateTime(s); ok {
		return timewindow.MinuteOfDay(t), true
	}
	return 0, false
}

package timewindow

import "fmt"

const (
	// MinutesPerDay is the length of one clock day.
	MinutesPerDay = 1440

	DefaultDayStart = 360  // 06:00
	DefaultMinutes  = 1500 // 25 hours
	DefaultSlotStep = 20

	// DefaultShiftMinutes is the assumed shift length when a report omits the end time.
	DefaultShiftMinutes = 8 * 60
)

// Window is the scheduling span [DayStart, DayStart+Minutes] in absolute minutes.
type Window struct {
	DayStart int
	Minutes  int
	SlotStep int
}

// Default returns the 06:00 + 25h window with 20 minute slots.
func Default() Window {
	return Window{DayStart: DefaultDayStart, Minutes: DefaultMinutes, SlotStep: DefaultSlotStep}
}

// End is the last absolute minute a shift may reach.
func (w Window) End() int {
	return w.DayStart + w.Minutes
}

// SlotCount returns how many slots the window is divided into.
func (w Window) SlotCount() int {
	if w.SlotStep <= 0 {
		return 0
	}
	return w.Minutes / w.SlotStep
}

// SlotStart returns the absolute minute at which slot i begins.
func (w Window) SlotStart(i int) int {
	return w.DayStart + i*w.SlotStep
}

// SlotRange returns the first and last slot (inclusive) overlapped by [startAbs, endAbs).
// ok is false when the range lies outside the window or is empty.
func (w Window) SlotRange(startAbs, endAbs int) (first, last int, ok bool) {
	n := w.SlotCount()
	if n == 0 || endAbs <= startAbs {
		return 0, 0, false
	}
	first = (startAbs - w.DayStart) / w.SlotStep
	last = (endAbs - w.DayStart - 1) / w.SlotStep
	if startAbs < w.DayStart {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	if first >= n || last < 0 || first > last {
		return 0, 0, false
	}
	return first, last, true
}

// Normalize maps a clock-of-day minute onto the window: times before the day
// start belong to the following calendar day.
func Normalize(minuteOfDay, dayStart int) int {
	if minuteOfDay < dayStart {
		return minuteOfDay + MinutesPerDay
	}
	return minuteOfDay
}

// ResolveEndAfterStart pushes an end that does not come after start onto the next day.
func ResolveEndAfterStart(startAbs, endAbs int) int {
	if endAbs <= startAbs {
		return endAbs + MinutesPerDay
	}
	return endAbs
}

// Clamp caps an absolute minute at the window end.
func Clamp(absMinute, windowEnd int) int {
	return min(absMinute, windowEnd)
}

// StartAbs normalizes a shift start onto the window.
func (w Window) StartAbs(startMinuteOfDay int) int {
	return Normalize(startMinuteOfDay, w.DayStart)
}

// EndAbs normalizes a shift end relative to an already resolved start.
func (w Window) EndAbs(startAbs, endMinuteOfDay int) int {
	end := Normalize(endMinuteOfDay, w.DayStart)
	end = ResolveEndAfterStart(startAbs, end)
	return Clamp(end, w.End())
}

// Resolve places a shift given as two clock-of-day minutes onto the window.
// Report imports and manual edits both go through StartAbs and EndAbs.
func (w Window) Resolve(startMinuteOfDay, endMinuteOfDay int) (startAbs, endAbs int) {
	startAbs = w.StartAbs(startMinuteOfDay)
	return startAbs, w.EndAbs(startAbs, endMinuteOfDay)
}

// FormatClock renders an absolute minute as a 24-hour "HH:MM" clock-of-day.
func FormatClock(absMinute int) string {
	m := absMinute % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Validate reports whether the window is usable.
func (w Window) Validate() error {
	if w.DayStart < 0 || w.DayStart >= MinutesPerDay {
		return fmt.Errorf("day start must be in [0,%d), got %d", MinutesPerDay, w.DayStart)
	}
	if w.Minutes <= 0 || w.Minutes > 2*MinutesPerDay {
		return fmt.Errorf("window minutes must be in (0,%d], got %d", 2*MinutesPerDay, w.Minutes)
	}
	if w.SlotStep <= 0 || w.Minutes%w.SlotStep != 0 {
		return fmt.Errorf("slot step %d must be positive and divide %d", w.SlotStep, w.Minutes)
	}
	return nil
}

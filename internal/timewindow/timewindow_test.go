package timewindow

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		minute   int
		dayStart int
		want     int
	}{
		{"at day start", 360, 360, 360},
		{"after day start", 1350, 360, 1350},
		{"before day start wraps", 30, 360, 1470},
		{"midnight wraps", 0, 360, 1440},
		{"zero day start", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.minute, tt.dayStart); got != tt.want {
				t.Fatalf("Normalize(%d, %d) = %d, want %d", tt.minute, tt.dayStart, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for dayStart := 0; dayStart < MinutesPerDay; dayStart += 37 {
		for m := 0; m < MinutesPerDay; m += 13 {
			once := Normalize(m, dayStart)
			if once < dayStart {
				t.Fatalf("Normalize(%d, %d) = %d, below day start", m, dayStart, once)
			}
			if twice := Normalize(once, dayStart); twice != once {
				t.Fatalf("Normalize not idempotent for %d/%d: %d then %d", m, dayStart, once, twice)
			}
		}
	}
}

func TestResolveEndAfterStart(t *testing.T) {
	for _, start := range []int{360, 900, 1350, 1800} {
		for end := 0; end < 2*MinutesPerDay; end += 45 {
			if got := ResolveEndAfterStart(start, end); got <= start {
				t.Fatalf("ResolveEndAfterStart(%d, %d) = %d, want > start", start, end, got)
			}
		}
	}
	if got := ResolveEndAfterStart(600, 600); got != 2040 {
		t.Fatalf("zero-length shift should roll to next day, got %d", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1900, 1860); got != 1860 {
		t.Fatalf("Clamp over end = %d, want 1860", got)
	}
	if got := Clamp(1000, 1860); got != 1000 {
		t.Fatalf("Clamp inside = %d, want 1000", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:     "00:00",
		360:   "06:00",
		1350:  "22:30",
		1830:  "06:30",
		1860:  "07:00",
		-30:   "23:30",
		-1470: "23:30",
		2879:  "23:59",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	w := Default()

	t.Run("evening start with synthesized end", func(t *testing.T) {
		start := 22*60 + 30
		end := (start + DefaultShiftMinutes) % MinutesPerDay
		s, e := w.Resolve(start, end)
		if s != 1350 || e != 1830 {
			t.Fatalf("got %d-%d, want 1350-1830", s, e)
		}
	})

	t.Run("early morning start belongs to next day", func(t *testing.T) {
		s, e := w.Resolve(2*60, 7*60+30)
		if s != 1560 {
			t.Fatalf("start = %d, want 1560", s)
		}
		if e != 1860 {
			t.Fatalf("end = %d, want clamped 1860", e)
		}
	})

	t.Run("day shift", func(t *testing.T) {
		s, e := w.Resolve(9*60, 17*60)
		if s != 540 || e != 1020 {
			t.Fatalf("got %d-%d, want 540-1020", s, e)
		}
	})
}

func TestFormatParseRoundTrip(t *testing.T) {
	w := Default()
	for x := w.DayStart; x < w.DayStart+MinutesPerDay; x += 7 {
		m, ok := ParseClock(FormatClock(x))
		if !ok {
			t.Fatalf("ParseClock(%q) failed", FormatClock(x))
		}
		if got := Normalize(m, w.DayStart); got != x {
			t.Fatalf("round trip of %d gave %d", x, got)
		}
	}
}

func TestSlotRange(t *testing.T) {
	w := Default()
	if n := w.SlotCount(); n != 75 {
		t.Fatalf("SlotCount = %d, want 75", n)
	}

	tests := []struct {
		name        string
		start, end  int
		first, last int
		ok          bool
	}{
		{"first hour", 360, 420, 0, 2, true},
		{"partial slot", 370, 381, 0, 1, true},
		{"night to window end", 1350, 1860, 49, 74, true},
		{"empty", 600, 600, 0, 0, false},
		{"after window", 1900, 1960, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := w.SlotRange(tt.start, tt.end)
			if ok != tt.ok || (ok && (first != tt.first || last != tt.last)) {
				t.Fatalf("SlotRange(%d,%d) = %d,%d,%v want %d,%d,%v",
					tt.start, tt.end, first, last, ok, tt.first, tt.last, tt.ok)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default window invalid: %v", err)
	}
	bad := []Window{
		{DayStart: -1, Minutes: 1500, SlotStep: 20},
		{DayStart: 1440, Minutes: 1500, SlotStep: 20},
		{DayStart: 360, Minutes: 0, SlotStep: 20},
		{DayStart: 360, Minutes: 1500, SlotStep: 0},
		{DayStart: 360, Minutes: 1500, SlotStep: 7},
	}
	for _, w := range bad {
		if err := w.Validate(); err == nil {
			t.Errorf("expected %+v to be invalid", w)
		}
	}
}

package timewindow

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"22:30", 1350, true},
		{" 6:05 ", 365, true},
		{"06:00:59", 360, true},
		{"23:59:59.999", 1439, true},
		{"1.02:30", 150, true},
		{"0:00", 0, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"-01:00", 0, false},
		{"10:30 PM", 0, false},
		{"ab:cd", 0, false},
		{"1:2:3:4", 0, false},
		{"10:30:", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClock(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseClock(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"10:30 PM", 1350, true},
		{"10:30 pm", 1350, true},
		{"7:15AM", 435, true},
		{"2024-03-01 22:30:00", 1350, true},
		{"2024-03-01T05:45:00Z", 345, true},
		{"3/1/2024 9:00 PM", 1260, true},
		{"25/12/2024 18:20", 1100, true},
		{"01.02.2024 07:10", 430, true},
		{"2024-03-01", 0, true},
		{"not a time", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDateTime(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDateTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && MinuteOfDay(got) != tt.want {
			t.Errorf("ParseDateTime(%q) minute = %d, want %d", tt.in, MinuteOfDay(got), tt.want)
		}
	}
}

package models

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

// MaxCellLength is the number of characters kept from a cell annotation.
const MaxCellLength = 6

// Row is one staff member's shift on the schedule.
type Row struct {
	ID          string `json:"id"`
	SortOrder   int    `json:"sortOrder"`
	Name        string `json:"name"`
	StartAbsMin int    `json:"startAbsMin"`
	EndAbsMin   int    `json:"endAbsMin"`
}

// WindowConfig places the schedule on the absolute-minute axis.
type WindowConfig struct {
	DayStartMin   int `json:"dayStartMin"`
	WindowMinutes int `json:"windowMinutes"`
	SlotStepMin   int `json:"slotStepMin"`
}

// Window converts the persisted config to the normalizer's window.
func (c WindowConfig) Window() timewindow.Window {
	return timewindow.Window{DayStart: c.DayStartMin, Minutes: c.WindowMinutes, SlotStep: c.SlotStepMin}
}

// WindowConfigFrom is the inverse of WindowConfig.Window.
func WindowConfigFrom(w timewindow.Window) WindowConfig {
	return WindowConfig{DayStartMin: w.DayStart, WindowMinutes: w.Minutes, SlotStepMin: w.SlotStep}
}

// State is the whole persisted schedule. Cells maps "rowID:slot" to a short annotation.
type State struct {
	WindowConfig
	SourceFileName string            `json:"sourceFileName"`
	UploadedAt     time.Time         `json:"uploadedAt"`
	Rows           []Row             `json:"rows"`
	Cells          map[string]string `json:"cells"`
}

// NewState returns an empty schedule on the given window.
func NewState(w timewindow.Window, now time.Time) *State {
	return &State{
		WindowConfig: WindowConfigFrom(w),
		UploadedAt:   now.UTC(),
		Rows:         []Row{},
		Cells:        map[string]string{},
	}
}

// CellKey builds the composite key for a row/slot annotation.
func CellKey(rowID string, slot int) string {
	return rowID + ":" + strconv.Itoa(slot)
}

// CellRowID returns the row-id component of a cell key.
func CellRowID(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// FindRow returns the index of the row with the given id, or -1.
func (s *State) FindRow(id string) int {
	for i := range s.Rows {
		if s.Rows[i].ID == id {
			return i
		}
	}
	return -1
}

// NextSortOrder is one past the highest sort order, or 0 for an empty schedule.
func (s *State) NextSortOrder() int {
	if len(s.Rows) == 0 {
		return 0
	}
	next := s.Rows[0].SortOrder
	for _, r := range s.Rows[1:] {
		next = max(next, r.SortOrder)
	}
	return next + 1
}

// SortRowsByOrder orders rows by SortOrder, keeping the current order for ties.
func (s *State) SortRowsByOrder() {
	sort.SliceStable(s.Rows, func(i, j int) bool {
		return s.Rows[i].SortOrder < s.Rows[j].SortOrder
	})
}

// Clone returns a deep copy so callers can work on a snapshot.
func (s *State) Clone() *State {
	c := *s
	c.Rows = append([]Row(nil), s.Rows...)
	c.Cells = make(map[string]string, len(s.Cells))
	for k, v := range s.Cells {
		c.Cells[k] = v
	}
	return &c
}

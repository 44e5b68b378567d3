package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

func TestNewState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(timewindow.Default(), now)
	if s.DayStartMin != 360 || s.WindowMinutes != 1500 || s.SlotStepMin != 20 {
		t.Fatalf("unexpected window: %+v", s.WindowConfig)
	}
	if s.Rows == nil || s.Cells == nil {
		t.Fatal("expected non-nil rows and cells")
	}
	if !s.UploadedAt.Equal(now) {
		t.Fatalf("UploadedAt = %v, want %v", s.UploadedAt, now)
	}
}

func TestNextSortOrder(t *testing.T) {
	s := &State{}
	if got := s.NextSortOrder(); got != 0 {
		t.Fatalf("empty NextSortOrder = %d, want 0", got)
	}
	s.Rows = []Row{{SortOrder: 4}, {SortOrder: 9}, {SortOrder: 2}}
	if got := s.NextSortOrder(); got != 10 {
		t.Fatalf("NextSortOrder = %d, want 10", got)
	}
}

func TestCellKey(t *testing.T) {
	key := CellKey("abc", 12)
	if key != "abc:12" {
		t.Fatalf("CellKey = %q", key)
	}
	if id := CellRowID(key); id != "abc" {
		t.Fatalf("CellRowID = %q", id)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &State{
		Rows:  []Row{{ID: "a", Name: "Ann"}},
		Cells: map[string]string{"a:1": "x"},
	}
	c := s.Clone()
	c.Rows[0].Name = "changed"
	c.Cells["a:1"] = "y"
	if s.Rows[0].Name != "Ann" || s.Cells["a:1"] != "x" {
		t.Fatal("clone shares storage with original")
	}
}

func TestStateDecodesPascalCaseBlob(t *testing.T) {
	blob := `{
  "DayStartMin": 360,
  "WindowMinutes": 1500,
  "SlotStepMin": 20,
  "SourceFileName": "report.xlsx",
  "UploadedAt": "2025-11-02T08:15:00Z",
  "Rows": [{"Id": "r1", "SortOrder": 0, "Name": "Ann", "StartAbsMin": 1350, "EndAbsMin": 1830}],
  "Cells": {"r1:3": "brk"}
}`
	var s State
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.WindowMinutes != 1500 || len(s.Rows) != 1 || s.Rows[0].ID != "r1" || s.Rows[0].EndAbsMin != 1830 {
		t.Fatalf("unexpected decode: %+v", s)
	}
	if s.Cells["r1:3"] != "brk" {
		t.Fatalf("cells not decoded: %v", s.Cells)
	}
}

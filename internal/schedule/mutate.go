package schedule

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

var (
	// ErrRowNotFound is returned when an operation names a row that does not exist.
	ErrRowNotFound = errors.New("row not found")
	// ErrEmptySchedule is returned by View when there are no rows to show.
	ErrEmptySchedule = errors.New("schedule is empty")
)

// DefaultRowName is given to rows created by AddRow.
const DefaultRowName = "New Staff"

// ImportMerge appends parsed rows after the existing ones, keeping their
// order and numbering them from NextSortOrder. Existing rows are untouched.
func ImportMerge(s *models.State, rows []models.Row, ids IDGenerator, fileName string, now time.Time) {
	next := s.NextSortOrder()
	for i, r := range rows {
		r.ID = ids.NewID()
		r.SortOrder = next + i
		s.Rows = append(s.Rows, r)
	}
	s.SourceFileName = fileName
	s.UploadedAt = now.UTC()
}

// UpdateRow applies a manual edit. The name is always replaced with its
// trimmed value; start and end only change when their text parses as a clock.
func UpdateRow(s *models.State, id string, req models.UpdateRowRequest) (models.Row, error) {
	i := s.FindRow(id)
	if i < 0 {
		return models.Row{}, ErrRowNotFound
	}
	w := s.Window()
	row := &s.Rows[i]

	row.Name = strings.TrimSpace(req.Name)
	if m, ok := timewindow.ParseClock(req.Start); ok {
		row.StartAbsMin = w.StartAbs(m)
	}
	if m, ok := timewindow.ParseClock(req.End); ok {
		row.EndAbsMin = w.EndAbs(row.StartAbsMin, m)
	}
	return *row, nil
}

// SetCell stores a trimmed annotation truncated to MaxCellLength characters,
// or removes it when the value is blank. rowID is not checked against live rows.
func SetCell(s *models.State, rowID string, slot int, value string) {
	key := models.CellKey(rowID, slot)
	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.Cells, key)
		return
	}
	if r := []rune(value); len(r) > models.MaxCellLength {
		value = string(r[:models.MaxCellLength])
	}
	s.Cells[key] = value
}

// AddRow appends an eight hour "New Staff" shift starting at the day start.
func AddRow(s *models.State, id string) models.Row {
	w := s.Window()
	row := models.Row{
		ID:          id,
		SortOrder:   s.NextSortOrder(),
		Name:        DefaultRowName,
		StartAbsMin: w.DayStart,
		EndAbsMin:   timewindow.Clamp(w.DayStart+timewindow.DefaultShiftMinutes, w.End()),
	}
	s.Rows = append(s.Rows, row)
	return row
}

// DeleteRow removes a row with its annotations and closes the gap it leaves
// in the sort order.
func DeleteRow(s *models.State, id string) error {
	i := s.FindRow(id)
	if i < 0 {
		return ErrRowNotFound
	}
	s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)

	for key := range s.Cells {
		if models.CellRowID(key) == id {
			delete(s.Cells, key)
		}
	}
	Renumber(s)
	return nil
}

// SortByStartTime orders rows by start minute, then name, and renumbers them.
func SortByStartTime(s *models.State) {
	sort.SliceStable(s.Rows, func(i, j int) bool {
		a, b := s.Rows[i], s.Rows[j]
		if a.StartAbsMin != b.StartAbsMin {
			return a.StartAbsMin < b.StartAbsMin
		}
		return a.Name < b.Name
	})
	for i := range s.Rows {
		s.Rows[i].SortOrder = i
	}
}

// ParseIDList splits a comma separated id list, dropping blanks.
func ParseIDList(orderedIDs string) []string {
	var ids []string
	for _, id := range strings.Split(orderedIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reorder moves the named rows to the front in the given order. Unknown and
// repeated ids are ignored; rows not named follow in their previous order.
// Sort orders end up contiguous from 0.
func Reorder(s *models.State, ids []string) {
	s.SortRowsByOrder()

	placed := make(map[string]bool, len(ids))
	ordered := make([]models.Row, 0, len(s.Rows))
	for _, id := range ids {
		if placed[id] {
			continue
		}
		if i := s.FindRow(id); i >= 0 {
			placed[id] = true
			ordered = append(ordered, s.Rows[i])
		}
	}
	for _, r := range s.Rows {
		if !placed[r.ID] {
			ordered = append(ordered, r)
		}
	}
	for i := range ordered {
		ordered[i].SortOrder = i
	}
	s.Rows = ordered
}

// Renumber sorts by the current sort order and reassigns 0..n-1.
func Renumber(s *models.State) {
	s.SortRowsByOrder()
	for i := range s.Rows {
		s.Rows[i].SortOrder = i
	}
}

// BuildView assembles the display model. It does not modify s.
func BuildView(s *models.State) (*models.ScheduleView, error) {
	if len(s.Rows) == 0 {
		return nil, ErrEmptySchedule
	}
	s = s.Clone()
	s.SortRowsByOrder()
	w := s.Window()

	slots := make([]models.SlotHeader, w.SlotCount())
	for i := range slots {
		slots[i] = models.SlotHeader{Index: i, Label: timewindow.FormatClock(w.SlotStart(i))}
	}

	rows := make([]models.RowView, len(s.Rows))
	for i, r := range s.Rows {
		rv := models.RowView{
			Row:        r,
			StartLabel: timewindow.FormatClock(r.StartAbsMin),
			EndLabel:   timewindow.FormatClock(r.EndAbsMin),
			FirstSlot:  -1,
			LastSlot:   -1,
		}
		if first, last, ok := w.SlotRange(r.StartAbsMin, r.EndAbsMin); ok {
			rv.FirstSlot, rv.LastSlot = first, last
		}
		rows[i] = rv
	}

	return &models.ScheduleView{
		WindowConfig:   s.WindowConfig,
		SourceFileName: s.SourceFileName,
		UploadedAt:     s.UploadedAt,
		Slots:          slots,
		Rows:           rows,
		Cells:          s.Cells,
	}, nil
}

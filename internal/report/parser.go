package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

const (
	preferredSheet = "Report"
	headerText     = "Employee Full Name"
	maxHeaderScan  = 40
	// maxHeaderCols bounds the header scan when a sheet reports no used columns.
	maxHeaderCols = 50

	defaultNameCol  = 1
	defaultStartCol = 10
	defaultEndCol   = 14
)

var (
	nameHeaders  = []string{"Employee Full Name", "Employee Name", "Name"}
	startHeaders = []string{"Start Time", "Start"}
	endHeaders   = []string{"End Time", "End"}
)

// Rejection messages shown to the uploader.
const (
	MsgNoWorksheet = "No worksheet found in this file."
	MsgNoHeader    = "Could not find header row. Expected 'Employee Full Name' in column A."
	MsgNoRows      = "Worksheet '%s' was found, but no valid rows were parsed. Check that Start Time cells are real times/datetimes."
	MsgNoFile      = "Please choose a file."
)

// RejectionError is a user-correctable reason an upload was not imported.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func reject(format string, args ...any) error {
	return &RejectionError{Message: fmt.Sprintf(format, args...)}
}

// ParseFile decodes data and parses it; decoding failures are rejections.
func ParseFile(data []byte, fileName string, w timewindow.Window) ([]models.Row, error) {
	if len(data) == 0 {
		return nil, reject(MsgNoFile)
	}
	book, err := Open(data, fileName)
	if err != nil {
		return nil, reject("Could not read spreadsheet: %v", err)
	}
	return Parse(book, fileName, w)
}

// Parse extracts shifts from a shift report. Rows come back ordered by start
// then name with SortOrder 0..n-1 and no ID. Rows without a readable start
// time are skipped; a missing end time becomes an eight hour shift.
func Parse(book Workbook, fileName string, w timewindow.Window) ([]models.Row, error) {
	ws := selectSheet(book)
	if ws == nil {
		return nil, reject(MsgNoWorksheet)
	}

	lastRow, lastCol := ws.Dimensions()
	headerRow := findHeaderRow(ws, lastRow)
	if headerRow < 0 {
		return nil, reject(MsgNoHeader)
	}

	if lastCol <= 0 {
		lastCol = maxHeaderCols
	}
	nameCol := findCol(ws, headerRow, lastCol, nameHeaders, defaultNameCol)
	startCol := findCol(ws, headerRow, lastCol, startHeaders, defaultStartCol)
	endCol := findCol(ws, headerRow, lastCol, endHeaders, defaultEndCol)

	var rows []models.Row
	for r := headerRow + 1; r <= lastRow; r++ {
		name := TextOf(ws.Cell(r, nameCol))
		if name == "" {
			continue
		}

		start, ok := MinuteOfDay(ws.Cell(r, startCol))
		if !ok {
			continue
		}
		end, ok := MinuteOfDay(ws.Cell(r, endCol))
		if !ok {
			end = (start + timewindow.DefaultShiftMinutes) % timewindow.MinutesPerDay
		}

		startAbs, endAbs := w.Resolve(start, end)
		rows = append(rows, models.Row{Name: name, StartAbsMin: startAbs, EndAbsMin: endAbs})
	}

	if len(rows) == 0 {
		return nil, reject(MsgNoRows, ws.Name())
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StartAbsMin != rows[j].StartAbsMin {
			return rows[i].StartAbsMin < rows[j].StartAbsMin
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].SortOrder = i
	}
	return rows, nil
}

func selectSheet(book Workbook) Sheet {
	sheets := book.Sheets()
	for _, s := range sheets {
		if strings.EqualFold(s.Name(), preferredSheet) {
			return s
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return nil
}

func findHeaderRow(ws Sheet, lastRow int) int {
	limit := min(max(lastRow, 1), maxHeaderScan)
	for r := 1; r <= limit; r++ {
		if strings.EqualFold(TextOf(ws.Cell(r, 1)), headerText) {
			return r
		}
	}
	return -1
}

func findCol(ws Sheet, headerRow, lastCol int, names []string, fallback int) int {
	for c := 1; c <= lastCol; c++ {
		v := TextOf(ws.Cell(headerRow, c))
		if v == "" {
			continue
		}
		for _, n := range names {
			if strings.EqualFold(v, n) {
				return c
			}
		}
	}
	return fallback
}

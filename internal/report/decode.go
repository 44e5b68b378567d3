package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Open decodes spreadsheet bytes, choosing the format from the file extension:
// .xls uses the legacy BIFF reader, .csv is read as a single sheet, and anything
// else is treated as an OOXML workbook.
func Open(data []byte, fileName string) (Workbook, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls":
		return openXLS(data)
	case ".csv":
		return openCSV(data, fileName)
	default:
		return openXLSX(data)
	}
}

func openXLSX(data []byte) (Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var book Book
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		g := &Grid{SheetName: name, Values: make([][]Value, len(rows))}
		for r, cells := range rows {
			vals := make([]Value, len(cells))
			for c, raw := range cells {
				if raw == "" {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				typ, err := f.GetCellType(name, axis)
				if err != nil {
					return nil, fmt.Errorf("cell type %s!%s: %w", name, axis, err)
				}
				vals[c] = xlsxValue(typ, raw)
			}
			g.Values[r] = vals
		}
		book = append(book, g)
	}
	return book, nil
}

func xlsxValue(typ excelize.CellType, raw string) Value {
	switch typ {
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return DateTime{t}
			}
		}
		return Text(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return Text(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(n)
	}
	return Text(raw)
}

func openXLS(data []byte) (Workbook, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}

	var book Book
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		g := &Grid{SheetName: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				g.Values = append(g.Values, nil)
				continue
			}
			vals := make([]Value, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				if s := row.Col(c); s != "" {
					vals[c] = textOrNumber(s)
				}
			}
			g.Values = append(g.Values, vals)
		}
		book = append(book, g)
	}
	return book, nil
}

func openCSV(data []byte, fileName string) (Workbook, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	base := filepath.Base(fileName)
	g := &Grid{SheetName: strings.TrimSuffix(base, filepath.Ext(base))}
	for _, rec := range records {
		vals := make([]Value, len(rec))
		for c, s := range rec {
			if s != "" {
				vals[c] = Text(s)
			}
		}
		g.Values = append(g.Values, vals)
	}
	return Book{g}, nil
}

// The legacy reader only exposes formatted strings, so numeric text is
// restored to a Number to keep serial-date handling.
func textOrNumber(s string) Value {
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Number(n)
	}
	return Text(s)
}

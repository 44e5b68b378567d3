package report

// Workbook is a decoded spreadsheet file.
type Workbook interface {
	// Sheets lists the worksheets in file order.
	Sheets() []Sheet
}

// Sheet is a grid of cells addressed from (1,1).
type Sheet interface {
	Name() string
	// Dimensions returns the last used row and column.
	Dimensions() (rows, cols int)
	// Cell returns the value at row, col or nil when the cell is empty or out of range.
	Cell(row, col int) Value
}

// Grid is an in-memory Sheet.
type Grid struct {
	SheetName string
	Values    [][]Value
}

func (g *Grid) Name() string { return g.SheetName }

func (g *Grid) Dimensions() (rows, cols int) {
	for _, r := range g.Values {
		cols = max(cols, len(r))
	}
	return len(g.Values), cols
}

func (g *Grid) Cell(row, col int) Value {
	if row < 1 || row > len(g.Values) {
		return nil
	}
	r := g.Values[row-1]
	if col < 1 || col > len(r) {
		return nil
	}
	return r[col-1]
}

// Book is an in-memory Workbook.
type Book []Sheet

func (b Book) Sheets() []Sheet { return b }

package sheet

// RawSheet holds the rows of a source file exactly as read, with no header
// row assumed. Cells are the string renderings produced by the reader;
// blank trailing cells may be absent entirely, so rows can be ragged.
type RawSheet struct {
	Source string
	Rows   [][]string
}

// RowCount returns the number of rows in the sheet.
func (s *RawSheet) RowCount() int {
	return len(s.Rows)
}

// ColumnCount returns the widest row in the sheet. Raw spreadsheet rows are
// ragged, so the header row width is not authoritative on its own.
func (s *RawSheet) ColumnCount() int {
	max := 0
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Cell returns the cell at (row, col), or "" when the row is too short.
func (s *RawSheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Boundaries is the result of the header/data boundary scan: the row holding
// the column labels and the first row of real data after any instruction
// rows. Both are best-effort; detection never fails.
type Boundaries struct {
	HeaderRow    int
	DataStartRow int
	HeaderScore  int
	UsedFallback bool
	SkippedRows  []int
}

// Record is one persisted row: column name to stored text value.
type Record map[string]string

// ResultSet is a generic query result: column order as returned by the
// store, rows as name-to-value maps. Values are nil for SQL NULL, string
// for stored text, and int64/float64 for aggregate expressions.
type ResultSet struct {
	Columns []string
	Rows    []map[string]any
}

// Empty reports whether the result holds no rows.
func (r *ResultSet) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Schema is an ordered snapshot of the persisted table's columns. Order
// matters: the "first budget-like column" heuristic resolves ties by
// iteration order, which must match the source column order.
type Schema struct {
	Columns []Column
}

// Column is one schema entry. Name is stored lower-cased.
type Column struct {
	Name string
	Type string
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the schema contains the named column.
func (s Schema) Has(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

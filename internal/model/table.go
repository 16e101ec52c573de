package model

// MergeType identifies the kind of cell merge found in an HTML table.
type MergeType string

const (
	MergeColspan MergeType = "colspan"
	MergeRowspan MergeType = "rowspan"
)

// ExtractedTable is the normalized form of a table found in document
// content, regardless of whether it came from HTML or Markdown.
// Rows may be ragged: rows[i] need not have len(headers) cells, and
// validators treat out-of-range cells as absent.
type ExtractedTable struct {
	Headers        []string    `json:"headers"`
	Rows           [][]string  `json:"rows"`
	Position       int         `json:"position"`
	HasMergedCells bool        `json:"has_merged_cells"`
	MergeTypes     []MergeType `json:"merge_types,omitempty"`
}

// Cell returns the cell at (row, col) and whether it exists. Missing
// cells in ragged rows report ok=false rather than panicking.
func (t *ExtractedTable) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return "", false
	}
	return t.Rows[row][col], true
}

// Column returns all present cells of the given column index across rows.
func (t *ExtractedTable) Column(col int) []string {
	var out []string
	for i := range t.Rows {
		if v, ok := t.Cell(i, col); ok {
			out = append(out, v)
		}
	}
	return out
}

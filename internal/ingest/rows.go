package ingest

import (
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// retentionKeyColumns is how many leading cells decide whether a row is
// real data or trailing noise.
const retentionKeyColumns = 5

// isBlankLike reports whether a pre-normalization cell value carries no
// data: empty, whitespace-only, the sentinel itself, or a NaN rendering.
func isBlankLike(v string) bool {
	if strings.TrimSpace(v) == "" || v == sheet.Sentinel {
		return true
	}
	for _, nan := range sheet.NaNRenderings {
		if v == nan {
			return true
		}
	}
	return false
}

// ExtractRows slices the data region out of the sheet and drops trailing
// noise rows. A row is retained only if at least one of its first
// min(5, width) cells holds real data. The check runs on pre-normalized
// values: after normalization a legitimately-zero cell and a blank cell are
// indistinguishable, so retention must come first.
//
// Every retained row is padded to the full sheet width so it aligns with
// the derived column names.
func ExtractRows(s *sheet.RawSheet, dataStartRow int) [][]string {
	width := s.ColumnCount()
	keyColumns := min(retentionKeyColumns, width)

	var rows [][]string
	for i := dataStartRow; i < s.RowCount(); i++ {
		src := s.Rows[i]

		hasData := false
		for j := 0; j < keyColumns; j++ {
			var cell string
			if j < len(src) {
				cell = src[j]
			}
			if !isBlankLike(cell) {
				hasData = true
				break
			}
		}
		if !hasData {
			continue
		}

		row := make([]string, width)
		copy(row, src)
		rows = append(rows, row)
	}
	return rows
}

// NormalizeCell maps blank-like values to the sentinel "0" and preserves
// everything else byte-for-byte. Spreadsheet error codes count as blank:
// they are formula residue, never data.
func NormalizeCell(v string) string {
	if strings.TrimSpace(v) == "" {
		return sheet.Sentinel
	}
	for _, nan := range sheet.NaNRenderings {
		if v == nan {
			return sheet.Sentinel
		}
	}
	for _, code := range sheet.ErrorCodes {
		if v == code {
			return sheet.Sentinel
		}
	}
	return v
}

// NormalizeRows applies NormalizeCell in place and returns how many cells
// were replaced, for the ingestion report.
func NormalizeRows(rows [][]string) int {
	changed := 0
	for _, row := range rows {
		for j, cell := range row {
			if normalized := NormalizeCell(cell); normalized != cell {
				row[j] = normalized
				changed++
			}
		}
	}
	return changed
}

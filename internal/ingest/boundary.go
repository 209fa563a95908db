package ingest

import (
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

const (
	headerScanLimit      = 25
	densityScanLimit     = 15
	densityThreshold     = 0.3
	fallbackHeaderRow    = 8
	instructionScanLimit = 10
)

// rowText lower-cases and concatenates the non-blank cells of a row into a
// single blob for substring scoring.
func rowText(row []string) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			parts = append(parts, strings.ToLower(cell))
		}
	}
	return strings.Join(parts, " ")
}

// ScoreHeaderRow counts domain-vocabulary hits in a row. The identifier
// indicator only fires when "id" co-occurs with "change" or "delete", so
// the maximum score is len(HeaderIndicators)+1.
func ScoreHeaderRow(row []string) int {
	text := rowText(row)
	score := 0
	if strings.Contains(text, "id") && (strings.Contains(text, "change") || strings.Contains(text, "delete")) {
		score++
	}
	for _, term := range sheet.HeaderIndicators {
		if strings.Contains(text, term) {
			score++
		}
	}
	return score
}

// isInstructionRow reports whether a row carries fill-in guidance rather
// than data.
func isInstructionRow(row []string) bool {
	text := rowText(row)
	if text == "" {
		return false
	}
	for _, term := range sheet.InstructionTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// nonBlankFraction is the share of a row's cells holding anything but
// whitespace, measured against the full sheet width.
func nonBlankFraction(row []string, width int) float64 {
	if width == 0 {
		return 0
	}
	nonBlank := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			nonBlank++
		}
	}
	return float64(nonBlank) / float64(width)
}

// FindBoundaries locates the header row and the first data row. It is
// best-effort and never fails: when no row scores as a header it falls back
// to the densest early row, and past that to a fixed row index.
//
// Resolution order is scan order: the first row at or above the score
// threshold wins outright.
func FindBoundaries(s *sheet.RawSheet) sheet.Boundaries {
	b := sheet.Boundaries{HeaderRow: -1}
	width := s.ColumnCount()

	limit := min(headerScanLimit, s.RowCount())
	for i := 0; i < limit; i++ {
		score := ScoreHeaderRow(s.Rows[i])
		if score >= sheet.HeaderScoreThreshold {
			b.HeaderRow = i
			b.HeaderScore = score
			break
		}
	}

	if b.HeaderRow < 0 {
		// No clear header: take the densest row in the early region,
		// accepted only above the density floor.
		b.UsedFallback = true
		maxDensity := 0.0
		limit = min(densityScanLimit, s.RowCount())
		for i := 0; i < limit; i++ {
			density := nonBlankFraction(s.Rows[i], width)
			if density > maxDensity && density > densityThreshold {
				maxDensity = density
				b.HeaderRow = i
			}
		}
		if b.HeaderRow < 0 {
			b.HeaderRow = fallbackHeaderRow
		}
	}

	b.DataStartRow = b.HeaderRow + 1
	scanEnd := min(b.DataStartRow+instructionScanLimit, s.RowCount())
	for i := b.DataStartRow; i < scanEnd; i++ {
		if isInstructionRow(s.Rows[i]) {
			b.SkippedRows = append(b.SkippedRows, i)
			b.DataStartRow = i + 1
		} else {
			break
		}
	}

	return b
}

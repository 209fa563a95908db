package ingest

import (
	"strings"

	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// analyzeScanRows is how many leading rows the structure report covers.
const analyzeScanRows = 20

// potentialHeaderScore flags a row in the report as header-looking. Looser
// than the detection threshold on purpose: the report is for eyeballs.
const potentialHeaderScore = 3

// looksNumeric mimics the loose "digits after stripping punctuation" test
// used when profiling raw sheets by hand.
func looksNumeric(v string) bool {
	stripped := strings.NewReplacer(".", "", "-", "", ",", "").Replace(v)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AnalyzeStructure logs a row-by-row profile of the leading rows: cell type
// counts, a few sample values, and a flag on rows that look like headers.
// Pure reporting; it influences nothing downstream.
func AnalyzeStructure(s *sheet.RawSheet, logger *internal.Logger) {
	width := s.ColumnCount()
	logger.Info("[Ingest] File dimensions: %d rows x %d columns", s.RowCount(), width)

	limit := min(analyzeScanRows, s.RowCount())
	for i := 0; i < limit; i++ {
		row := s.Rows[i]

		empty, numeric := 0, 0
		var samples []string
		for j := 0; j < width; j++ {
			var cell string
			if j < len(row) {
				cell = row[j]
			}
			switch {
			case strings.TrimSpace(cell) == "":
				empty++
			case looksNumeric(cell):
				numeric++
			}
			if strings.TrimSpace(cell) != "" && len(samples) < 5 {
				sample := cell
				if len(sample) > 15 {
					sample = sample[:15]
				}
				samples = append(samples, sample)
			}
		}
		text := width - empty - numeric

		logger.Debug("[Ingest] Row %2d: empty=%3d numeric=%3d text=%3d | sample: %v",
			i, empty, numeric, text, samples)

		if score := ScoreHeaderRow(row); score >= potentialHeaderScore {
			logger.Info("[Ingest] Row %d looks like a header (score %d/%d)",
				i, score, len(sheet.HeaderIndicators)+1)
		}
	}
}

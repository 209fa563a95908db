package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// maxColumnNameLen caps derived column names so downstream SQL stays sane.
const maxColumnNameLen = 60

var yearPattern = regexp.MustCompile(`20\d\d`)

// BuildColumnNames derives one clean, unique, lower-case column name per
// sheet column from the header row. Raw header cells are messy: multi-line
// labels, duplicated captions, blank spacer cells. Canonicalization rules
// are applied in order and the first match wins; anything unmatched goes
// through generic sanitization.
//
// The output always has exactly s.ColumnCount() entries, all unique and
// non-empty.
func BuildColumnNames(s *sheet.RawSheet, headerRow int) []string {
	width := s.ColumnCount()
	names := make([]string, 0, width)
	used := make(map[string]bool, width)

	for i := 0; i < width; i++ {
		raw := s.Cell(headerRow, i)
		clean := canonicalName(raw, i, used)

		// Ensure global uniqueness within this run.
		final := strings.ToLower(clean)
		counter := 1
		for used[final] {
			final = fmt.Sprintf("%s_%d", strings.ToLower(clean), counter)
			counter++
		}
		used[final] = true
		names = append(names, final)
	}

	return repairDuplicates(names)
}

// canonicalName maps one raw header cell to a candidate name. The used set
// is consulted only by the rules that prefer a bare canonical name but fall
// back to an index-suffixed one when the bare name is taken.
func canonicalName(raw string, index int, used map[string]bool) string {
	if strings.TrimSpace(raw) == "" {
		return fmt.Sprintf("column_%d", index)
	}

	header := strings.TrimSpace(raw)
	header = strings.ReplaceAll(header, "\n", " ")
	header = strings.ReplaceAll(header, "\r", " ")
	header = strings.Join(strings.Fields(header), " ")

	lower := strings.ToLower(header)

	switch {
	case strings.Contains(lower, "id") &&
		(strings.Contains(lower, "change") || strings.Contains(lower, "delete") || strings.Contains(lower, "add")):
		return "project_id"
	case lower == "company":
		return "company"
	case lower == "region":
		return "region"
	case lower == "plant":
		return "plant"
	case lower == "customer":
		return "customer"
	case strings.Contains(lower, "cost center"):
		if used["cost_center"] {
			return fmt.Sprintf("cost_center_%d", index)
		}
		return "cost_center"
	case strings.Contains(lower, "description"):
		if used["description"] {
			return fmt.Sprintf("description_%d", index)
		}
		return "description"
	case strings.Contains(lower, "investment") && strings.Contains(lower, "category"):
		return "investment_category"
	case strings.Contains(lower, "budget") || strings.Contains(lower, "total"):
		return fmt.Sprintf("budget_%d", index)
	}

	if name, ok := monthYearName(lower); ok {
		return name
	}

	return sanitizeName(header, index)
}

// monthYearName canonicalizes headers like "April 2025 spend" to
// "april_2025". Both a month name and a 20xx year must be present.
func monthYearName(lower string) (string, bool) {
	year := yearPattern.FindString(lower)
	if year == "" {
		return "", false
	}
	for _, month := range sheet.Months {
		if strings.Contains(lower, month) {
			return month + "_" + year, true
		}
	}
	return "", false
}

// sanitizeName is the generic cleanup path: separator characters become
// underscores, noise characters are stripped, repeats collapse, and the
// result is capped in length.
func sanitizeName(header string, index int) string {
	replacer := strings.NewReplacer(
		"/", "_", "-", "_", " ", "_",
		"(", "", ")", "", "[", "", "]", "",
		"\n", "_", "\r", "_", `"`, "", "'", "",
		"?", "", "!", "", "&", "and",
	)
	clean := replacer.Replace(header)

	parts := strings.Split(clean, "_")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	clean = strings.Join(kept, "_")

	if len(clean) > maxColumnNameLen {
		clean = clean[:maxColumnNameLen]
	}
	if clean == "" || clean == "_" {
		return fmt.Sprintf("column_%d", index)
	}
	return clean
}

// repairDuplicates is a belt-and-braces verification pass: the uniqueness
// loop above should leave no duplicates, but any survivor is repaired by
// suffixing its column index.
func repairDuplicates(names []string) []string {
	seen := make(map[string]bool, len(names))
	dup := false
	for _, n := range names {
		if seen[n] {
			dup = true
			break
		}
		seen[n] = true
	}
	if !dup {
		return names
	}

	repaired := make([]string, 0, len(names))
	final := make(map[string]bool, len(names))
	for i, n := range names {
		if final[n] {
			n = fmt.Sprintf("%s_%d", n, i)
		}
		final[n] = true
		repaired = append(repaired, n)
	}
	return repaired
}

package ingest

import (
	"reflect"
	"testing"
)

func TestExtractRows_Retention(t *testing.T) {
	s := sheetOf(
		[]string{"Company", "Region", "Plant", "Customer", "Budget", "Notes"},
		[]string{"Acme", "EMEA", "Berlin", "Siemens", "1000", "ok"},
		[]string{"", "", "", "", "", "orphan note"}, // key columns blank: dropped
		[]string{"0", "0", "nan", " ", "", ""},      // sentinel/NaN/blank only: dropped
		[]string{"", "", "", "", "500", ""},         // budget in a key column: kept
		[]string{"", "", "", "", "", ""},
	)

	rows := ExtractRows(s, 1)
	if len(rows) != 2 {
		t.Fatalf("kept %d rows, want 2", len(rows))
	}
	if rows[0][0] != "Acme" {
		t.Errorf("first kept row = %v", rows[0])
	}
	if rows[1][4] != "500" {
		t.Errorf("second kept row = %v", rows[1])
	}
}

func TestExtractRows_KeyWindowIsFiveColumns(t *testing.T) {
	// Data beyond the first five columns does not rescue a row.
	s := sheetOf(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]string{"", "", "", "", "", "only in column six"},
	)
	rows := ExtractRows(s, 1)
	if len(rows) != 0 {
		t.Errorf("kept %d rows, want 0", len(rows))
	}
}

func TestExtractRows_NarrowSheet(t *testing.T) {
	s := sheetOf(
		[]string{"a", "b"},
		[]string{"", "x"},
		[]string{"", ""},
	)
	rows := ExtractRows(s, 1)
	if len(rows) != 1 {
		t.Fatalf("kept %d rows, want 1", len(rows))
	}
}

func TestExtractRows_PadsRaggedRows(t *testing.T) {
	s := sheetOf(
		[]string{"a", "b", "c", "d"},
		[]string{"x"},
	)
	rows := ExtractRows(s, 1)
	if len(rows) != 1 {
		t.Fatalf("kept %d rows, want 1", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"x", "", "", ""}) {
		t.Errorf("padded row = %v", rows[0])
	}
}

func TestNormalizeCell(t *testing.T) {
	sentinelInputs := []string{
		"", " ", "\t", "  \n ",
		"nan", "NaN", "<NA>", "None",
		"#VALUE!", "#REF!", "#DIV/0!", "#N/A", "#NAME?", "#NULL!", "#NUM!",
	}
	for _, in := range sentinelInputs {
		if got := NormalizeCell(in); got != "0" {
			t.Errorf("NormalizeCell(%q) = %q, want \"0\"", in, got)
		}
	}

	preserved := []string{
		"0",        // already the sentinel, unchanged
		"0.0",      // a real value, not blank-like
		"Acme",
		" Acme ",   // interior whitespace is data, only all-whitespace is blank
		"NANCY",    // NaN renderings match exactly, not case-folded substrings
		"n/a",      // lower-case n/a is data in these sheets
		"-",
		"1,000.50",
	}
	for _, in := range preserved {
		if got := NormalizeCell(in); got != in {
			t.Errorf("NormalizeCell(%q) = %q, want unchanged", in, got)
		}
	}
}

// Retention must run before normalization: a row whose only key value is a
// legitimate "0.0" is kept, while one holding a blank that would later
// normalize to "0" is not retained on the strength of that blank.
func TestExtractThenNormalizeOrdering(t *testing.T) {
	s := sheetOf(
		[]string{"a", "b", "c", "d", "e"},
		[]string{"0.0", "", "", "", ""},
		[]string{"#VALUE!", "", "", "", ""},
	)

	rows := ExtractRows(s, 1)
	if len(rows) != 2 {
		t.Fatalf("kept %d rows, want 2 (error codes survive retention, blanks decide)", len(rows))
	}

	changed := NormalizeRows(rows)
	if rows[0][0] != "0.0" {
		t.Errorf("legitimate value mangled: %q", rows[0][0])
	}
	if rows[1][0] != "0" {
		t.Errorf("error code not normalized: %q", rows[1][0])
	}
	// Row 0: four blanks replaced. Row 1: error code + four blanks.
	if changed != 9 {
		t.Errorf("changed = %d, want 9", changed)
	}
}

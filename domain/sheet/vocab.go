package sheet

// Vocabulary tables for the ingestion and query heuristics. These are data,
// not configuration: the detection rules are defined as pure functions over
// these tables so edge cases can be enumerated in tests.

// HeaderIndicators are the domain terms counted when scoring a row as a
// potential header. The identifier indicator is special-cased: "id" only
// counts together with "change" or "delete".
var HeaderIndicators = []string{
	"company",
	"region",
	"plant",
	"customer",
	"description",
	"investment",
	"budget",
}

// HeaderScoreThreshold is the minimum indicator hits (out of the seven
// above plus the identifier check) for a row to win the header scan.
const HeaderScoreThreshold = 4

// InstructionTerms mark rows between the header and the data that carry
// fill-in guidance rather than records. "collumn" is not a typo here: the
// source workbooks misspell it that way.
var InstructionTerms = []string{
	"mandatory",
	"optional",
	"select",
	"input",
	"formula",
	"linked",
	"default",
	"fill in",
	"do not add",
	"delete",
	"collumn",
}

// NaNRenderings are the text forms a missing numeric value arrives as once
// a spreadsheet library stringifies it.
var NaNRenderings = []string{"nan", "NaN", "<NA>", "None"}

// ErrorCodes are spreadsheet formula error values. They are never real
// data and normalize to the sentinel.
var ErrorCodes = []string{
	"#VALUE!",
	"#REF!",
	"#DIV/0!",
	"#N/A",
	"#NAME?",
	"#NULL!",
	"#NUM!",
}

// Sentinel is the stored stand-in for a cell that was blank, whitespace,
// a NaN rendering, or an error code at ingestion time. It is a string, not
// a parsed zero; aggregate queries cast it and accept the loss.
const Sentinel = "0"

// Dimensions are the categorical columns a question can group or filter by,
// in scan order.
var Dimensions = []string{"company", "region", "customer", "plant", "project"}

// ValueColumnMarkers identify a budget-like numeric column by substring
// match against schema names; the first schema column matching any marker
// wins.
var ValueColumnMarkers = []string{"budget", "total", "value"}

// Months maps month-name substrings to their canonical header token.
var Months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// SampleQuestions is the canned question list shared by the CLI help text,
// the chat self-test sweep, and GET /sample_questions.
var SampleQuestions = []string{
	"How many projects are there?",
	"Count projects by company",
	"Show all companies",
	"List all regions",
	"What is the total budget?",
	"Show projects by region",
	"Count projects by customer",
	"What is the average budget by company?",
	"Show the project with maximum budget",
	"List all customers",
	"Show all plants",
	"Count projects by investment category",
}

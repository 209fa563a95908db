package chatbot

import (
	"fmt"
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// Intent is the coarse query category chosen by keyword priority.
type Intent int

const (
	IntentCount Intent = iota
	IntentSum
	IntentAvg
	IntentSelect
	IntentMax
	IntentMin
	IntentGeneric
)

func (i Intent) String() string {
	switch i {
	case IntentCount:
		return "count"
	case IntentSum:
		return "sum"
	case IntentAvg:
		return "avg"
	case IntentSelect:
		return "select"
	case IntentMax:
		return "max"
	case IntentMin:
		return "min"
	default:
		return "generic"
	}
}

// intentGroups is the classification table, in priority order. Only the
// first matching group counts, even when several are present in the text.
var intentGroups = []struct {
	intent Intent
	words  []string
}{
	{IntentCount, []string{"count", "how many", "number of"}},
	{IntentSum, []string{"total", "sum", "amount"}},
	{IntentAvg, []string{"average", "avg", "mean"}},
	{IntentSelect, []string{"list", "show", "display", "get"}},
	{IntentMax, []string{"maximum", "max", "highest", "largest"}},
	{IntentMin, []string{"minimum", "min", "lowest", "smallest"}},
}

// ClassifyIntent picks the intent for an already lower-cased question.
func ClassifyIntent(question string) Intent {
	for _, group := range intentGroups {
		for _, word := range group.words {
			if strings.Contains(question, word) {
				return group.intent
			}
		}
	}
	return IntentGeneric
}

// countDimensions is the dimension scan order for COUNT questions.
// "project" maps to the unfiltered base count: every row is a project.
var countDimensions = []string{"company", "region", "project", "customer", "plant"}

// selectDimensions is the dimension scan order for listing questions.
var selectDimensions = []string{"company", "region", "customer", "plant"}

// dimensionFilter excludes NULL, empty, and sentinel values. Without it the
// blank-cell normalization from ingestion would pollute every grouped
// aggregate and distinct listing with a "0" bucket.
func dimensionFilter(column string) string {
	return fmt.Sprintf("%s IS NOT NULL AND %s != '%s' AND %s != ''",
		column, column, sheet.Sentinel, column)
}

// groupedDimension finds a "by <dim>" / "per <dim>" phrasing, which selects
// the aggregate-with-GROUP-BY form over the plain filtered form.
func groupedDimension(question string) (string, bool) {
	for _, dim := range sheet.Dimensions {
		if strings.Contains(question, "by "+dim) || strings.Contains(question, "per "+dim) {
			return dim, true
		}
	}
	return "", false
}

// valueColumn returns the first schema column that looks budget-like.
// Schema order is source column order, so "first" is deterministic. This is
// the most fragile heuristic in the engine: with several matching columns
// the leftmost silently wins.
func (e *Engine) valueColumn() (string, bool) {
	for _, col := range e.schema.Columns {
		for _, marker := range sheet.ValueColumnMarkers {
			if strings.Contains(col.Name, marker) {
				return col.Name, true
			}
		}
	}
	return "", false
}

// GenerateSQL renders one executable SQL statement for the question. It
// never fails: unanswerable input degrades to the generic bounded SELECT.
func (e *Engine) GenerateSQL(question string) string {
	question = strings.ToLower(strings.TrimSpace(question))

	switch ClassifyIntent(question) {
	case IntentCount:
		return e.countQuery(question)
	case IntentSum:
		return e.aggregateQuery(question, "SUM", "total")
	case IntentAvg:
		return e.aggregateQuery(question, "AVG", "average")
	case IntentSelect:
		return e.selectQuery(question)
	case IntentMax:
		return e.maxQuery()
	case IntentMin:
		return e.minQuery()
	default:
		return e.genericQuery()
	}
}

// countQuery builds COUNT statements. A grouped form needs the "by"/"per"
// phrasing; a bare dimension mention yields the filtered scalar count.
func (e *Engine) countQuery(question string) string {
	base := fmt.Sprintf("SELECT COUNT(*) as count FROM %s", e.table)

	for _, dim := range countDimensions {
		if !strings.Contains(question, dim) {
			continue
		}
		if dim == "project" {
			return base
		}
		if strings.Contains(question, "by "+dim) || strings.Contains(question, "per "+dim) {
			return fmt.Sprintf(
				"SELECT %s, COUNT(*) as count FROM %s WHERE %s GROUP BY %s ORDER BY count DESC",
				dim, e.table, dimensionFilter(dim), dim)
		}
		return fmt.Sprintf("%s WHERE %s", base, dimensionFilter(dim))
	}
	return base
}

// aggregateQuery builds SUM/AVG statements over the budget-like column.
// The stored type is always TEXT, so the column is cast at query time; the
// sentinel "0" casts to numeric zero, a deliberate lossy simplification.
// Without a budget-like column the intent silently degrades to a count.
func (e *Engine) aggregateQuery(question, fn, alias string) string {
	valueCol, ok := e.valueColumn()
	if !ok {
		return fmt.Sprintf("SELECT COUNT(*) as count FROM %s", e.table)
	}

	expr := fmt.Sprintf("%s(CAST(%s AS REAL)) as %s", fn, valueCol, alias)
	if dim, ok := groupedDimension(question); ok && dim != "project" {
		return fmt.Sprintf(
			"SELECT %s, %s FROM %s WHERE %s GROUP BY %s ORDER BY %s DESC",
			dim, expr, e.table, dimensionFilter(dim), dim, alias)
	}
	return fmt.Sprintf("SELECT %s FROM %s", expr, e.table)
}

// selectQuery builds distinct listings for a mentioned dimension, or the
// generic bounded SELECT when none is mentioned.
func (e *Engine) selectQuery(question string) string {
	for _, dim := range selectDimensions {
		if strings.Contains(question, dim) {
			return fmt.Sprintf(
				"SELECT DISTINCT %s FROM %s WHERE %s ORDER BY %s",
				dim, e.table, dimensionFilter(dim), dim)
		}
	}
	return e.genericQuery()
}

// maxQuery keeps the bare-column MAX form: in SQLite the non-aggregated
// columns of a MAX/MIN query resolve to the extreme row.
func (e *Engine) maxQuery() string {
	valueCol, ok := e.valueColumn()
	if !ok {
		return fmt.Sprintf("SELECT * FROM %s LIMIT 1", e.table)
	}
	return fmt.Sprintf("SELECT *, MAX(CAST(%s AS REAL)) as max_value FROM %s", valueCol, e.table)
}

// minQuery excludes zero-cast values so sentinel cells cannot win as the
// minimum.
func (e *Engine) minQuery() string {
	valueCol, ok := e.valueColumn()
	if !ok {
		return fmt.Sprintf("SELECT * FROM %s LIMIT 1", e.table)
	}
	return fmt.Sprintf(
		"SELECT *, MIN(CAST(%s AS REAL)) as min_value FROM %s WHERE CAST(%s AS REAL) > 0",
		valueCol, e.table, valueCol)
}

func (e *Engine) genericQuery() string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT 10", e.table)
}

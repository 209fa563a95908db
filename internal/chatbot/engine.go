package chatbot

import (
	"context"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"
)

// Querier is the slice of the store the engine needs: run SQL, get rows.
type Querier interface {
	Query(ctx context.Context, sqlText string) (*sheet.ResultSet, error)
}

// Engine turns free-text questions into SQL against the ingested table.
// The schema is an immutable snapshot taken at construction: re-running
// ingestion while an engine is alive leaves it stale, and the caller must
// build a new engine to pick up the change.
type Engine struct {
	table  string
	schema sheet.Schema
	store  Querier
	logger *internal.Logger
}

// Answer is the result of one question. Success distinguishes "rows came
// back" from the ambiguous empty case (no matches, or the query failed
// downstream); the shells render both the same way.
type Answer struct {
	Question string           `json:"question"`
	SQL      string           `json:"sql_query"`
	Results  *sheet.ResultSet `json:"-"`
	Success  bool             `json:"success"`
}

// New creates an engine over an already-fetched schema snapshot.
func New(table string, schema sheet.Schema, store Querier, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{table: table, schema: schema, store: store, logger: logger}
}

// Columns returns the snapshot's column names in schema order.
func (e *Engine) Columns() []string {
	return e.schema.Names()
}

// Ask answers a question. It never returns an error: generation always
// yields something executable, and execution failures surface as an empty
// result with Success=false.
func (e *Engine) Ask(ctx context.Context, question string) Answer {
	sqlText := e.GenerateSQL(question)
	e.logger.Debug("[Chatbot] %q -> %s", question, sqlText)

	answer := Answer{Question: question, SQL: sqlText}

	result, err := e.store.Query(ctx, sqlText)
	if err != nil {
		e.logger.Error("[Chatbot] Query failed: %v", err)
		answer.Results = &sheet.ResultSet{}
		return answer
	}

	answer.Results = result
	answer.Success = !result.Empty()
	return answer
}

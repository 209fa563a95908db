package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/adapters/excel"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/errors"

	"github.com/google/uuid"
)

// TableWriter is the slice of the store the pipeline needs: replace the
// table wholesale and count what landed.
type TableWriter interface {
	ReplaceTable(ctx context.Context, table string, columns []string, rows [][]string) error
	Count(ctx context.Context, table string) (int, error)
}

// Pipeline runs one full ingestion: locate the source file, read it raw,
// find the header/data boundaries, derive column names, trim and normalize
// the data rows, and replace the persisted table.
type Pipeline struct {
	sourceBase string
	table      string
	store      TableWriter
	logger     *internal.Logger
}

// Result summarizes a completed ingestion run.
type Result struct {
	RunID         string
	SourcePath    string
	HeaderRow     int
	DataStartRow  int
	Columns       []string
	RowsInserted  int
	CellsReplaced int
}

// NewPipeline creates an ingestion pipeline. sourceBase is the data file
// path without extension; ".xlsx" is tried first, then ".csv".
func NewPipeline(sourceBase, table string, store TableWriter, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{sourceBase: sourceBase, table: table, store: store, logger: logger}
}

// locateSource resolves the conventional source file name.
func (p *Pipeline) locateSource() (string, error) {
	for _, ext := range []string{".xlsx", ".csv"} {
		path := p.sourceBase + ext
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.IngestError(fmt.Sprintf("no data file found for %q (.xlsx or .csv)", p.sourceBase))
}

// Run executes the pipeline once. Nothing is written on read failure; the
// previous table survives until ReplaceTable commits.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()[:8]
	p.logger.Info("[Ingest %s] Starting ingestion for %q", runID, p.sourceBase)

	path, err := p.locateSource()
	if err != nil {
		return nil, err
	}

	raw, err := excel.NewDataReader(path).ReadRaw()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read source file")
	}

	AnalyzeStructure(raw, p.logger)

	bounds := FindBoundaries(raw)
	if bounds.UsedFallback {
		p.logger.Warn("[Ingest %s] No clear header row, fell back to row %d", runID, bounds.HeaderRow)
	} else {
		p.logger.Info("[Ingest %s] Header row %d (score %d), data starts at row %d",
			runID, bounds.HeaderRow, bounds.HeaderScore, bounds.DataStartRow)
	}
	for _, skipped := range bounds.SkippedRows {
		p.logger.Info("[Ingest %s] Skipping instruction row %d", runID, skipped)
	}

	columns := BuildColumnNames(raw, bounds.HeaderRow)
	p.logger.Info("[Ingest %s] Derived %d unique column names", runID, len(columns))

	rows := ExtractRows(raw, bounds.DataStartRow)
	dropped := raw.RowCount() - bounds.DataStartRow - len(rows)
	p.logger.Info("[Ingest %s] Kept %d data rows, dropped %d empty rows", runID, len(rows), dropped)

	replaced := NormalizeRows(rows)
	p.logger.Info("[Ingest %s] Normalized %d blank-like cells to %q", runID, replaced, sheet.Sentinel)

	if err := p.store.ReplaceTable(ctx, p.table, columns, rows); err != nil {
		return nil, errors.Wrap(err, "failed to replace table")
	}

	// Post-insert validation: re-count what actually landed.
	count, err := p.store.Count(ctx, p.table)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate inserted rows")
	}
	p.logger.Info("[Ingest %s] Validation: %d records confirmed in %s", runID, count, p.table)

	return &Result{
		RunID:         runID,
		SourcePath:    path,
		HeaderRow:     bounds.HeaderRow,
		DataStartRow:  bounds.DataStartRow,
		Columns:       columns,
		RowsInserted:  count,
		CellsReplaced: replaced,
	}, nil
}

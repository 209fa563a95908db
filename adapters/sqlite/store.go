package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// insertBatchSize bounds the number of rows per multi-row INSERT so the
// bound-parameter count stays well under SQLite's limit for wide sheets.
const insertBatchSize = 50

// Store is the file-backed relational store. All sheet columns are stored
// as TEXT; the identity and ingestion-timestamp columns are added by the
// store and are not part of the source data.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// quoteIdent quotes a column or table name for SQLite DDL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ReplaceTable drops and recreates the table, then inserts every row inside
// one transaction. Rows must be pre-padded to len(columns). The drop and
// rebuild are transactional with respect to this connection, not with
// concurrent readers on other connections.
func (s *Store) ReplaceTable(ctx context.Context, table string, columns []string, rows [][]string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	defs := make([]string, 0, len(columns)+2)
	defs = append(defs, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, col := range columns {
		defs = append(defs, quoteIdent(col)+" TEXT")
	}
	defs = append(defs, "created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP")

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	if err := insertRows(ctx, tx, table, columns, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table replacement: %w", err)
	}
	return nil
}

// insertRows writes rows in batches of insertBatchSize.
func insertRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]string) error {
	if len(rows) == 0 || len(columns) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		batch := rows[start:end]

		var b strings.Builder
		b.WriteString("INSERT INTO ")
		b.WriteString(quoteIdent(table))
		b.WriteString(" (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(") VALUES ")

		args := make([]any, 0, len(batch)*len(columns))
		for i, row := range batch {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(placeholder)
			for _, cell := range row {
				args = append(args, cell)
			}
		}

		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return fmt.Errorf("failed to insert rows into %s: %w", table, err)
		}
	}
	return nil
}

// Schema returns the table's columns in declaration order with lower-cased
// names. Declaration order matches source column order, which the query
// engine's first-match heuristics rely on.
func (s *Store) Schema(ctx context.Context, table string) (sheet.Schema, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return sheet.Schema{}, fmt.Errorf("failed to read schema for %s: %w", table, err)
	}
	defer rows.Close()

	var schema sheet.Schema
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return sheet.Schema{}, fmt.Errorf("failed to scan schema row: %w", err)
		}
		schema.Columns = append(schema.Columns, sheet.Column{
			Name: strings.ToLower(name),
			Type: colType,
		})
	}
	if err := rows.Err(); err != nil {
		return sheet.Schema{}, fmt.Errorf("failed to read schema for %s: %w", table, err)
	}
	if len(schema.Columns) == 0 {
		return sheet.Schema{}, errors.DatabaseError(fmt.Sprintf("table %s does not exist", table))
	}
	return schema, nil
}

// Query executes an ad-hoc statement and materializes the full result.
// NULLs stay nil, text stays string, and aggregate expressions come back
// as int64/float64.
func (s *Store) Query(ctx context.Context, sqlText string) (*sheet.ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &sheet.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				record[col] = string(v)
			default:
				record[col] = v
			}
		}
		result.Rows = append(result.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}
	return result, nil
}

// Count returns the row count of the table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table)))
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// Stats holds the summary figures for GET /stats.
type Stats struct {
	TotalProjects   int `json:"total_projects"`
	UniqueCompanies int `json:"unique_companies"`
	UniqueRegions   int `json:"unique_regions"`
	TotalColumns    int `json:"total_columns"`
}

// TableStats computes store statistics. The distinct counts exclude NULL,
// empty, and sentinel values, and are zero when the column is absent.
func (s *Store) TableStats(ctx context.Context, table string, schema sheet.Schema) (Stats, error) {
	stats := Stats{TotalColumns: len(schema.Columns)}

	total, err := s.Count(ctx, table)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalProjects = total

	if schema.Has("company") {
		if stats.UniqueCompanies, err = s.distinctCount(ctx, table, "company"); err != nil {
			return Stats{}, err
		}
	}
	if schema.Has("region") {
		if stats.UniqueRegions, err = s.distinctCount(ctx, table, "region"); err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}

func (s *Store) distinctCount(ctx context.Context, table, column string) (int, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(DISTINCT %s) FROM %s WHERE %s IS NOT NULL AND %s != '%s' AND %s != ''",
		quoteIdent(column), quoteIdent(table),
		quoteIdent(column), quoteIdent(column), sheet.Sentinel, quoteIdent(column),
	)
	var count int
	if err := s.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count distinct %s: %w", column, err)
	}
	return count, nil
}

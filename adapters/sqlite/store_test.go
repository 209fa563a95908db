package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var (
	testColumns = []string{"project_id", "company", "region", "budget_5"}
	testRows    = [][]string{
		{"P-001", "Acme", "EMEA", "1000"},
		{"P-002", "Acme", "APAC", "250.5"},
		{"P-003", "Globex", "0", "0"},
		{"P-004", "0", "EMEA", "75"},
	}
)

func TestReplaceTableAndSchema(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))

	schema, err := store.Schema(ctx, "investment_projects")
	require.NoError(t, err)

	// id and created_at are store-added and bracket the source columns.
	names := schema.Names()
	require.Len(t, names, len(testColumns)+2)
	assert.Equal(t, "id", names[0])
	assert.Equal(t, "created_at", names[len(names)-1])
	assert.Equal(t, testColumns, names[1:len(names)-1])

	for _, col := range schema.Columns[1 : len(schema.Columns)-1] {
		assert.Equal(t, "TEXT", col.Type, "source column %s must be stored as text", col.Name)
	}

	count, err := store.Count(ctx, "investment_projects")
	require.NoError(t, err)
	assert.Equal(t, len(testRows), count)
}

// Re-running ingestion over the same data replaces the table wholesale:
// same row count, same column names.
func TestReplaceTable_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))
	first, err := store.Schema(ctx, "investment_projects")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))
	second, err := store.Schema(ctx, "investment_projects")
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())

	count, err := store.Count(ctx, "investment_projects")
	require.NoError(t, err)
	assert.Equal(t, len(testRows), count)
}

func TestQuery_TextAndAggregates(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))

	result, err := store.Query(ctx, "SELECT company FROM investment_projects ORDER BY id")
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)
	assert.Equal(t, "Acme", result.Rows[0]["company"])

	// Text columns cast at query time; the sentinel contributes zero.
	result, err = store.Query(ctx,
		"SELECT SUM(CAST(budget_5 AS REAL)) as total FROM investment_projects")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 1325.5, result.Rows[0]["total"], 0.001)
}

func TestQuery_InvalidSQLReturnsError(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))

	_, err := store.Query(ctx, "SELECT nope FROM missing_table")
	assert.Error(t, err)
}

func TestSchema_MissingTable(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Schema(context.Background(), "absent")
	assert.Error(t, err)
}

func TestTableStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.ReplaceTable(ctx, "investment_projects", testColumns, testRows))

	schema, err := store.Schema(ctx, "investment_projects")
	require.NoError(t, err)

	stats, err := store.TableStats(ctx, "investment_projects", schema)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalProjects)
	// "0" company and "0" region rows are excluded from the distinct counts.
	assert.Equal(t, 2, stats.UniqueCompanies)
	assert.Equal(t, 2, stats.UniqueRegions)
	assert.Equal(t, len(testColumns)+2, stats.TotalColumns)
}

func TestReplaceTable_WideSheetManyRows(t *testing.T) {
	// More rows than one insert batch, to cover the batching path.
	ctx := context.Background()
	store := openTestStore(t)

	columns := []string{"company", "budget_1"}
	rows := make([][]string, 0, 137)
	for i := 0; i < 137; i++ {
		rows = append(rows, []string{"Acme", "1"})
	}
	require.NoError(t, store.ReplaceTable(ctx, "t", columns, rows))

	count, err := store.Count(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 137, count)
}

package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/adapters/sqlite"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/chatbot"
	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	columns := []string{"project_id", "company", "region", "budget_5"}
	rows := [][]string{
		{"P-001", "Acme", "EMEA", "1000"},
		{"P-002", "Globex", "APAC", "500"},
	}
	if err := store.ReplaceTable(ctx, "investment_projects", columns, rows); err != nil {
		t.Fatal(err)
	}

	schema, err := store.Schema(ctx, "investment_projects")
	if err != nil {
		t.Fatal(err)
	}

	logger := internal.NewLogger(internal.LogLevelError)
	engine := chatbot.New("investment_projects", schema, store, logger)

	server, err := NewServer(engine, store, "investment_projects", schema, logger)
	if err != nil {
		t.Fatal(err)
	}
	return server
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, payload
}

func TestHandleAsk(t *testing.T) {
	server := newTestServer(t)

	rec, payload := doJSON(t, server.Handler(), http.MethodPost, "/ask",
		`{"question": "How many projects are there?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if payload["success"] != true {
		t.Errorf("success = %v, want true", payload["success"])
	}
	sqlText, _ := payload["sql_query"].(string)
	if !strings.Contains(sqlText, "COUNT(*)") {
		t.Errorf("sql_query = %q", sqlText)
	}
	results, _ := payload["results_json"].([]any)
	if len(results) != 1 {
		t.Errorf("results_json = %v, want one row", payload["results_json"])
	}
	html, _ := payload["results_html"].(string)
	if !strings.Contains(html, "<table") {
		t.Errorf("results_html = %q, want a table fragment", html)
	}
}

func TestHandleAsk_NoResults(t *testing.T) {
	server := newTestServer(t)

	// The customer dimension is not a column of this table, so the query
	// fails downstream and degrades to an empty result with success=false.
	rec, payload := doJSON(t, server.Handler(), http.MethodPost, "/ask",
		`{"question": "show all customers"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if payload["success"] != false {
		t.Errorf("success = %v, want false", payload["success"])
	}
	html, _ := payload["results_html"].(string)
	if html != "<p>No results found.</p>" {
		t.Errorf("results_html = %q", html)
	}
}

func TestHandleAsk_BadRequests(t *testing.T) {
	server := newTestServer(t)

	rec, payload := doJSON(t, server.Handler(), http.MethodPost, "/ask", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON status = %d, want 400", rec.Code)
	}
	if _, ok := payload["error"]; !ok {
		t.Error("bad JSON response should carry an error message")
	}

	rec, payload = doJSON(t, server.Handler(), http.MethodPost, "/ask", `{"question": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty question status = %d, want 400", rec.Code)
	}
	if payload["error"] != "No question provided" {
		t.Errorf("error = %v", payload["error"])
	}
}

func TestHandleColumns(t *testing.T) {
	server := newTestServer(t)

	rec, payload := doJSON(t, server.Handler(), http.MethodGet, "/columns", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	columns, _ := payload["columns"].([]any)
	if len(columns) != 6 { // id + 4 source columns + created_at
		t.Errorf("columns = %v", payload["columns"])
	}
	if columns[1] != "project_id" {
		t.Errorf("columns[1] = %v, want project_id", columns[1])
	}
}

func TestHandleStats(t *testing.T) {
	server := newTestServer(t)

	rec, payload := doJSON(t, server.Handler(), http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if payload["total_projects"] != float64(2) {
		t.Errorf("total_projects = %v, want 2", payload["total_projects"])
	}
	if payload["unique_companies"] != float64(2) {
		t.Errorf("unique_companies = %v, want 2", payload["unique_companies"])
	}
	if payload["total_columns"] != float64(6) {
		t.Errorf("total_columns = %v, want 6", payload["total_columns"])
	}
}

func TestHandleSampleQuestions(t *testing.T) {
	server := newTestServer(t)

	rec, payload := doJSON(t, server.Handler(), http.MethodGet, "/sample_questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	questions, _ := payload["questions"].([]any)
	if len(questions) == 0 {
		t.Error("sample questions should not be empty")
	}
}

func TestHandleIndex(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Investment Data Chatbot") {
		t.Error("index page should render the embedded template")
	}
}

package ui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/adapters/sqlite"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/chatbot"
	internal "github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the HTTP shell over the query engine. Each request is
// independent and stateless aside from the schema snapshot the engine took
// at startup.
type Server struct {
	router    *chi.Mux
	engine    *chatbot.Engine
	store     *sqlite.Store
	table     string
	schema    sheet.Schema
	templates *template.Template
	logger    *internal.Logger
}

// NewServer wires the router, handlers, and embedded templates.
func NewServer(engine *chatbot.Engine, store *sqlite.Store, table string, schema sheet.Schema, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    chi.NewRouter(),
		engine:    engine,
		store:     store,
		table:     table,
		schema:    schema,
		templates: templates,
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/ask", s.handleAsk)
	s.router.Get("/columns", s.handleColumns)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/sample_questions", s.handleSampleQuestions)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given port.
func (s *Server) ListenAndServe(port string) error {
	s.logger.Info("[Server] Listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

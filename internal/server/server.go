package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/repurpose"
	"github.com/voxhall/contentengine/internal/usage"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the HTTP server for browsing run history and voice profiles.
type Server struct {
	db      *database.DB
	tracker *usage.Tracker
	pages   map[string]*template.Template
	mux     *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB, tracker *usage.Tracker) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"formatName": func(format string) string {
			return repurpose.OutputFormat(format).DisplayName()
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "content.html", "voices.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, tracker: tracker, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Routes
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/content/", s.handleContent)
	s.mux.HandleFunc("/voices", s.handleVoices)
	s.mux.HandleFunc("/voices/", s.handleVoiceAction)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	history, err := s.db.GetHistoryPage(page, 20)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	info, err := s.tracker.Info()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hasNext := page*history.PageSize < history.Total
	s.render(w, "index.html", map[string]any{
		"History":  history,
		"Usage":    info,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasNext":  hasNext,
	})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/content/")

	if id, ok := strings.CutSuffix(path, "/delete"); ok && r.Method == http.MethodPost {
		if err := s.db.DeleteContentInput(id); err != nil {
			log.Printf("deleting content %s: %v", id, err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if path == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	detail, err := s.db.GetHistoryDetail(path)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "content.html", map[string]any{
		"Detail": detail,
	})
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.db.GetVoiceProfiles()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "voices.html", map[string]any{
		"Profiles": profiles,
	})
}

func (s *Server) handleVoiceAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/voices", http.StatusFound)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/voices/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		http.Redirect(w, r, "/voices", http.StatusFound)
		return
	}

	id := parts[0]
	switch parts[1] {
	case "default":
		if err := s.db.SetDefaultVoice(id); err != nil {
			log.Printf("setting default voice %s: %v", id, err)
		}
	case "delete":
		if err := s.db.DeleteVoiceProfile(id); err != nil {
			log.Printf("deleting voice %s: %v", id, err)
		}
	}

	http.Redirect(w, r, "/voices", http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	// Blank-line-separate single newlines so thread posts render as
	// separate paragraphs.
	normalized := strings.ReplaceAll(text, "\n", "\n\n")
	if err := md.Convert([]byte(normalized), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, tracker *usage.Tracker, port int) error {
	srv, err := New(db, tracker)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

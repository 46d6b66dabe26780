// Package server serves a directory together with the harness page that
// browser tests expect: a #output transcript and a hidden screenshot channel.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/page"
)

// Server serves the harness page and static files
type Server struct {
	dir     string
	port    int
	wasm    string
	title   string
	verbose bool
	tmpl    *template.Template
	addr    net.Addr
}

// Option is a functional option for Server
type Option func(*Server)

// WithPort sets the listen port; 0 picks a free one
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithWasm sets the module the page loads, relative to the served directory
func WithWasm(path string) Option {
	return func(s *Server) {
		s.wasm = filepath.ToSlash(path)
	}
}

// WithTitle sets the page title
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithVerbose enables request logging
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

// pageData is what the harness template renders
type pageData struct {
	Title        string
	Wasm         string
	OutputID     string
	ScreenshotID string
}

// NewServer creates a server for dir
func NewServer(dir string, opts ...Option) *Server {
	s := &Server{
		dir:   dir,
		port:  8000,
		title: "browsertest",
		tmpl:  template.Must(template.New("harness").Parse(harnessTemplate)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler without starting a listener
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if s.verbose {
			log.Printf("%s %s", r.Method, r.URL.Path)
		}
		switch r.URL.Path {
		case "/", "/index.html":
			s.renderPage(w)
		case "/wasm_exec.js":
			s.serveWasmExec(w, r, files)
		default:
			files.ServeHTTP(w, r)
		}
	})
	return mux
}

func (s *Server) renderPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Title:        s.title,
		Wasm:         s.wasm,
		OutputID:     page.OutputID,
		ScreenshotID: page.ScreenshotID,
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		http.Error(w, fmt.Sprintf("failed to render harness page: %v", err), http.StatusInternalServerError)
	}
}

// serveWasmExec prefers a wasm_exec.js in the served directory and falls back
// to the one shipped with the Go toolchain.
func (s *Server) serveWasmExec(w http.ResponseWriter, r *http.Request, files http.Handler) {
	if _, err := os.Stat(filepath.Join(s.dir, "wasm_exec.js")); err == nil {
		files.ServeHTTP(w, r)
		return
	}
	for _, candidate := range []string{
		filepath.Join(runtime.GOROOT(), "lib", "wasm", "wasm_exec.js"),
		filepath.Join(runtime.GOROOT(), "misc", "wasm", "wasm_exec.js"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			http.ServeFile(w, r, candidate)
			return
		}
	}
	http.NotFound(w, r)
}

// Start listens and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("cannot listen on port %d: %w", s.port, err)
	}
	s.addr = ln.Addr()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "harness server error: %v\n", err)
		}
	}()
	return nil
}

// URL returns the page URL once Start has succeeded
func (s *Server) URL() string {
	port := s.port
	if tcp, ok := s.addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	return fmt.Sprintf("http://localhost:%d/", port)
}

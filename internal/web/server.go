package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/felixge/httpsnoop"
	"github.com/julienschmidt/httprouter"
	"github.com/vkrunjs/website/internal/config"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/logger"
	"github.com/vkrunjs/website/internal/pprof"
)

// Server serves the site over HTTP
type Server struct {
	cfg        *config.Config
	site       *Site
	log        *logger.Logger
	router     *httprouter.Router
	httpServer *http.Server
}

// NewServer creates a server for site. A nil cfg uses the defaults and a
// nil log uses the global logger.
func NewServer(cfg *config.Config, site *Site, log *logger.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if site == nil {
		site = DefaultSite()
	}
	if log == nil {
		log = logger.Global()
	}

	s := &Server{
		cfg:    cfg,
		site:   site,
		log:    log.WithPrefix("http"),
		router: httprouter.New(),
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout),
		WriteTimeout: time.Duration(cfg.WriteTimeout),
		IdleTimeout:  time.Duration(cfg.IdleTimeout),
		ErrorLog:     logger.StdLogger(s.log, slog.LevelError),
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET(consts.RouteHome, s.handleHome)
	s.router.GET("/documentation/:slug", s.handleDoc)
	s.router.GET(consts.StaticStylesPrefix+":file", s.handleStylesheet)
	s.router.GET(consts.RouteHealth, s.handleHealth)

	if s.cfg.DebugPprof {
		pprof.Register(s.router, pprof.Options{})
		s.log.Warn("Profiling endpoints enabled under %s", pprof.Prefix)
	}

	s.router.NotFound = http.HandlerFunc(s.handleNotFound)
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		s.log.Error("Panic serving %s %s: %v", r.Method, r.URL.Path, v)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Handler returns the routed handler wrapped with request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address and blocks until the server
// is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until the server is stopped
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("Serving site on %s", ln.Addr())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Stopping web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.log.Debug("%s %s %d %dB %s", r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}

// render buffers the page so a failed render still gets a clean 500
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		s.log.Error("Failed to render %s: %v", r.URL.Path, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("Failed to write response for %s: %v", r.URL.Path, err)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.render(w, r, http.StatusOK, s.site.HomePage())
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	page, err := s.site.DocPage(ps.ByName("slug"))
	if errors.Is(err, ErrUnknownPage) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("Failed to build page %s: %v", r.URL.Path, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sheet, ok := s.site.Sheet(ps.ByName("file"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(sheet.CSS()); err != nil {
		s.log.Debug("Failed to write stylesheet: %v", err)
	}
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"instance": s.cfg.InstanceName,
		"time":     time.Now().Format(time.RFC3339),
	}); err != nil {
		s.log.Debug("Failed to write health response: %v", err)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	templ.Handler(s.site.NotFoundPage(),
		templ.WithStatus(http.StatusNotFound),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			s.log.Error("Failed to render not found page: %v", err)
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			})
		}),
	).ServeHTTP(w, r)
}

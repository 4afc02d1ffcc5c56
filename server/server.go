package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/gamegraf/pkg/config"
	"github.com/umputun/gamegraf/pkg/domain"
	"github.com/umputun/gamegraf/pkg/summary"
	"github.com/umputun/gamegraf/pkg/theme"
	"github.com/umputun/gamegraf/pkg/view"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure -fmt goimports . Backend

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	source  view.FeedSource
	backend Backend
	version string
	debug   bool

	// base context of all sessions, shells outlive the request that created them
	ctx    context.Context
	cancel context.CancelFunc

	templates *template.Template
	sessions  *sessionStore
	viewOpts  view.Options

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetUIConfig() config.UIConfig
	Palette() theme.Palette
}

// Backend is the embedded feed backend, nil if disabled
type Backend interface {
	News(ctx context.Context) []domain.NewsItem
	Deals(ctx context.Context) domain.FeedResponse
}

// New initializes a new server instance. The source feeds UI sessions, backend
// (optional) serves /api/news and /api/deals.
func New(cfg ConfigProvider, source view.FeedSource, backend Backend, version string, debug bool) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	uiCfg := cfg.GetUIConfig()

	s := &Server{
		config:    cfg,
		source:    source,
		backend:   backend,
		version:   version,
		debug:     debug,
		ctx:       ctx,
		cancel:    cancel,
		templates: template.Must(template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")),
		sessions:  newSessionStore(uiCfg.MaxSessions, uiCfg.SessionTTL),
		viewOpts:  view.Options{Palette: cfg.Palette()},
		router:    routegroup.New(http.NewServeMux()),
	}
	if uiCfg.SanitizeSummaries {
		s.viewOpts.Sanitizer = summary.NewPolicySanitizer()
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		// feed fragments block until the view settles, leave room for the upstream fetch
		WriteTimeout: 2 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
		s.Close()
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Close drops all sessions, unmounting their views
func (s *Server) Close() {
	s.sessions.purge()
	s.cancel()
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("gamegraf", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, requests carry no bodies
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.indexHandler)

	s.router.Mount("/ui/{sid}").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /tab/{index}", s.tabHandler)
		r.HandleFunc("POST /theme", s.themeHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
	})

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
	})

	if s.backend != nil {
		s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
			r.HandleFunc("GET /news", s.newsAPIHandler)
			r.HandleFunc("GET /deals", s.dealsAPIHandler)
		})
	}
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"sessions": s.sessions.len(),
		"backend":  s.backend != nil,
	})
}

// newsAPIHandler serves aggregated news from the embedded backend
func (s *Server) newsAPIHandler(w http.ResponseWriter, r *http.Request) {
	rest.RenderJSON(w, s.backend.News(r.Context()))
}

// dealsAPIHandler serves deals and freebies from the embedded backend
func (s *Server) dealsAPIHandler(w http.ResponseWriter, r *http.Request) {
	rest.RenderJSON(w, s.backend.Deals(r.Context()).Normalize())
}

// Package web serves the dashboard over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"aceh-poverty-dashboard/render"
	"aceh-poverty-dashboard/services"
	"aceh-poverty-dashboard/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the HTTP handlers. The dashboard it wraps is read-only, so
// handlers share it without locking.
type Server struct {
	dash    *services.Dashboard
	html    render.Renderer
	png     render.Renderer
	origins []string
	logger  *utils.Logger
	page    *template.Template
}

// NewServer parses the page template and returns a Server.
func NewServer(dash *services.Dashboard, origins []string, logger *utils.Logger) (*Server, error) {
	page, err := template.New("index.html").Funcs(template.FuncMap{
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		dash:    dash,
		html:    render.NewECharts(),
		png:     render.NewPlotPNG(),
		origins: origins,
		logger:  logger.With("http"),
		page:    page,
	}, nil
}

// Routes wires middlewares and endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/charts/{section}", s.handleChart)
	r.Get("/export.xlsx", s.handleExport)

	r.Route("/api", func(api chi.Router) {
		api.Get("/view", s.handleView)
		api.Get("/controls", s.handleControls)
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

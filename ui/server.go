package ui

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gobenford/internal/config"
)

// App serves the analysis artifacts for review in a browser. It is strictly
// read-only over the configured output directory.
type App struct {
	router *chi.Mux
	cfg    *config.Config
}

// NewApp creates the review application
func NewApp(cfg *config.Config) *App {
	app := &App{
		router: chi.NewRouter(),
		cfg:    cfg,
	}

	app.router.Use(middleware.Logger)
	app.router.Use(middleware.Recoverer)

	app.router.Get("/", app.handleIndex)
	app.router.Get("/report", app.artifactHandler(cfg.Output.ReportHTMLFile, "text/html; charset=utf-8"))
	app.router.Get("/report.md", app.artifactHandler(cfg.Output.ReportFile, "text/markdown; charset=utf-8"))
	app.router.Get("/charts/observed", app.artifactHandler(cfg.Output.ObservedChart, "image/svg+xml"))
	app.router.Get("/charts/deviation", app.artifactHandler(cfg.Output.DeviationChart, "image/svg+xml"))
	// The HTML report links charts by filename
	app.router.Get("/"+cfg.Output.ObservedChart, app.artifactHandler(cfg.Output.ObservedChart, "image/svg+xml"))
	app.router.Get("/"+cfg.Output.DeviationChart, app.artifactHandler(cfg.Output.DeviationChart, "image/svg+xml"))

	return app
}

// Start runs the HTTP server on the configured port
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the chi mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Benford Analysis</title></head>
<body>
<h1>Benford Analysis Artifacts</h1>
<ul>
<li><a href="/report">Report (HTML)</a></li>
<li><a href="/report.md">Report (Markdown)</a></li>
<li><a href="/charts/observed">Observed vs Expected chart</a></li>
<li><a href="/charts/deviation">Deviation chart</a></li>
</ul>
</body>
</html>`)
}

func (a *App) artifactHandler(filename, contentType string) http.HandlerFunc {
	path := filepath.Join(a.cfg.Output.Dir, filename)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, path)
	}
}

// Package server exposes the employee directory over HTTP together with the
// monitoring endpoints used by the orchestrator.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{"addemp.html", "about.html", "addempoutput.html", "getemp.html", "getempoutput.html"}

// BackgroundResolver returns the background image filename for a page render.
type BackgroundResolver interface {
	Resolve(ctx context.Context) string
}

// App is the employee directory web handler.
type App struct {
	log         *slog.Logger
	repo        repository.EmployeeRepoIface
	backgrounds BackgroundResolver
	display     config.DisplayConfig
	metrics     *metrics.Metrics
	templates   map[string]*template.Template
	handler     http.Handler
}

// NewApp parses the page templates and registers the routes.
// staticDir is served under /static/ so downloaded backgrounds can be displayed.
func NewApp(
	log *slog.Logger,
	repo repository.EmployeeRepoIface,
	backgrounds BackgroundResolver,
	display config.DisplayConfig,
	staticDir string,
	metrics *metrics.Metrics,
) (*App, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	app := &App{
		log:         log,
		repo:        repo,
		backgrounds: backgrounds,
		display:     display,
		metrics:     metrics,
		templates:   templates,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.handleHome)
	mux.HandleFunc("POST /{$}", app.handleHome)
	mux.HandleFunc("GET /about", app.handleAbout)
	mux.HandleFunc("POST /about", app.handleAbout)
	mux.HandleFunc("POST /addemp", app.handleAddEmployee)
	mux.HandleFunc("GET /getemp", app.handleGetEmployee)
	mux.HandleFunc("POST /getemp", app.handleGetEmployee)
	mux.HandleFunc("POST /fetchdata", app.handleFetchData)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(filesOnly{http.Dir(staticDir)})))

	app.handler = requestIDMiddleware(requestLogger(log, instrument(metrics, securityHeaders(mux))))

	return app, nil
}

// filesOnly hides directories and dot files, which include in-flight downloads.
type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, fs.ErrNotExist
	}

	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) initLogger(ctx context.Context, opn string) *slog.Logger {
	return a.log.With(
		slog.String("op", opn),
		slog.String("division", "web"),
		slog.String("request_id", RequestIDFromContext(ctx)),
	)
}

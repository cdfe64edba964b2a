// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maimoon-github/Professional-Portfolio/internal/analytics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/cache"
	"github.com/Maimoon-github/Professional-Portfolio/internal/config"
	"github.com/Maimoon-github/Professional-Portfolio/internal/handler"
	"github.com/Maimoon-github/Professional-Portfolio/internal/handler/api"
	"github.com/Maimoon-github/Professional-Portfolio/internal/imaging"
	"github.com/Maimoon-github/Professional-Portfolio/internal/logging"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/session"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// formCRUD groups the handlers for an HTML form-driven resource.
type formCRUD struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerFormCRUD registers the dashboard routes for a content type.
// Routes: GET /, GET /new, POST /new, GET /{id}/edit, POST /{id}/edit,
// POST /{id}/delete.
func registerFormCRUD(r chi.Router, base string, h formCRUD) {
	r.Get(base, h.List)
	r.Get(base+"/new", h.NewForm)
	r.Post(base+"/new", h.Create)
	r.Get(base+"/{id}/edit", h.EditForm)
	r.Post(base+"/{id}/edit", h.Update)
	r.Post(base+"/{id}/delete", h.Delete)
}

// registerInlineCRUD registers the dashboard routes for resume sections
// edited inline on one page: POST /new, POST /{id}/edit, POST /{id}/delete.
func registerInlineCRUD(r chi.Router, base string, create, update, del http.HandlerFunc) {
	r.Post(base+"/new", create)
	r.Post(base+"/{id}/edit", update)
	r.Post(base+"/{id}/delete", del)
}

// apiCRUD groups the JSON handlers for an API resource.
type apiCRUD struct {
	List   http.HandlerFunc
	Get    http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - personal portfolio site and dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH         SQLite database path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_UPLOADS_DIR     Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_REDIS_URL       Redis URL for the settings cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("portfolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR records to the event
	// log table.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	queries := store.New(db)

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	appCache, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cacheTTL,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}
	siteCache := cache.NewSiteCache(appCache, queries, cacheTTL)

	templatesFS, err := web.TemplatesFS()
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	h := handler.New(handler.Config{
		Queries:   queries,
		Renderer:  renderer,
		Sessions:  sessionManager,
		Analytics: analytics.New(queries),
		SiteCache: siteCache,
		Images:    imaging.NewProcessor(cfg.UploadsDir),
	})
	apiHandler := api.NewHandler(queries)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Operational endpoints.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public site.
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.OptionalLoadUser(sessionManager, db))

		r.Get("/", h.Home)
		r.Get("/projects/", h.PublicProjects)
		r.Get("/projects/{slug}", h.PublicProjectDetail)
		r.Get("/blog/", h.PublicBlog)
		r.Get("/blog/{slug}", h.PublicPostDetail)
		r.Get("/news/", h.PublicNews)
		r.Get("/news/{slug}", h.PublicNewsDetail)
		r.Get("/experience/", h.PublicResume)
		r.Get("/contact/", h.ContactForm)
		r.With(middleware.RateLimit(0.5, 3)).Post("/contact/", h.SubmitContact)

		r.Get("/dashboard/login", h.LoginForm)
		r.With(middleware.RateLimit(1, 5)).Post("/dashboard/login", h.Login)
	})

	// Staff dashboard.
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Use(middleware.RequireStaff)

		r.Get("/", h.DashboardHome)
		r.Post("/logout", h.Logout)

		r.Get("/analytics", h.AnalyticsPage)
		r.Get("/analytics/trends", h.AnalyticsTrends)

		registerFormCRUD(r, "/projects", formCRUD{
			List: h.ListProjects, NewForm: h.NewProjectForm, Create: h.CreateProject,
			EditForm: h.EditProjectForm, Update: h.UpdateProject, Delete: h.DeleteProject,
		})
		registerFormCRUD(r, "/blog", formCRUD{
			List: h.ListPosts, NewForm: h.NewPostForm, Create: h.CreatePost,
			EditForm: h.EditPostForm, Update: h.UpdatePost, Delete: h.DeletePost,
		})
		registerFormCRUD(r, "/news", formCRUD{
			List: h.ListNews, NewForm: h.NewNewsForm, Create: h.CreateNews,
			EditForm: h.EditNewsForm, Update: h.UpdateNews, Delete: h.DeleteNews,
		})

		r.Get("/experience", h.ResumePage)
		registerInlineCRUD(r, "/experience", h.CreateExperience, h.UpdateExperience, h.DeleteExperience)
		registerInlineCRUD(r, "/education", h.CreateEducation, h.UpdateEducation, h.DeleteEducation)
		registerInlineCRUD(r, "/skills", h.CreateSkill, h.UpdateSkill, h.DeleteSkill)

		r.Get("/media", h.MediaLibrary)
		r.Post("/media/upload", h.UploadMedia)
		r.Post("/media/{id}/edit", h.UpdateMedia)
		r.Post("/media/{id}/delete", h.DeleteMedia)

		r.Get("/messages", h.ListMessages)
		r.Get("/messages/{id}", h.ViewMessage)
		r.Post("/messages/{id}/delete", h.DeleteMessage)

		r.Get("/settings", h.SettingsPage)
		r.Post("/settings", h.UpdateSettings)
		r.Post("/settings/social/new", h.CreateSocialLink)
		r.Post("/settings/social/{id}/edit", h.UpdateSocialLink)
		r.Post("/settings/social/{id}/delete", h.DeleteSocialLink)
		r.Post("/settings/categories/new", h.CreateCategory)
		r.Post("/settings/categories/{id}/delete", h.DeleteCategory)

		// Registered for all methods so the handlers can answer
		// non-POST requests with the JSON failure envelope.
		r.HandleFunc("/actions/toggle-featured", h.ToggleFeatured)
		r.HandleFunc("/actions/toggle-status", h.ToggleStatus)
		r.HandleFunc("/actions/mark-message-read", h.MarkMessageRead)
		r.HandleFunc("/actions/bulk-action", h.BulkAction)
	})

	// REST API. Reads are public; writes require a staff session.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(20, 40))

		resources := map[string]apiCRUD{
			"/projects": {
				List: apiHandler.ListProjects, Get: apiHandler.GetProject,
				Create: apiHandler.CreateProject, Update: apiHandler.UpdateProject, Delete: apiHandler.DeleteProject,
			},
			"/posts": {
				List: apiHandler.ListPosts, Get: apiHandler.GetPost,
				Create: apiHandler.CreatePost, Update: apiHandler.UpdatePost, Delete: apiHandler.DeletePost,
			},
			"/news": {
				List: apiHandler.ListNews, Get: apiHandler.GetNews,
				Create: apiHandler.CreateNews, Update: apiHandler.UpdateNews, Delete: apiHandler.DeleteNews,
			},
			"/experience": {
				List: apiHandler.ListExperience, Get: apiHandler.GetExperience,
				Create: apiHandler.CreateExperience, Update: apiHandler.UpdateExperience, Delete: apiHandler.DeleteExperience,
			},
			"/skills": {
				List: apiHandler.ListSkills, Get: apiHandler.GetSkill,
				Create: apiHandler.CreateSkill, Update: apiHandler.UpdateSkill, Delete: apiHandler.DeleteSkill,
			},
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalLoadUser(sessionManager, db))
			for base, res := range resources {
				r.Get(base, res.List)
				r.Get(base+"/{id}", res.Get)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))
			r.Use(middleware.RequireStaff)
			for base, res := range resources {
				r.Post(base, res.Create)
				r.Put(base+"/{id}", res.Update)
				r.Delete(base+"/{id}", res.Delete)
			}
		})
	})
	slog.Info("REST API mounted at /api")

	staticFS, err := web.StaticFS()
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h.NotFound(w, req)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

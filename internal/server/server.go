// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mfgworks/dynaform/internal/handler"
	"github.com/mfgworks/dynaform/internal/live"
	"github.com/mfgworks/dynaform/internal/master"
	"github.com/mfgworks/dynaform/internal/store"
	"github.com/mfgworks/dynaform/internal/upload"
)

// Session lifetimes for live form editing.
const (
	sessionMaxAge      = 12 * time.Hour
	sessionIdleTimeout = 30 * time.Minute
)

// Config holds server configuration.
type Config struct {
	Addr        string
	Store       store.Store
	UploadDir   string
	CorsOrigins []string
	Log         zerolog.Logger
}

// Router builds the full route table.
func Router(cfg Config) (http.Handler, error) {
	catalog := store.NewCatalog(cfg.Store)
	resolver := master.NewResolver(catalog, cfg.Log)
	uploader, err := upload.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	sh := handler.NewSchemaHandler(catalog)
	rh := handler.NewRecordHandler(catalog)
	mh := handler.NewMasterHandler(resolver)
	bh := handler.NewBOMHandler(catalog)
	ih := handler.NewImportHandler(catalog)
	uh := handler.NewUploadHandler(uploader)

	sessions := live.NewManager(sessionMaxAge, sessionIdleTimeout)
	lh := live.NewHandler(sessions, catalog, resolver, cfg.CorsOrigins, cfg.Log)

	r := chi.NewRouter()
	r.Use(handler.Recovery(cfg.Log))
	r.Use(handler.Logging(cfg.Log))
	r.Use(handler.CORS(cfg.CorsOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/schemas", func(r chi.Router) {
			r.Post("/", sh.Create)
			r.Get("/", sh.List)
			r.Get("/{id}", sh.Get)
			r.Put("/{id}", sh.Update)
			r.Delete("/{id}", sh.Delete)

			r.Get("/{id}/records", rh.List)
			r.Post("/{id}/records", rh.Create)
			r.Get("/{id}/records/{recordID}", rh.Get)
			r.Put("/{id}/records/{recordID}", rh.Update)
			r.Delete("/{id}/records/{recordID}", rh.Delete)

			r.Post("/{id}/import", ih.Import)
		})

		r.Post("/predefined-masters/init", sh.InitPredefined)
		r.Get("/predefined-masters/status", sh.PredefinedStatus)

		r.Get("/masters/{source}/options", mh.Options)

		r.Post("/uploads", uh.Upload)

		r.Get("/bom-form-config", bh.FormConfig)
		r.Put("/bom-form-config", bh.SaveFormConfig)

		r.Route("/boms", func(r chi.Router) {
			r.Post("/", bh.Create)
			r.Get("/", bh.List)
			r.Get("/{id}", bh.Get)
			r.Put("/{id}", bh.Update)
			r.Delete("/{id}", bh.Delete)

			r.Post("/{id}/tables", bh.AddTable)
			r.Get("/{id}/tables/{tableID}/combos", bh.Combos)
			r.Post("/{id}/tables/{tableID}/copy", bh.CopyTable)
			r.Delete("/{id}/tables/{tableID}", bh.DeleteTable)
			r.Post("/{id}/tables/{tableID}/rows", bh.AddRow)
			r.Post("/{id}/tables/{tableID}/rows/{index}/copy", bh.CopyRow)
			r.Patch("/{id}/tables/{tableID}/rows/{index}", bh.SetCell)
			r.Delete("/{id}/tables/{tableID}/rows/{index}", bh.DeleteRow)
		})

		r.Get("/forms/session", lh.ServeHTTP)
	})

	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", fs.ServeHTTP)

	return r, nil
}

// Run starts the HTTP server with all routes registered and shuts it
// down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	router, err := Router(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Log.Info().Str("addr", cfg.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		return err
	}
}

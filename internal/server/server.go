package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/license"
)

// LicenseServer exposes a license.Store over the same REST layout the
// application's HTTPStore consumes: GET/DELETE {path}/{key}.json.
type LicenseServer struct {
	Store license.Store
	Addr  string
	// Path is the key collection, without leading or trailing slash.
	Path string
}

// NewLicenseServer creates a new instance of the server.
func NewLicenseServer(store license.Store, addr, path string) *LicenseServer {
	return &LicenseServer{
		Store: store,
		Addr:  addr,
		Path:  strings.Trim(path, "/"),
	}
}

// Handler returns the HTTP handler of the server. Browser clients on any
// origin may call it, so CORS preflights are answered for GET and DELETE.
func (s *LicenseServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleLicenseRequest)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodDelete},
		AllowedOrigins: []string{"*"},
	})
	return c.Handler(mux)
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *LicenseServer) Start(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New(config.ErrAddrRequired)
	}

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// keyFromPath extracts the key from /{path}/{key}.json.
func (s *LicenseServer) keyFromPath(p string) (string, bool) {
	prefix := "/"
	if s.Path != "" {
		prefix += s.Path + "/"
	}
	if !strings.HasPrefix(p, prefix) || !strings.HasSuffix(p, config.LicenseKeySuffix) {
		return "", false
	}
	key := strings.TrimSuffix(strings.TrimPrefix(p, prefix), config.LicenseKeySuffix)
	if key == "" || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

// handleLicenseRequest answers lookups with the record (or JSON null) and
// deletes with JSON null.
func (s *LicenseServer) handleLicenseRequest(w http.ResponseWriter, r *http.Request) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Route
	key, ok := s.keyFromPath(r.URL.Path)
	if !ok {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	if err := license.ValidateKey(key); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompServer),
		slog.String(config.LogKeyMethod, r.Method),
	)

	// 3. Execute
	var payload any
	switch r.Method {
	case http.MethodGet:
		rec, found, err := s.Store.Lookup(r.Context(), key)
		if err != nil {
			log.Error(config.ErrLicenseLookup, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		if found {
			payload = rec
		}
	case http.MethodDelete:
		if err := s.Store.Delete(r.Context(), key); err != nil {
			log.Error(config.ErrLicenseDelete, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		log.Info(config.MsgLicenseConsumed)
	}

	// 4. Serve Content
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlOff)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(config.ErrWriteResp, config.LogKeyError, err)
	}
}

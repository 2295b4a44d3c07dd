package watch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bookbuilder/internal/logfields"
	"git.home.luguber.info/inful/bookbuilder/internal/metrics"
)

// NewStatusRouter serves /healthz, /status and /metrics.
func NewStatusRouter(status *Status, reg *prom.Registry) chi.Router {
	errs := ferrors.NewHTTPErrorAdapter(slog.Default())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		snap := status.Snapshot()
		switch {
		case snap.LastError != nil:
			errs.WriteErrorResponse(w, req, snap.LastError)
			return
		case snap.Builds == 0:
			errs.WriteErrorResponse(w, req, ferrors.RuntimeError("no build has completed yet").
				WithRetry(ferrors.RetryBackoff).Build())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(snap)
	})

	r.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(reg))
	return r
}

// StatusServer is the optional HTTP status endpoint of watch mode.
type StatusServer struct {
	server   *http.Server
	listener net.Listener
}

// StartStatusServer listens on addr and serves handler in the background.
func StartStatusServer(addr string, handler http.Handler) (*StatusServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to listen for status server").
			WithContext("addr", addr).Build()
	}
	s := &StatusServer{
		listener: ln,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Status server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Status server listening", logfields.Addr(ln.Addr().String()))
	return s, nil
}

// Addr returns the bound address.
func (s *StatusServer) Addr() string { return s.listener.Addr().String() }

// Stop gracefully shuts the server down.
func (s *StatusServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

package pooltop

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapio"
)

// Server exposes the latest snapshot, its chart and the poller metrics over
// HTTP
type Server struct {
	store   *Store
	metrics *Metrics
	theme   Theme
	log     *zap.SugaredLogger
}

func NewServer(store *Store, metrics *Metrics, theme Theme, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{store: store, metrics: metrics, theme: theme, log: log}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/chart.png", s.handleChartPNG).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

// Handler is the router wrapped with access logging
func (s *Server) Handler() http.Handler {
	w := &zapio.Writer{Log: s.log.Desugar(), Level: zap.DebugLevel}
	return handlers.LoggingHandler(w, s.Router())
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		http.Error(w, ErrNoSnapshot.Error(), http.StatusServiceUnavailable)
		return
	}
	payload, err := fastJSONMarshal(snap)
	if err != nil {
		s.log.Errorw("encode snapshot", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-JSON-Updated-At", snap.UpdatedAt.UTC().Format(time.RFC3339))
	if _, err := w.Write(payload); err != nil {
		s.log.Errorw("write snapshot response", "error", err)
	}
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		http.Error(w, ErrNoSnapshot.Error(), http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	if err := RenderChartPNG(&buf, snap.Chart, s.theme); err != nil {
		if errors.Is(err, ErrNoSamples) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.log.Errorw("render chart", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Errorw("write chart response", "error", err)
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/adwski/chatsession/client/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	defaultShutdownDeadline = 10 * time.Second
	defaultReadTimeout      = 5 * time.Second
)

var (
	ErrUnexpected = errors.New("unexpected server error")
)

type SessionInspector interface {
	State() model.State
	Session() (model.Session, bool)
	Roster() []string
}

type SessionResponse struct {
	State   model.State    `json:"state"`
	Session *model.Session `json:"session,omitempty"`
}

type RosterResponse struct {
	Peers []string `json:"peers"`
}

type GenericResponse struct {
	Error string `json:"error,omitempty"`
}

// Server exposes session internals and metrics for local debugging.
type Server struct {
	logger zerolog.Logger
	insp   SessionInspector
	*http.Server
}

type Config struct {
	Logger     *zerolog.Logger
	Inspector  SessionInspector
	Gatherer   prometheus.Gatherer
	ListenAddr string
}

func NewServer(cfg Config) *Server {
	srv := &Server{
		logger: cfg.Logger.With().Str("component", "debug-server").Logger(),
		insp:   cfg.Inspector,
	}

	r := http.NewServeMux()
	r.HandleFunc("GET /api/session", srv.session)
	r.HandleFunc("GET /api/roster", srv.roster)
	r.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	srv.Server = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: defaultReadTimeout,
	}
	return srv
}

func (srv *Server) session(w http.ResponseWriter, _ *http.Request) {
	resp := SessionResponse{State: srv.insp.State()}
	if sess, ok := srv.insp.Session(); ok {
		resp.Session = &sess
	}
	srv.writeJSON(w, http.StatusOK, &resp)
}

func (srv *Server) roster(w http.ResponseWriter, _ *http.Request) {
	srv.writeJSON(w, http.StatusOK, &RosterResponse{Peers: srv.insp.Roster()})
}

func (srv *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		srv.logger.Error().Err(err).Msg("failed to marshal response")
		b, _ = json.Marshal(&GenericResponse{Error: http.StatusText(http.StatusInternalServerError)})
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(code)
	if _, err = w.Write(b); err != nil {
		srv.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (srv *Server) Run(ctx context.Context, wg *sync.WaitGroup, errc chan<- error) {
	defer func() {
		srv.logger.Debug().Msg("server stopped")
		wg.Done()
	}()

	hErr := make(chan error)
	go func() {
		hErr <- srv.ListenAndServe()
	}()

	srv.logger.Info().Str("addr", srv.Addr).Msg("server started")

	select {
	case err := <-hErr:
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- errors.Join(ErrUnexpected, err)
		}
	case <-ctx.Done():
		shCtx, shCancel := context.WithTimeout(context.Background(), defaultShutdownDeadline)
		defer shCancel()
		if err := srv.Shutdown(shCtx); err != nil {
			srv.logger.Error().Err(err).Msg("server shutdown failed")
		}
		<-hErr
	}
}

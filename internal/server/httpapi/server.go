// Package httpapi exposes the user, token and check registries over a JSON
// HTTP API. Errors leave the process as {"Error": "..."} bodies; sentinel
// errors from the services layer decide the status code.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/upcheck/internal/logging"
	"github.com/dmitrijs2005/upcheck/internal/server/services"
)

// Options carries the listener configuration. The HTTPS listener is started
// only when both TLS file paths are set.
type Options struct {
	HTTPAddr     string
	HTTPSAddr    string
	TLSCertFile  string
	TLSKeyFile   string
	RateLimitRPS float64
}

type Server struct {
	router *mux.Router
	logger logging.Logger
	users  *services.UserService
	tokens *services.TokenService
	checks *services.CheckService
	opts   Options
}

func New(logger logging.Logger, users *services.UserService, tokens *services.TokenService, checks *services.CheckService, opts Options) *Server {
	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
		users:  users,
		tokens: tokens,
		checks: checks,
		opts:   opts,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogging)
	if s.opts.RateLimitRPS > 0 {
		s.router.Use(s.rateLimit(s.opts.RateLimitRPS))
	}

	s.router.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)

	s.router.HandleFunc("/api/users", s.handleUserCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/api/users", s.handleUserGet).Methods(http.MethodGet)
	s.router.HandleFunc("/api/users", s.handleUserUpdate).Methods(http.MethodPut)
	s.router.HandleFunc("/api/users", s.handleUserDelete).Methods(http.MethodDelete)

	s.router.HandleFunc("/api/tokens", s.handleTokenIssue).Methods(http.MethodPost)
	s.router.HandleFunc("/api/tokens", s.handleTokenGet).Methods(http.MethodGet)
	s.router.HandleFunc("/api/tokens", s.handleTokenExtend).Methods(http.MethodPut)
	s.router.HandleFunc("/api/tokens", s.handleTokenRevoke).Methods(http.MethodDelete)

	s.router.HandleFunc("/api/checks", s.handleCheckCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/api/checks", s.handleCheckGet).Methods(http.MethodGet)
	s.router.HandleFunc("/api/checks", s.handleCheckUpdate).Methods(http.MethodPut)
	s.router.HandleFunc("/api/checks", s.handleCheckDelete).Methods(http.MethodDelete)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves plain HTTP on HTTPAddr and, when TLS files are configured,
// HTTPS on HTTPSAddr. It blocks until ctx is cancelled or a listener fails,
// then drains both listeners.
func (s *Server) Run(ctx context.Context) error {
	servers := []*http.Server{{
		Addr:              s.opts.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}}
	withTLS := s.opts.TLSCertFile != "" && s.opts.TLSKeyFile != ""
	if withTLS {
		servers = append(servers, &http.Server{
			Addr:              s.opts.HTTPSAddr,
			Handler:           s.router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	var wg sync.WaitGroup
	for i, srv := range servers {
		wg.Add(1)
		go func(srv *http.Server, tls bool) {
			defer wg.Done()
			s.logger.Info(ctx, "listener starting", "addr", srv.Addr, "tls", tls)
			var err error
			if tls {
				err = srv.ListenAndServeTLS(s.opts.TLSCertFile, s.opts.TLSKeyFile)
			} else {
				err = srv.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv, withTLS && i == 1)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		s.logger.Error(ctx, "listener failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "listener shutdown", "addr", srv.Addr, "error", err)
		}
	}
	wg.Wait()
	return runErr
}

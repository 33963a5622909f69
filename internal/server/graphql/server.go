// Package graphql serves the chat account API over HTTP.
package graphql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/config"
	"github.com/graph-gophers/graphql-go/relay"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte
	metrics   *Metrics
	limiter   *RateLimiter
	handler   http.Handler
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService) (*Server, error) {
	s := &Server{
		address:   cfg.EndpointAddrHTTP,
		logger:    l.With("module", "graphql_server"),
		jwtSecret: []byte(cfg.SecretKey),
		metrics:   NewMetrics(),
		limiter:   NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	schema, err := NewSchema(NewResolver(us, s.metrics, s.logger))
	if err != nil {
		return nil, err
	}

	api := s.metrics.Middleware(s.limiter.Middleware(s.authenticate(&relay.Handler{Schema: schema})))

	mux := http.NewServeMux()
	mux.Handle("POST /graphql", api)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.handler = mux

	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.address, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping GraphQL server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting GraphQL server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

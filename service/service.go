package service

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	impl            *impl
	logger          *zap.Logger
	registry        *prometheus.Registry
	httpPort        string
	shutdownTimeout time.Duration
	maxBodySize     int64
	ctxDone         context.Context
	ctxDoneCancel   func()
}

func New(cfg *viper.Viper, logger *zap.Logger) (*Service, error) {

	c, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svcImpl, err := newImpl(c, logger, metric.New(registry))
	if err != nil {
		return nil, err
	}

	ctxDone, ctxDoneCancel := context.WithCancel(context.Background())

	return &Service{
		impl:            svcImpl,
		logger:          logger,
		registry:        registry,
		httpPort:        c.HTTPPort,
		shutdownTimeout: c.ShutdownTimeout,
		maxBodySize:     c.MaxBodySize,
		ctxDone:         ctxDone,
		ctxDoneCancel:   ctxDoneCancel,
	}, nil
}

func (s *Service) Close() error {
	s.ctxDoneCancel()
	return nil
}

// Run serves the HTTP API until Close. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Service) Run() error {

	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", s.httpPort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(s.ctxDone)

	g.Go(func() error {
		s.logger.Info("listen", zap.String("address", srv.Addr))

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error("http router closed", zap.Error(err))
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to close http service", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}

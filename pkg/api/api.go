// Package api 封装 HTTP 服务的监听与优雅关闭.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yeisme/folio/pkg/configs"
	nlog "github.com/yeisme/folio/pkg/log"
)

// Server HTTP 服务.
type Server struct {
	srv      *http.Server
	shutdown time.Duration
	logger   *zerolog.Logger
}

// NewServer 按服务器配置创建 HTTP 服务.
func NewServer(cfg configs.ServerConfig, h http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		shutdown: cfg.ShutdownTimeout,
		logger:   nlog.With("api"),
	}
}

// Addr 监听地址.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run 开始监听，ctx 结束后优雅关闭. 正常关闭返回 nil.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("http server listening")

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	return nil
}

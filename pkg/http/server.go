package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/router"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/router/controllers"
	http_server "github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	optimizeService controllers.OptimizeService,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "600s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g := errgroup.Group{}

	g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, optimizeService,
		)
	})

	return s, nil
}

func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

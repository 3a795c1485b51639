package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/router/controllers"
	router_helper "github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/router/routerhelper"
	http_server "github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	optimizeService controllers.OptimizeService,
) error {
	log.Info("Run httprouter API")

	router := httprouter.New()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	optimizerRoutes := controllers.New(optimizeService, log)
	optimizerRoutes.Routes(group)

	// websocket progress stream bypasses the json enforcement middleware
	router.GET("/ws/optimize", optimizerRoutes.OptimizeWS)

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(log), Limit)
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(log))
	}
	mainMwChain := alice.New(mwChain...).Then(router)

	srv := http_server.New(ctx, mainMwChain, config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		return err

	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

package main

import (
	"context"
	"flag"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/calculator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/usecases"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/logger"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
	"go.uber.org/zap"
)

var (
	treeFile     = flag.String("tree", "./data/passive_tree.json", "passive tree json file")
	useRateLimit = flag.Bool("rate_limit", false, "enable per-ip rate limiting")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("config file not loaded, using defaults", zap.Error(err))
	}

	graph, err := datastructure.ReadTreeGraph(*treeFile)
	if err != nil {
		panic(err)
	}
	logger.Info("passive tree loaded", zap.Int("nodes", graph.NumberOfNodes()))

	oracleFactory := oracleFactoryAdapter{factory: calculator.NewFactory(graph)}
	optimizeService := usecases.NewOptimizeUsecase(logger, graph, oracleFactory)

	api := http.NewServer(logger)

	ctx, cleanup := newContext()

	_, err = api.Use(ctx, logger, *useRateLimit, optimizeService)
	if err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Passive Tree Optimizer Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func newContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}
	return ctx, cb
}

// oracleFactoryAdapter narrows the calculator factory to the optimizer's
// oracle interface.
type oracleFactoryAdapter struct {
	factory *calculator.Factory
}

func (a oracleFactoryAdapter) NewOracle() optimizer.CalculationOracle {
	return a.factory.NewOracle()
}

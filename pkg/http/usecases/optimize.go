package usecases

import (
	"context"
	"time"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/budget"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/evaluator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
	"go.uber.org/zap"
)

// OptimizeParams is the transport-agnostic request one run needs. zero
// numeric fields fall back to server defaults.
type OptimizeParams struct {
	Level             int
	ClassStart        datastructure.Index
	Allocated         []datastructure.Index
	Objective         string
	MaxIterations     int
	MaxTimeSecond     float64
	Patience          int
	MaxCandidates     int
	UnallocatedPoints int
	RespecPoints      int
	RespecUnlimited   bool
	DerivePoints      bool
	ProgressEvery     int
}

// OptimizeUsecase runs optimizations against the process-wide tree. the
// tree is read-only, every run owns its configuration and budget, so one
// usecase instance serves concurrent requests.
type OptimizeUsecase struct {
	log           *zap.Logger
	graph         *datastructure.TreeGraph
	oracleFactory optimizer.OracleFactory
}

func NewOptimizeUsecase(log *zap.Logger, graph *datastructure.TreeGraph,
	oracleFactory optimizer.OracleFactory) *OptimizeUsecase {
	return &OptimizeUsecase{
		log:           log,
		graph:         graph,
		oracleFactory: oracleFactory,
	}
}

func (u *OptimizeUsecase) TreeSize() int {
	return u.graph.NumberOfNodes()
}

func (u *OptimizeUsecase) Optimize(ctx context.Context, params OptimizeParams,
	progress optimizer.ProgressFunc) (*optimizer.Result, error) {

	initial, err := datastructure.NewConfiguration(params.Level, params.ClassStart, params.Allocated)
	if err != nil {
		return nil, err
	}

	opts, err := u.buildOptions(params, progress)
	if err != nil {
		return nil, err
	}

	o, err := optimizer.New(u.graph, u.oracleFactory, opts, u.log)
	if err != nil {
		return nil, err
	}
	return o.Optimize(ctx, initial)
}

func (u *OptimizeUsecase) buildOptions(params OptimizeParams, progress optimizer.ProgressFunc) (optimizer.Options, error) {
	opts := optimizer.DefaultOptions()

	if params.Objective != "" {
		objective, err := evaluator.ParseObjective(params.Objective)
		if err != nil {
			return opts, err
		}
		opts.Objective = objective
	}
	if params.MaxIterations > 0 {
		opts.MaxIterations = params.MaxIterations
	}
	if params.MaxTimeSecond > 0 {
		opts.MaxTime = time.Duration(params.MaxTimeSecond * float64(time.Second))
	}
	if params.Patience > 0 {
		opts.ConvergencePatience = params.Patience
	}
	if params.MaxCandidates > 0 {
		opts.MaxCandidates = params.MaxCandidates
	}
	if !params.DerivePoints {
		opts.UnallocatedPoints = params.UnallocatedPoints
	}
	if params.RespecUnlimited {
		opts.RespecPoints = budget.UnlimitedRespec
	} else {
		opts.RespecPoints = params.RespecPoints
	}
	if params.ProgressEvery > 0 {
		opts.ProgressEvery = params.ProgressEvery
	} else {
		opts.ProgressEvery = pkg.DEFAULT_PROGRESS_EVERY
	}
	opts.Progress = progress

	return opts, nil
}

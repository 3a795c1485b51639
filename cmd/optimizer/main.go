package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/budget"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/calculator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/evaluator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/logger"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
	"go.uber.org/zap"
)

var (
	treeFile      = flag.String("tree", "./data/passive_tree.json", "passive tree json file")
	buildFile     = flag.String("build", "./data/build.json", "initial build json file")
	objective     = flag.String("objective", "balanced", "optimization objective: dps | ehp | balanced")
	maxIterations = flag.Int("max_iterations", 500, "iteration cap")
	maxTimeSecond = flag.Float64("max_time", 300, "wall clock cap in seconds")
	patience      = flag.Int("patience", 3, "consecutive non-improving iterations before stopping")
	maxCandidates = flag.Int("max_candidates", 100, "candidate window per iteration")
	respecPoints  = flag.Int("respec", 0, "respec points available, -1 for unlimited")
	workers       = flag.Int("workers", 4, "parallel candidate evaluations")
)

type outputDiff struct {
	ConvergenceReason string                    `json:"convergence_reason"`
	Iterations        int                       `json:"iterations"`
	ElapsedSecond     float64                   `json:"elapsed_second"`
	Improvement       float64                   `json:"improvement"`
	NodesAdded        []datastructure.Index     `json:"nodes_added"`
	NodesRemoved      []datastructure.Index     `json:"nodes_removed"`
	BaselineStats     *datastructure.Statistics `json:"baseline_stats"`
	FinalStats        *datastructure.Statistics `json:"final_stats"`
}

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	graph, err := datastructure.ReadTreeGraph(*treeFile)
	if err != nil {
		log.Fatal("reading passive tree", zap.Error(err))
	}
	log.Info("passive tree loaded", zap.Int("nodes", graph.NumberOfNodes()))

	initial, err := datastructure.ReadBuild(*buildFile)
	if err != nil {
		log.Fatal("reading build", zap.Error(err))
	}

	obj, err := evaluator.ParseObjective(*objective)
	if err != nil {
		log.Fatal("parsing objective", zap.Error(err))
	}

	opts := optimizer.DefaultOptions()
	opts.Objective = obj
	opts.MaxIterations = *maxIterations
	opts.MaxTime = time.Duration(*maxTimeSecond * float64(time.Second))
	opts.ConvergencePatience = *patience
	opts.MaxCandidates = *maxCandidates
	opts.EvaluationWorkers = *workers
	if *respecPoints < 0 {
		opts.RespecPoints = budget.UnlimitedRespec
	} else {
		opts.RespecPoints = *respecPoints
	}
	opts.Progress = func(iteration int, bestScore float64, elapsedSecond float64) {
		log.Info("progress",
			zap.Int("iteration", iteration),
			zap.Float64("best_score", bestScore),
			zap.Float64("elapsed_second", elapsedSecond))
	}

	o, err := optimizer.New(graph, optimizer.NewSingleOracleFactory(calculator.NewCalculator(graph)), opts, log)
	if err != nil {
		log.Fatal("building optimizer", zap.Error(err))
	}

	res, err := o.Optimize(context.Background(), initial)
	if err != nil {
		log.Fatal("optimization aborted", zap.Error(err))
	}

	out := outputDiff{
		ConvergenceReason: res.GetConvergenceReason().String(),
		Iterations:        res.IterationsRun(),
		ElapsedSecond:     res.ElapsedTime().Seconds(),
		Improvement:       res.Improvement(),
		NodesAdded:        res.NodesAdded(),
		NodesRemoved:      res.NodesRemoved(),
		BaselineStats:     res.GetBaselineStatistics(),
		FinalStats:        res.GetFinalStatistics(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal("encoding result", zap.Error(err))
	}
}

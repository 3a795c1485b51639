// Package optimizer drives the steepest-ascent search over passive tree
// allocations: evaluate the input build once as the baseline, score every
// valid one-step mutation per iteration, accept the strict best, and stop
// on the first matching convergence condition.
package optimizer

import (
	"context"
	"time"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/budget"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/concurrent"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/evaluator"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/neighbor"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
	"go.uber.org/zap"
)

// DerivePointsFromLevel makes the run compute its unallocated budget from
// the character level minus the points already spent.
const DerivePointsFromLevel = -2

type Options struct {
	Objective           evaluator.Objective
	MaxIterations       int
	MaxTime             time.Duration
	ConvergencePatience int
	MaxCandidates       int

	// UnallocatedPoints still spendable at run start. DerivePointsFromLevel
	// computes it from the character level.
	UnallocatedPoints int
	// RespecPoints removals permitted during the run.
	// budget.UnlimitedRespec lifts the cap.
	RespecPoints int

	EvaluationWorkers int
	ProgressEvery     int
	Progress          ProgressFunc
	AddsFirst         bool
}

func DefaultOptions() Options {
	return Options{
		Objective:           evaluator.BALANCED,
		MaxIterations:       pkg.DEFAULT_MAX_ITERATIONS,
		MaxTime:             time.Duration(pkg.DEFAULT_MAX_TIME_SECOND) * time.Second,
		ConvergencePatience: pkg.DEFAULT_CONVERGENCE_PATIENCE,
		MaxCandidates:       pkg.DEFAULT_MAX_CANDIDATES,
		UnallocatedPoints:   DerivePointsFromLevel,
		RespecPoints:        0,
		EvaluationWorkers:   pkg.DEFAULT_EVALUATION_WORKERS,
		ProgressEvery:       pkg.DEFAULT_PROGRESS_EVERY,
	}
}

func (o Options) Validate() error {
	if o.MaxIterations <= 0 {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "max iterations %d must be positive", o.MaxIterations)
	}
	if o.MaxTime <= 0 {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "max time %s must be positive", o.MaxTime)
	}
	if o.ConvergencePatience <= 0 {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "convergence patience %d must be positive", o.ConvergencePatience)
	}
	if o.UnallocatedPoints < 0 && o.UnallocatedPoints != DerivePointsFromLevel {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "negative unallocated budget %d", o.UnallocatedPoints)
	}
	if o.RespecPoints < 0 && o.RespecPoints != budget.UnlimitedRespec {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "negative respec budget %d", o.RespecPoints)
	}
	if o.EvaluationWorkers <= 0 {
		return util.WrapErrorf(nil, util.ErrInvalidConfiguration, "evaluation workers %d must be positive", o.EvaluationWorkers)
	}
	return nil
}

type Optimizer struct {
	graph         *datastructure.TreeGraph
	oracleFactory OracleFactory
	eval          *evaluator.Evaluator
	generator     *neighbor.Generator
	log           *zap.Logger
	opts          Options
}

func New(graph *datastructure.TreeGraph, oracleFactory OracleFactory, opts Options, log *zap.Logger) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var genOpts []neighbor.Option
	if opts.AddsFirst {
		genOpts = append(genOpts, neighbor.WithAddsFirst())
	}

	return &Optimizer{
		graph:         graph,
		oracleFactory: oracleFactory,
		eval:          evaluator.NewEvaluator(opts.Objective),
		generator:     neighbor.NewGenerator(graph, opts.MaxCandidates, genOpts...),
		log:           log,
		opts:          opts,
	}, nil
}

type candidateScore struct {
	stats *datastructure.Statistics
	score float64
	ok    bool
}

// Optimize runs one search over the shared tree starting from initial. the
// context is consulted between iterations only, an in-flight oracle batch
// is never interrupted; on expiry the best incumbent found so far is
// returned with reason MaxTime.
func (o *Optimizer) Optimize(ctx context.Context, initial *datastructure.Configuration) (*Result, error) {
	if err := initial.Validate(o.graph); err != nil {
		return nil, err
	}

	budgetState, err := o.initialBudget(initial)
	if err != nil {
		return nil, err
	}

	workers := o.opts.EvaluationWorkers
	oracles := make([]CalculationOracle, workers)
	for i := range oracles {
		oracles[i] = o.oracleFactory.NewOracle()
	}

	baselineStats, err := oracles[0].Evaluate(initial)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrCalculationFailure, "baseline evaluation failed")
	}
	baselineScore := o.eval.Score(baselineStats, baselineStats)

	o.log.Info("starting optimization",
		zap.String("objective", o.eval.GetObjective().String()),
		zap.Int("allocated", initial.NumberOfAllocated()),
		zap.Int("unallocated_points", budgetState.UnallocatedAvailable()),
		zap.Int("respec_points", budgetState.RespecAvailable()),
		zap.Float64("baseline_score", baselineScore))

	detector := NewConvergenceDetector(o.opts.ConvergencePatience, o.opts.MaxIterations, o.opts.MaxTime)

	incumbent := initial
	incumbentStats := baselineStats
	incumbentScore := baselineScore
	plateau := 0
	iterations := 0
	reason := NOT_CONVERGED

	for {
		select {
		case <-ctx.Done():
			reason = MAX_TIME
		default:
		}
		if reason != NOT_CONVERGED {
			break
		}
		iterations++

		candidates := o.generator.Generate(incumbent, budgetState)

		best := -1
		bestScore := o.eval.WorstScore()
		var scored []candidateScore
		if len(candidates) > 0 {
			scored = o.evaluateBatch(oracles, incumbent, baselineStats, candidates)
			for i := range scored {
				if scored[i].ok && scored[i].score > bestScore {
					bestScore = scored[i].score
					best = i
				}
			}
		}

		if best >= 0 && bestScore > incumbentScore {
			m := candidates[best]
			if err := budgetState.Validate(m); err != nil {
				o.log.Error("accepted mutation failed budget re-check",
					zap.String("mutation", m.String()), zap.Error(err))
				return nil, err
			}
			incumbent = incumbent.Apply(m)
			incumbentStats = scored[best].stats
			incumbentScore = bestScore
			budgetState = budgetState.Apply(m)
			plateau = 0

			o.log.Debug("accepted mutation",
				zap.Int("iteration", iterations),
				zap.String("mutation", m.String()),
				zap.Float64("score", bestScore))
		} else {
			plateau++
		}

		if o.opts.Progress != nil && o.opts.ProgressEvery > 0 && iterations%o.opts.ProgressEvery == 0 {
			o.opts.Progress(iterations, incumbentScore, detector.Elapsed().Seconds())
		}

		var stop bool
		reason, stop = detector.Check(iterations, len(candidates) == 0, plateau)
		if stop {
			break
		}
	}

	added, removed := incumbent.Diff(initial)
	res := &Result{
		finalConfig:   incumbent,
		baselineStats: baselineStats,
		finalStats:    incumbentStats,
		baselineScore: baselineScore,
		finalScore:    incumbentScore,
		nodesAdded:    added,
		nodesRemoved:  removed,
		iterations:    iterations,
		elapsed:       detector.Elapsed(),
		reason:        reason,
	}

	o.log.Info("optimization converged",
		zap.String("reason", reason.String()),
		zap.Int("iterations", iterations),
		zap.Duration("elapsed", res.ElapsedTime()),
		zap.Float64("improvement", res.Improvement()),
		zap.Int("nodes_added", len(added)),
		zap.Int("nodes_removed", len(removed)))

	return res, nil
}

// evaluateBatch scores every candidate of one iteration, in parallel when
// more than one worker is configured. each worker owns its oracle. results
// come back in candidate order so tie-breaking stays deterministic.
func (o *Optimizer) evaluateBatch(oracles []CalculationOracle, incumbent *datastructure.Configuration,
	baseline *datastructure.Statistics, candidates []*datastructure.Mutation) []candidateScore {

	return concurrent.MapOrderedWithWorkerID(len(oracles), candidates,
		func(workerID int, m *datastructure.Mutation) candidateScore {
			next := incumbent.Apply(m)
			stats, err := oracles[workerID-1].Evaluate(next)
			if err != nil {
				// recoverable: the candidate drops out of this iteration
				o.log.Warn("oracle failed for candidate",
					zap.String("mutation", m.String()), zap.Error(err))
				return candidateScore{score: o.eval.WorstScore()}
			}
			return candidateScore{
				stats: stats,
				score: o.eval.Score(baseline, stats),
				ok:    true,
			}
		})
}

func (o *Optimizer) initialBudget(initial *datastructure.Configuration) (budget.State, error) {
	points := o.opts.UnallocatedPoints
	if points == DerivePointsFromLevel {
		// class start is free, every other allocated node consumed a point
		spent := initial.NumberOfAllocated() - 1
		points = budget.MaxUnallocatedPoints(initial.GetLevel()) - spent
		if points < 0 {
			return budget.State{}, util.WrapErrorf(nil, util.ErrInvalidConfiguration,
				"build spends %d points but level %d grants only %d",
				spent, initial.GetLevel(), budget.MaxUnallocatedPoints(initial.GetLevel()))
		}
	}
	return budget.NewState(points, o.opts.RespecPoints)
}

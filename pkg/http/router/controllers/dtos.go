package controllers

import (
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/datastructure"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/usecases"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
)

type optimizeRequest struct {
	Level             int      `json:"level" validate:"required,min=1,max=100"`
	ClassStart        uint32   `json:"class_start" validate:"required"`
	Allocated         []uint32 `json:"allocated"`
	Objective         string   `json:"objective" validate:"omitempty,oneof=dps ehp balanced"`
	MaxIterations     int      `json:"max_iterations" validate:"omitempty,min=1,max=10000"`
	MaxTimeSecond     float64  `json:"max_time_second" validate:"omitempty,gt=0,max=600"`
	Patience          int      `json:"patience" validate:"omitempty,min=1"`
	MaxCandidates     int      `json:"max_candidates" validate:"omitempty,min=1,max=1000"`
	UnallocatedPoints *int     `json:"unallocated_points" validate:"omitempty"`
	RespecPoints      int      `json:"respec_points" validate:"min=0"`
	RespecUnlimited   bool     `json:"respec_unlimited"`
}

func (r optimizeRequest) toParams() usecases.OptimizeParams {
	allocated := make([]datastructure.Index, 0, len(r.Allocated))
	for _, id := range r.Allocated {
		allocated = append(allocated, datastructure.Index(id))
	}

	params := usecases.OptimizeParams{
		Level:           r.Level,
		ClassStart:      datastructure.Index(r.ClassStart),
		Allocated:       allocated,
		Objective:       r.Objective,
		MaxIterations:   r.MaxIterations,
		MaxTimeSecond:   r.MaxTimeSecond,
		Patience:        r.Patience,
		MaxCandidates:   r.MaxCandidates,
		RespecPoints:    r.RespecPoints,
		RespecUnlimited: r.RespecUnlimited,
		DerivePoints:    r.UnallocatedPoints == nil,
	}
	if r.UnallocatedPoints != nil {
		params.UnallocatedPoints = *r.UnallocatedPoints
	}
	return params
}

type optimizeResponse struct {
	Objective         string                    `json:"objective"`
	ConvergenceReason string                    `json:"convergence_reason"`
	Iterations        int                       `json:"iterations"`
	ElapsedSecond     float64                   `json:"elapsed_second"`
	BaselineScore     float64                   `json:"baseline_score"`
	FinalScore        float64                   `json:"final_score"`
	Improvement       float64                   `json:"improvement"`
	NodesAdded        []uint32                  `json:"nodes_added"`
	NodesRemoved      []uint32                  `json:"nodes_removed"`
	Allocated         []uint32                  `json:"allocated"`
	BaselineStats     *datastructure.Statistics `json:"baseline_stats"`
	FinalStats        *datastructure.Statistics `json:"final_stats"`
}

func newOptimizeResponse(objective string, res *optimizer.Result) optimizeResponse {
	return optimizeResponse{
		Objective:         objective,
		ConvergenceReason: res.GetConvergenceReason().String(),
		Iterations:        res.IterationsRun(),
		ElapsedSecond:     res.ElapsedTime().Seconds(),
		BaselineScore:     res.GetBaselineScore(),
		FinalScore:        res.GetFinalScore(),
		Improvement:       res.Improvement(),
		NodesAdded:        toUint32s(res.NodesAdded()),
		NodesRemoved:      toUint32s(res.NodesRemoved()),
		Allocated:         toUint32s(res.GetFinalConfiguration().AllocatedIDs()),
		BaselineStats:     res.GetBaselineStatistics(),
		FinalStats:        res.GetFinalStatistics(),
	}
}

func toUint32s(ids []datastructure.Index) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint32(id))
	}
	return out
}

type treeResponse struct {
	NumberOfNodes int `json:"number_of_nodes"`
}

type progressFrame struct {
	Type          string  `json:"type"`
	Iteration     int     `json:"iteration"`
	BestScore     float64 `json:"best_score"`
	ElapsedSecond float64 `json:"elapsed_second"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

package controllers

import (
	"context"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/usecases"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/optimizer"
)

type OptimizeService interface {
	Optimize(ctx context.Context, params usecases.OptimizeParams,
		progress optimizer.ProgressFunc) (*optimizer.Result, error)
	TreeSize() int
}

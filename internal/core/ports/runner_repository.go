package ports

import (
	"context"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/runner"
)

type RunnerRepository interface {
	// AddIfAbsent inserts the runner unless a row with the same id exists.
	AddIfAbsent(ctx context.Context, aggregate *runner.Runner) error

	Get(ctx context.Context, id kernel.UserID) (*runner.Runner, error)
}

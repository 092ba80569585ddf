// Package runnerrepo persists the runner aggregate.
package runnerrepo

import (
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/runner"
)

type RunnerDTO struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Username  string `gorm:"size:255"`
	CreatedAt time.Time
}

func (RunnerDTO) TableName() string {
	return "runners"
}

func fromDomain(aggregate *runner.Runner) RunnerDTO {
	return RunnerDTO{
		UserID:    aggregate.ID().Int64(),
		Username:  string(aggregate.Handle()),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto RunnerDTO) (*runner.Runner, error) {
	return runner.NewRunner(kernel.UserID(dto.UserID), kernel.Handle(dto.Username), dto.CreatedAt)
}

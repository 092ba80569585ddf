package runnerrepo

import (
	"context"
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/runner"
	"makanapa/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRunnerRepository implements ports.RunnerRepository using GORM.
type GormRunnerRepository struct {
	db *gorm.DB
}

func NewGormRunnerRepository(db *gorm.DB) *GormRunnerRepository {
	return &GormRunnerRepository{db: db}
}

func (r *GormRunnerRepository) AddIfAbsent(ctx context.Context, aggregate *runner.Runner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormRunnerRepository) Get(ctx context.Context, id kernel.UserID) (*runner.Runner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("runner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

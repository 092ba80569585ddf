// Package runner provides the Runner aggregate: a person who claims and fulfils
// orders from the shared runner channel. Runners are created the first time one
// of their claims wins and are never deleted.
package runner

import (
	"errors"
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
)

var ErrRunnerIsNotConstructed = errors.New("Runner must be created via NewRunner constructor")

type Runner struct {
	id        kernel.UserID
	handle    kernel.Handle
	createdAt time.Time

	isConstructed bool
}

func NewRunner(id kernel.UserID, handle kernel.Handle, createdAt time.Time) (*Runner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	return &Runner{
		id:            id,
		handle:        handle,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *Runner) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunnerIsNotConstructed
	}
	return nil
}

func (r *Runner) ID() kernel.UserID     { return r.id }
func (r *Runner) Handle() kernel.Handle { return r.handle }
func (r *Runner) CreatedAt() time.Time  { return r.createdAt }

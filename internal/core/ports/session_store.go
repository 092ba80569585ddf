package ports

import (
	"context"

	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
)

// SessionStore keeps at most one dialogue session per requester.
// Sessions of different requesters are independent.
type SessionStore interface {
	// Get returns errs.ObjectNotFoundError when the requester has no open dialogue.
	Get(ctx context.Context, requesterID kernel.UserID) (*dialogue.Session, error)

	// Save replaces any session the requester had.
	Save(ctx context.Context, session *dialogue.Session) error

	// Delete is a no-op for requesters without a session.
	Delete(ctx context.Context, requesterID kernel.UserID) error
}

package ports

import "context"

// SequenceGenerator hands out order sequence numbers.
//
// Next returns a value strictly greater than every value it returned before,
// including values returned by other processes sharing the same store and values
// returned before a restart. Gaps are allowed: a number drawn inside a transaction
// that is rolled back is not reused by the stores that support it, and callers must
// not rely on either behavior.
type SequenceGenerator interface {
	Next(ctx context.Context) (int64, error)
}

package secondary

import "context"

type QuotaStore interface {
	// Consume increments the counter for day unless it already reached limit.
	// The check and the increment happen as one atomic step.
	Consume(ctx context.Context, day string, limit int) (used int, ok bool, err error)

	// Used returns the counter for day without modifying it
	Used(ctx context.Context, day string) (int, error)
}

// QuotaPruner is implemented by stores able to drop stale days
type QuotaPruner interface {
	// Prune removes every day strictly before the given one and returns how many were removed
	Prune(ctx context.Context, before string) (int, error)
}

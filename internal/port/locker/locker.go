package locker

import "context"

// AdvisoryLocker serialises critical sections across processes. The settlement
// service locks on the caller's wallet so two concurrent dispatches cannot
// race the balance check against each other's transfer.
type AdvisoryLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}

package interfaces

import "context"

// IServiceOrderLocker serialises quote creation per service order on a
// best-effort basis. A failed Lock never blocks the caller.
type IServiceOrderLocker interface {
	Lock(ctx context.Context, serviceOrderID string) (unlock func(), err error)
}

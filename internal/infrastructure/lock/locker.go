// Package lock serializes work on a single key, such as one entitlement row,
// either inside this process or across replicas through Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotObtained is returned when the lock could not be acquired before the context ended
// or the retry budget ran out.
var ErrNotObtained = errors.New("lock not obtained")

// Locker acquires an exclusive lock on key. The returned function releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EntitlementKey is the lock key for one entitlement row.
func EntitlementKey(entitlementID uint) string {
	return fmt.Sprintf("cva:lock:entitlement:%d", entitlementID)
}

type heldKey struct{ key string }

// Hold acquires key unless ctx already carries it, and returns a context marking it held.
// Nested calls on the returned context get a no-op unlock, so a caller that takes the
// lock before opening a transaction can call code that locks the same key.
func Hold(ctx context.Context, l Locker, key string) (context.Context, func(), error) {
	if held, _ := ctx.Value(heldKey{key}).(bool); held {
		return ctx, func() {}, nil
	}
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return ctx, nil, err
	}
	return context.WithValue(ctx, heldKey{key}, true), unlock, nil
}

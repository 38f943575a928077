package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameKey(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, EntitlementKey(1))
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.slots)
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, EntitlementKey(1))
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(ctx, EntitlementKey(2))
	require.NoError(t, err)
	unlockB()
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrNotObtained)

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	again()
	assert.Empty(t, l.slots)
}

func TestHold_IsReentrantThroughContext(t *testing.T) {
	l := NewLocalLocker()
	key := EntitlementKey(9)

	ctx, unlock, err := Hold(context.Background(), l, key)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		nestedCtx, nestedUnlock, err := Hold(ctx, l, key)
		if assert.NoError(t, err) {
			assert.Equal(t, ctx, nestedCtx)
			nestedUnlock()
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested Hold blocked on a key its context already holds")
	}

	unlock()

	_, again, err := Hold(context.Background(), l, key)
	require.NoError(t, err)
	again()
}

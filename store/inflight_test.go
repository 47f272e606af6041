package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionGuardRefusesConcurrentBegin(t *testing.T) {
	guard := NewTransitionGuard()

	assert.True(t, guard.Begin("order-1"))
	assert.False(t, guard.Begin("order-1"))

	// A different order is unaffected.
	assert.True(t, guard.Begin("order-2"))

	guard.End("order-1")
	assert.True(t, guard.Begin("order-1"))
}

func TestTransitionGuardEndWithoutBeginIsHarmless(t *testing.T) {
	guard := NewTransitionGuard()
	guard.End("order-1")
	assert.True(t, guard.Begin("order-1"))
}

func TestTransitionGuardAdmitsExactlyOne(t *testing.T) {
	guard := NewTransitionGuard()

	const attempts = 32
	admitted := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.Begin("order-1") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
}

package lockmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	m := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("tenant:1")
			counter++
			m.Unlock("tenant:1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestDistinctKeysDoNotBlock(t *testing.T) {
	m := New()

	m.Lock("tenant:1")
	defer m.Unlock("tenant:1")

	done := make(chan struct{})
	go func() {
		m.Lock("tenant:2")
		m.Unlock("tenant:2")
		close(done)
	}()

	<-done
}

func TestSameKeyReturnsSameMutex(t *testing.T) {
	m := New()
	assert.Same(t, m.get("house:9"), m.get("house:9"))
	assert.NotSame(t, m.get("house:9"), m.get("house:10"))
}

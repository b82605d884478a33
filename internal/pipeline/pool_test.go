package pipeline

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsNonPositiveWorkers(t *testing.T) {
	assert.Equal(t, 1, New(0).workers)
	assert.Equal(t, 1, New(-3).workers)
	assert.Equal(t, 4, New(4).workers)
}

func TestMapRunsEveryIndexExactlyOnce(t *testing.T) {
	const n = 100
	seen := make([]int32, n)

	p := New(8)
	p.Map(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, count := range seen {
		assert.Equal(t, int32(1), count, "index %d", i)
	}
}

func TestMapZeroOrNegativeIsNoop(t *testing.T) {
	called := false
	p := New(4)
	p.Map(0, func(i int) { called = true })
	p.Map(-1, func(i int) { called = true })
	assert.False(t, called)
}

func TestMapMoreWorkersThanTasks(t *testing.T) {
	var total int32
	p := New(64)
	p.Map(3, func(i int) {
		atomic.AddInt32(&total, 1)
	})
	assert.Equal(t, int32(3), total)
}

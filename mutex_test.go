package kernel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMutexAcquireUncontended(t *testing.T) {
	k := newTestKernel(t)
	m := NewMutex(k)
	self := newTestTask(t, k, 1)

	done := make(chan struct{})
	go func() {
		m.Acquire(self, 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("uncontended Acquire did not return")
	}
	if !m.acquired {
		t.Fatal("mutex should be held after Acquire")
	}
}

func TestMutexExcludesConcurrentHolders(t *testing.T) {
	k := newTestKernel(t)
	m := NewMutex(k)
	owner := newTestTask(t, k, 1)
	waiter := newTestTask(t, k, 2)

	m.Acquire(owner, 1)

	waiterDone := make(chan struct{})
	go func() {
		m.Acquire(waiter, 1)
		close(waiterDone)
	}()

	select {
	case <-waiterDone:
		t.Fatal("second Acquire returned while the mutex was still held")
	case <-time.After(50 * time.Millisecond):
	}

	m.Release(owner, 1)

	select {
	case <-waiterDone:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the mutex after Release")
	}
}

func TestMutexGrantsByPriorityOrder(t *testing.T) {
	// Scenario S3: three tasks contend for one mutex; the holder with
	// the numerically lowest (highest) priority among those already
	// queued must acquire next, regardless of arrival order.
	k := newTestKernel(t)
	m := NewMutex(k)
	owner := newTestTask(t, k, 1)
	m.Acquire(owner, 1)

	type result struct {
		priority int
		order    int
	}
	var (
		mu      sync.Mutex
		results []result
		seq     int
	)
	record := func(priority int) {
		mu.Lock()
		seq++
		results = append(results, result{priority: priority, order: seq})
		mu.Unlock()
	}

	waiters := []struct {
		task     *Task
		priority int
		delay    time.Duration
	}{
		{newTestTask(t, k, 2), 5, 0},
		{newTestTask(t, k, 3), 1, 15 * time.Millisecond},
		{newTestTask(t, k, 4), 3, 30 * time.Millisecond},
	}

	var wg sync.WaitGroup
	for _, w := range waiters {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(w.delay)
			m.Acquire(w.task, w.priority)
			record(w.priority)
			m.Release(w.task, w.priority)
		}()
	}

	// Give every waiter time to enqueue before the mutex becomes free.
	time.Sleep(60 * time.Millisecond)
	m.Release(owner, 1)

	wg.Wait()

	require.Len(t, results, 3, "expected every waiter to acquire and release exactly once")
	got := []int{results[0].priority, results[1].priority, results[2].priority}
	require.Equal(t, []int{1, 3, 5}, got, "waiters must be granted in priority order regardless of arrival order")
}

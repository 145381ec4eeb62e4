package kernel

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	return NewKernel(DefaultConfig(), make([]byte, 1<<16), zerolog.Nop())
}

func newTestTask(t *testing.T, k *Kernel, id int) *Task {
	t.Helper()
	task, err := newTask(k.heap, k.config, id, 1, k.config.MinStackBytes(), func(*Kernel, *Task) {})
	if err != nil {
		t.Fatalf("newTask: %v", err)
	}
	return task
}

func TestSemaphoreWaitDecrementsAvailableCount(t *testing.T) {
	k := newTestKernel(t)
	self := newTestTask(t, k, 1)
	sem := NewSemaphore(k, 1)

	sem.Wait(self)
	if got := sem.Value(); got != 0 {
		t.Fatalf("Value() = %d, want 0", got)
	}
}

func TestSemaphoreSignalIncrements(t *testing.T) {
	k := newTestKernel(t)
	sem := NewSemaphore(k, 0)
	sem.Signal()
	if got := sem.Value(); got != 1 {
		t.Fatalf("Value() = %d, want 1", got)
	}
}

func TestSemaphoreWaitBlocksUntilSignaled(t *testing.T) {
	k := newTestKernel(t)
	self := newTestTask(t, k, 1)
	sem := NewSemaphore(k, 0)

	done := make(chan struct{})
	go func() {
		sem.Wait(self)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Signal was called")
	default:
	}

	sem.Signal()
	<-done
}

func TestSemaphoreAsCountingResource(t *testing.T) {
	// Scenario S4: a shared counter guarded by a semaphore initialized
	// to 1, incremented by two concurrent waiters; Wait/Signal must
	// fully serialize access so the final count is exact.
	k := newTestKernel(t)
	sem := NewSemaphore(k, 1)
	selfA := newTestTask(t, k, 1)
	selfB := newTestTask(t, k, 2)

	counter := 0
	const iterations = 10000
	runWorker := func(self *Task) {
		for i := 0; i < iterations; i++ {
			sem.Wait(self)
			counter++
			sem.Signal()
		}
	}

	done := make(chan struct{}, 2)
	go func() { runWorker(selfA); done <- struct{}{} }()
	go func() { runWorker(selfB); done <- struct{}{} }()
	<-done
	<-done

	require.Equal(t, 2*iterations, counter, "Wait/Signal must fully serialize the critical section")
}

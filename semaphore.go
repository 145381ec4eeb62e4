package kernel

// Semaphore is a counting semaphore whose Wait is a busy-wait spin: the
// source kernel has no wait-queue or wakeup path, only a mask/
// unmask/re-check loop (see spec.md §4.4 and its Design Notes, which
// explicitly forbid turning this into a futex-style wait).
type Semaphore struct {
	k       *Kernel
	counter int32
}

// NewSemaphore creates a semaphore initialized to count.
func NewSemaphore(k *Kernel, count int32) *Semaphore {
	return &Semaphore{k: k, counter: count}
}

// Wait decrements the semaphore, blocking (by spinning) while the
// count is zero. self identifies the calling task so the brief
// unmask window can run a real checkpoint: in this simulation, the
// only way another task's Signal can execute is for the scheduler to
// actually switch to it, so the "unmask to allow an interrupt" step is
// a checkpoint, not merely a Go scheduling hint.
func (s *Semaphore) Wait(self *Task) {
	s.k.mask.Mask()
	for s.counter == 0 {
		s.k.mask.Unmask()
		s.k.CheckPoint(self)
		yieldToScheduler()
		s.k.mask.Mask()
	}
	s.counter--
	s.k.mask.Unmask()
}

// Signal increments the semaphore.
func (s *Semaphore) Signal() {
	s.k.mask.Mask()
	s.counter++
	s.k.mask.Unmask()
}

// Value returns the current count, for diagnostics and tests only —
// the reference semaphore exposes no such read in the hot path.
func (s *Semaphore) Value() int32 {
	s.k.mask.Mask()
	defer s.k.mask.Unmask()
	return s.counter
}

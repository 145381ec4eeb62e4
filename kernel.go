package kernel

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Kernel groups the process-wide kernel state the reference design's
// notes ask to be gathered into one record: the ready-list array,
// current/next TCB, the scheduler-started flag, and the global queue
// semaphore — mutated only inside the context-switch handler or while
// holding the interrupt mask.
type Kernel struct {
	config Config
	mask   InterruptMask
	logger zerolog.Logger

	heap *Heap

	ready readyLists // one circular list per priority level, ready[0] reserved for periodic tasks
	ids   map[int]bool

	current *Task
	next    *Task

	schedulerStarted bool

	queueSem *Semaphore // shared across all mutexes, guards waiter-queue mutation

	pendingSwitch atomic.Bool
	ticks         *tickSource
}

// NewKernel constructs a Kernel over the given configuration and heap
// arena, ready to accept Spawn/SpawnPeriodic calls.
func NewKernel(cfg Config, arena []byte, logger zerolog.Logger) *Kernel {
	k := &Kernel{
		config: cfg,
		logger: logger,
		heap:   NewHeap(arena),
		ready:  newReadyLists(cfg.NumPriorities),
		ids:    make(map[int]bool),
	}
	k.queueSem = NewSemaphore(k, 1)
	return k
}

// Spawn creates a regular task at the given priority. See spec.md
// §4.1: the entire operation runs with the interrupt mask held, so a
// tick landing between TCB construction and ready-list insertion can
// never observe a partially constructed record.
func (k *Kernel) Spawn(entry TaskFunc, id, priority, stackSize int) (*Task, error) {
	if priority < 0 || priority >= k.config.NumPriorities {
		return nil, ErrPriorityOutOfRange
	}
	return k.spawn(entry, id, priority, stackSize, 0)
}

// SpawnPeriodic creates a periodic real-time task at priority 0 with
// the given period in milliseconds.
func (k *Kernel) SpawnPeriodic(entry TaskFunc, id, stackSize int, periodMS int32) (*Task, error) {
	return k.spawn(entry, id, 0, stackSize, periodMS)
}

func (k *Kernel) spawn(entry TaskFunc, id, priority, stackSize int, periodMS int32) (*Task, error) {
	k.mask.Mask()
	defer k.mask.Unmask()

	if k.ids[id] {
		return nil, ErrDuplicateTaskID
	}

	t, err := newTask(k.heap, k.config, id, priority, stackSize, entry)
	if err != nil {
		return nil, err
	}
	if t == nil {
		k.fault("heap exhausted during spawn")
	}
	t.Period = periodMS
	t.Remaining = periodMS

	k.ids[id] = true
	k.ready.insert(t)

	go k.runTask(t)

	k.logger.Info().
		Int("task_id", id).
		Int("priority", priority).
		Int32("period_ms", periodMS).
		Int("stack_bytes", stackSize).
		Msg("task spawned")

	return t, nil
}

// runTask is the goroutine body backing every task's simulated stack.
// It blocks until the context-switch engine resumes it for the first
// time — the goroutine-level analogue of "restore the initial frame
// and branch to the entry point" — then runs the task's body forever.
func (k *Kernel) runTask(t *Task) {
	<-t.resume
	t.entry(k, t)
}

// CheckPoint is the point at which a task may discover a pending tick
// and be switched away: the cooperative stand-in for "preemptible at
// any instruction except while masked" that a hosted Go program (with
// no access to real register-level preemption) can actually provide.
// Task bodies call it at loop-iteration boundaries. It is also where
// Semaphore.Wait's "briefly unmask to allow an interrupt" spin lands,
// since in this simulation the only way another task's Signal can run
// is for the scheduler to actually switch to it.
func (k *Kernel) CheckPoint(self *Task) {
	if !k.pendingSwitch.CompareAndSwap(true, false) {
		return
	}
	k.deferredSwitch(self)
}

// deferredSwitch is the PendSV handler: spec.md §4.3's
// uninitialized/first-entry/steady state machine.
func (k *Kernel) deferredSwitch(self *Task) {
	k.mask.Mask()
	if !k.schedulerStarted {
		k.mask.Unmask()
		return
	}

	self.state = TaskSuspended
	k.current = self
	k.scheduleNext()
	nextTask := k.next
	k.mask.Unmask()

	if nextTask == self {
		// Round-robin on a singleton ready set: continue immediately,
		// matching "keep the current TCB" when nothing else can run.
		self.state = TaskRunning
		return
	}

	k.resumeTask(nextTask)

	<-self.resume
	self.state = TaskRunning
}

// resumeTask hands control to t: its first resume starts its
// goroutine running from the fabricated entry frame; subsequent
// resumes simply unpark a goroutine already blocked in CheckPoint.
// A SavedSP outside the task's stack is an unrecoverable fault.
func (k *Kernel) resumeTask(t *Task) {
	if !t.checkInvariant() {
		k.fault("corrupted saved stack pointer")
	}
	t.state = TaskRunning
	t.resume <- struct{}{}
}

// Run boots the scheduler: the deferred-switch handler's
// uninitialized-to-first-entry transition, starting the simulated tick
// source and handing control to the first task scheduleNext selects. It does not
// block; callers wait on their own termination condition (see
// cmd/trustosdemo).
//
// The first task is chosen through the same scheduleNext path every
// later switch uses, rather than simply taking whichever task spawned
// first: scheduleNext always advances a priority level's ready-list
// head past whatever it selects, so picking the first task any other
// way would leave that task sitting at its list's head, and its own
// first CheckPoint would immediately reselect itself instead of
// advancing to the next task in line.
func (k *Kernel) Run() {
	k.mask.Mask()
	if k.schedulerStarted {
		k.mask.Unmask()
		return
	}
	k.scheduleNext()
	if k.next == nil {
		k.mask.Unmask()
		return
	}
	k.current = k.next
	k.schedulerStarted = true
	k.mask.Unmask()

	k.startTicks()
	k.resumeTask(k.current)
}

// Stop halts the simulated tick source. Tasks themselves are never
// destroyed, matching the reference kernel's lifecycle.
func (k *Kernel) Stop() {
	k.stopTicks()
}

// Logger exposes the kernel's structured logger for callers (tasks,
// cmd/trustosdemo) that want to log with the same sink.
func (k *Kernel) Logger() *zerolog.Logger {
	return &k.logger
}

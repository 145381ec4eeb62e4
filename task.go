package kernel

// TaskFunc is a task's entry point. self lets the task call back into
// the kernel (CheckPoint, mutex/semaphore operations) without a package
// global. A task is expected to run forever — the source kernel has no
// task-destruction operation, and neither does this one.
type TaskFunc func(k *Kernel, self *Task)

// TaskState records where a task sits relative to the simulated
// context switch, mirroring the PendSV handler's own state machine
// (uninitialized/first-entry/steady) one level up, per task.
type TaskState int

const (
	// TaskReady means the task has been spawned but its goroutine has
	// not yet been resumed for the first time.
	TaskReady TaskState = iota
	// TaskRunning means the task is the current TCB.
	TaskRunning
	// TaskSuspended means the task has been switched away from and is
	// parked awaiting its next resume.
	TaskSuspended
)

func (s TaskState) String() string {
	switch s {
	case TaskReady:
		return "ready"
	case TaskRunning:
		return "running"
	case TaskSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Task is the Task Control Block: a schedulable unit of execution.
//
// Stack, StackBase and SavedSP model the reference kernel's stack
// discipline without a real address space: Stack is the task's byte
// arena, StackBase is len(Stack) (the address just past the end, where
// a real stack pointer would start), and SavedSP is a byte offset into
// Stack where lower offsets are lower (more exhausted) addresses.
type Task struct {
	ID       int
	Priority int

	Stack     []byte
	StackBase int
	SavedSP   int

	Period    int32 // nominal interval in ms, periodic tasks only
	Remaining int32 // ms until due, decremented each scheduling decision

	entry TaskFunc
	node  *Node // back-reference into its ready list

	state  TaskState
	resume chan struct{}
}

// newTask allocates a TCB and its stack from heap, fabricates the
// initial frame, and returns the TCB with SavedSP pointing at the
// bottom of that frame. It does not insert the task into any ready
// list — the caller (Kernel.Spawn/SpawnPeriodic) does that while still
// holding the interrupt mask.
func newTask(heap *Heap, cfg Config, id, priority int, stackSize int, entry TaskFunc) (*Task, error) {
	if stackSize%cfg.WordSizeBytes != 0 || stackSize < cfg.MinStackBytes() {
		return nil, ErrStackTooSmall
	}
	block := heap.Alloc(stackSize)
	if block.Bytes == nil {
		return nil, nil // caller faults; distinguished from validation errors
	}
	t := &Task{
		ID:        id,
		Priority:  priority,
		Stack:     block.Bytes,
		StackBase: len(block.Bytes),
		entry:     entry,
		state:     TaskReady,
		resume:    make(chan struct{}),
	}
	t.SavedSP = fabricateInitialFrame(t.Stack, cfg, id)
	return t, nil
}

// checkInvariant reports whether the task's saved stack pointer still
// satisfies stack containment: stack_base - stack_size <= saved_sp <
// stack_base, expressed here as 0 <= SavedSP < StackBase.
func (t *Task) checkInvariant() bool {
	return t.SavedSP >= 0 && t.SavedSP < t.StackBase
}

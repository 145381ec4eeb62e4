package kernel

// waiter is the (task-id, priority) pair the mutex's queue orders by
// priority, matching spec.md §3's waiter-list record.
type waiter struct {
	taskID   int
	priority int
}

// Mutex is a priority-ordered, non-priority-inheriting lock: priority
// is an explicit argument the caller supplies at acquire/release time,
// not something the mutex consults from the scheduler. Its waiter
// queue is protected by the kernel's single shared queue semaphore, so
// at most one task observes acquired flip from false to true without
// an intervening release.
type Mutex struct {
	k        *Kernel
	queue    *Node // linear list (dummy-terminated), priority-ordered, highest priority nearest head
	acquired bool
}

// NewMutex creates an unheld mutex.
func NewMutex(k *Kernel) *Mutex {
	return &Mutex{k: k, queue: NewList().Head()}
}

func waiterPriority(v interface{}) int {
	return v.(waiter).priority
}

// Acquire enqueues (taskID, priority) in priority order, then spins
// until the mutex is free and this waiter is at the head of the
// queue — spec.md §4.5's two-phase protocol. priority is supplied by
// the caller; the mutex does not consult the scheduler's notion of the
// task's priority, so a caller that lies about its own priority gets
// exactly the ordering it asked for.
func (m *Mutex) Acquire(self *Task, priority int) {
	me := waiter{taskID: self.ID, priority: priority}

	m.k.queueSem.Wait(self)
	m.queue = InsertByPriority(m.queue, me, waiterPriority)
	m.k.queueSem.Signal()

	for {
		m.k.queueSem.Wait(self)
		if !m.acquired && m.queue.Data != nil && m.queue.Data.(waiter) == me {
			m.acquired = true
			m.queue = DeleteNode(m.queue)
			m.k.queueSem.Signal()
			return
		}
		m.k.queueSem.Signal()
		m.k.CheckPoint(self)
		yieldToScheduler()
	}
}

// Release marks the mutex free. It does not re-check or signal the
// queue head — waiters discover the change on their next spin, exactly
// as spec.md's Design Notes describe and explicitly ask not to "fix".
func (m *Mutex) Release(self *Task, priority int) {
	m.acquired = false
}

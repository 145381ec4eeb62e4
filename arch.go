package kernel

import (
	"runtime"
	"sync"
	"time"
)

// InterruptMask is the host-process analogue of a Cortex-M BASEPRI
// register capped at MaxSyscallPriority: a single global lock standing
// in for "all exceptions above the syscall priority are masked". Spawn,
// semaphore wait/signal, mutex queue mutation, and the context-switch
// handler all take it, exactly as spec.md's discipline requires.
//
// A plain mutex is a faithful analogue here because this is a
// single-core model: at most one logical task is ever "running" at a
// time (see context.go), so excluding concurrent access to shared
// kernel state only ever needs to exclude one other party at a time,
// which is exactly what Lock/Unlock gives us.
type InterruptMask struct {
	mu sync.Mutex
}

// Mask asserts the mask (disables interrupts).
func (m *InterruptMask) Mask() { m.mu.Lock() }

// Unmask clears the mask (enables interrupts).
func (m *InterruptMask) Unmask() { m.mu.Unlock() }

// tickSource drives the kernel's simulated SysTick: a goroutine that,
// once per configured tick interval, requests a deferred context
// switch and does no other work — matching spec.md's "the tick handler
// performs no per-task work".
type tickSource struct {
	stop chan struct{}
	done chan struct{}
}

func (k *Kernel) startTicks() {
	k.ticks = &tickSource{stop: make(chan struct{}), done: make(chan struct{})}
	interval := k.config.TickInterval()
	go func() {
		defer close(k.ticks.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-k.ticks.stop:
				return
			case <-ticker.C:
				k.requestSwitch()
			}
		}
	}()
}

func (k *Kernel) stopTicks() {
	if k.ticks == nil {
		return
	}
	close(k.ticks.stop)
	<-k.ticks.done
}

// requestSwitch is the tick handler's entire job: pend the deferred
// switch. Coalesced into a single pending flag — exactly as a real
// PendSV pend bit coalesces repeated requests into one pending
// exception.
func (k *Kernel) requestSwitch() {
	k.pendingSwitch.Store(true)
}

// yieldToScheduler gives other goroutines (in particular whichever
// task the scheduler is about to hand control to) a chance to run. It
// is the simulation's analogue of the reference kernel's busy-wait NOP
// spins, which exist only to let a pending interrupt fire.
func yieldToScheduler() {
	runtime.Gosched()
}

// Package kernel implements the scheduler, context-switch, and
// synchronization core of TrustOS, a small preemptive round-robin
// kernel for a single simulated Cortex-M-class target:
//   - a fixed set of cooperating tasks, priority-scheduled with
//     round-robin execution within a priority level,
//   - periodic real-time tasks carried on priority 0 and scheduled
//     earliest-deadline-first,
//   - a priority-ordered, non-inheriting mutex and a busy-wait
//     counting semaphore,
//   - a bump-style heap used only to back task control blocks and
//     stacks.
//
// Hardware bring-up, the serial console, and real register-level
// context-switch assembly are out of scope for a hosted Go program;
// this package isolates them behind small interfaces (see arch.go) and
// supplies host-process implementations suitable for simulation and
// testing.
package kernel

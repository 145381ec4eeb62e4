package kernel

// scheduleNext implements spec.md §4.2's policy and writes the result
// into k.next. Called from deferredSwitch with the interrupt mask
// already held.
//
//  1. Every priority-0 (periodic) task has Remaining decremented by
//     SwapTimeMS exactly once (not the reference kernel's accidental
//     2n-1 times — see DESIGN.md).
//  2. If a task's Remaining falls within ±DeltaRealtimeMS of zero, it
//     is due; earliest-deadline-first breaks ties among several due
//     tasks. A due task is selected, its Remaining reset to Period, and
//     the priority-0 list's cursor is explicitly advanced past it (the
//     reference kernel never advances this cursor on the realtime
//     branch, which spec.md's Design Notes flag as an infinite-loop
//     risk once a due task exists).
//  3. Otherwise, the highest non-empty priority level (1..NumPriorities-1)
//     supplies its head, and the head is advanced one position
//     (round-robin within the level).
//  4. If every list is empty, k.next keeps its previous value (there is
//     no idle task).
func (k *Kernel) scheduleNext() {
	if due := k.dueRealtimeTask(); due != nil {
		k.next = due
		return
	}

	for p := 1; p < len(k.ready); p++ {
		l := k.ready[p]
		if l.Empty() {
			continue
		}
		head := l.Head()
		k.next = head.Data.(*Task)
		l.SetHead(head.Next)
		return
	}

	// All lists empty (or only priority 0 exists and nothing is due):
	// keep whatever k.next already held.
}

// dueRealtimeTask decrements every priority-0 task's Remaining exactly
// once and returns the earliest-due task, or nil if none qualify.
func (k *Kernel) dueRealtimeTask() *Task {
	l := k.ready[0]
	if l.Empty() {
		return nil
	}

	head := l.Head()
	cur := head
	var due *Task
	var dueNode *Node
	for {
		t := cur.Data.(*Task)
		t.Remaining -= k.config.SwapTimeMS
		if abs32(t.Remaining) <= k.config.DeltaRealtimeMS {
			if due == nil || t.Remaining < due.Remaining {
				due = t
				dueNode = cur
			}
		}
		cur = cur.Next
		if cur == head {
			break
		}
	}

	if due != nil {
		due.Remaining = due.Period
		l.SetHead(dueNode.Next)
	}
	return due
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

package kernel

// readyLists is the array of circular per-priority ready lists: index 0
// reserved for periodic real-time tasks, 1..NumPriorities-1 round-robin
// background levels. Kept as its own small type (rather than a bare
// []*List field on Kernel) so the insertion policy shared by Spawn and
// SpawnPeriodic has one place to live, mirroring spec.md §3's ready-list
// collaborator.
type readyLists []*List

func newReadyLists(numPriorities int) readyLists {
	return make(readyLists, numPriorities)
}

// insert adds t to the ready list for its priority, creating a new
// circular list if the level was previously empty, and records the
// node it now occupies in t.node. Nothing in this package removes a
// task from its ready list.
func (r readyLists) insert(t *Task) {
	l := r[t.Priority]
	if l == nil || l.Empty() {
		l = NewCircularList(t)
		r[t.Priority] = l
		t.node = l.Head()
		return
	}
	t.node = InsertAfter(l.Head(), t)
}

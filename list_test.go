package kernel

import "testing"

func TestListEmpty(t *testing.T) {
	l := NewList()
	if !l.Empty() {
		t.Fatal("freshly created list should be empty")
	}
}

func TestInsertAfterOnEmptyList(t *testing.T) {
	l := NewList()
	n := InsertAfter(l.Head(), "a")
	l.SetHead(n)
	if l.Empty() {
		t.Fatal("list should not be empty after insert")
	}
	if l.Head().Data != "a" {
		t.Fatalf("head data = %v, want a", l.Head().Data)
	}
}

func TestInsertAfterAppends(t *testing.T) {
	l := NewList()
	n1 := InsertAfter(l.Head(), "a")
	l.SetHead(n1)
	n2 := InsertAfter(n1, "b")
	if n1.Next != n2 || n2.Prev != n1 {
		t.Fatal("b should be linked directly after a")
	}
	if n2.Data != "b" {
		t.Fatalf("n2.Data = %v, want b", n2.Data)
	}
}

func TestPushBackAppendsBeforeDummy(t *testing.T) {
	l := NewList()
	head := PushBack(l.Head(), "a")
	l.SetHead(head)
	head = PushBack(l.Head(), "b")
	head = PushBack(head, "c")
	l.SetHead(head)

	got := []interface{}{}
	for n := l.Head(); n.Data != nil; n = n.Next {
		got = append(got, n.Data)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v, want [a b c]", got)
	}
}

func TestDeleteNodeMiddle(t *testing.T) {
	l := NewList()
	head := PushBack(l.Head(), "a")
	l.SetHead(head)
	PushBack(l.Head(), "b")
	PushBack(l.Head(), "c")

	middle := l.Head().Next
	if middle.Data != "b" {
		t.Fatalf("expected middle node to hold b, got %v", middle.Data)
	}
	DeleteNode(middle)

	got := []interface{}{}
	for n := l.Head(); n.Data != nil; n = n.Next {
		got = append(got, n.Data)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("got %v, want [a c]", got)
	}
}

func TestDeleteNodeHeadReturnsSuccessor(t *testing.T) {
	l := NewList()
	head := PushBack(l.Head(), "a")
	l.SetHead(head)
	PushBack(l.Head(), "b")

	newHead := DeleteNode(l.Head())
	if newHead.Data != "b" {
		t.Fatalf("newHead.Data = %v, want b", newHead.Data)
	}
}

func TestDeleteNodeOnlyNodeEmptiesList(t *testing.T) {
	l := NewList()
	head := InsertAfter(l.Head(), "a")
	l.SetHead(head)

	l.SetHead(DeleteNode(l.Head()))
	if !l.Empty() {
		t.Fatal("deleting the only real node should leave the list empty")
	}
}

func TestNewCircularListSelfLinks(t *testing.T) {
	l := NewCircularList(42)
	h := l.Head()
	if h.Next != h || h.Prev != h {
		t.Fatal("singleton circular list must link to itself")
	}
}

func TestInsertByPriorityOrdersHighestFirst(t *testing.T) {
	type item struct {
		name     string
		priority int
	}
	prio := func(v interface{}) int { return v.(item).priority }

	l := NewList()
	head := l.Head()
	head = InsertByPriority(head, item{"low", 3}, prio)
	head = InsertByPriority(head, item{"high", 0}, prio)
	head = InsertByPriority(head, item{"mid", 1}, prio)

	var order []string
	for n := head; n.Data != nil; n = n.Next {
		order = append(order, n.Data.(item).name)
	}
	if len(order) != 3 || order[0] != "high" || order[1] != "mid" || order[2] != "low" {
		t.Fatalf("got %v, want [high mid low]", order)
	}
}

func TestInsertByPriorityTiesPreserveInsertionOrder(t *testing.T) {
	type item struct {
		name     string
		priority int
	}
	prio := func(v interface{}) int { return v.(item).priority }

	l := NewList()
	head := l.Head()
	head = InsertByPriority(head, item{"first", 1}, prio)
	head = InsertByPriority(head, item{"second", 1}, prio)
	head = InsertByPriority(head, item{"third", 1}, prio)

	var order []string
	for n := head; n.Data != nil; n = n.Next {
		order = append(order, n.Data.(item).name)
	}
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("got %v, want insertion order [first second third]", order)
	}
}

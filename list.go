package kernel

// Node is one element of an intrusive doubly-linked list. Linear lists
// end in a dummy node (Data == nil, Next == nil); circular lists have
// no dummy node and, as a singleton, point to themselves.
type Node struct {
	Data interface{}
	Next *Node
	Prev *Node
}

// List is a handle to either a linear or a circular list: the node
// currently treated as the list's head. Insertion and deletion return
// the node callers should treat as the new head.
type List struct {
	head *Node
}

// NewList creates an empty linear list: a single dummy node.
func NewList() *List {
	return &List{head: &Node{}}
}

// NewCircularList creates a single-node circular list holding data.
func NewCircularList(data interface{}) *List {
	n := &Node{Data: data}
	n.Next = n
	n.Prev = n
	return &List{head: n}
}

// Empty reports whether the list holds no data (a linear list reduced
// to its dummy node, or a nil head).
func (l *List) Empty() bool {
	return l == nil || l.head == nil || (l.head.Next == nil && l.head.Data == nil)
}

// Head returns the node currently at the head of the list.
func (l *List) Head() *Node {
	if l == nil {
		return nil
	}
	return l.head
}

// SetHead replaces the list's head pointer, e.g. after a round-robin
// advance or a head deletion.
func (l *List) SetHead(n *Node) {
	l.head = n
}

// InsertAfter inserts a new node holding data immediately after n,
// returning the new node. Inserting after the dummy node of an empty
// linear list instead places the node in front of the dummy, matching
// the reference kernel's add_as_next behavior.
func InsertAfter(n *Node, data interface{}) *Node {
	node := &Node{Data: data}
	if n.Next == nil {
		// n is an empty list's dummy node.
		node.Next = n
		node.Prev = nil
		n.Prev = node
		return node
	}
	node.Next = n.Next
	node.Prev = n
	node.Next.Prev = node
	n.Next = node
	return node
}

// PushFront inserts data in front of n, the head of a linear list,
// returning the new node as the new head. It does not maintain
// circular links.
func PushFront(n *Node, data interface{}) *Node {
	node := &Node{Data: data, Next: n}
	node.Prev = nil
	if n != nil {
		n.Prev = node
	}
	return node
}

// PushBack appends data to the tail of a linear list (one that ends in
// a dummy node). Requires a non-circular list.
func PushBack(n *Node, data interface{}) *Node {
	node := &Node{Data: data}
	cur := n
	if cur.Next == nil {
		// empty list: insert in front of the dummy node.
		node.Next = n
		node.Prev = nil
		cur.Prev = node
		return node
	}
	for cur.Next.Next != nil {
		cur = cur.Next
	}
	node.Next = cur.Next
	node.Prev = cur
	node.Next.Prev = node
	cur.Next = node
	return n
}

// DeleteNode unlinks node from whatever list holds it and returns the
// node that should take its place as head: the successor, or nil if
// node is a dummy node or the only node of a circular list. Deleting
// the last real node of a linear list returns its dummy node.
func DeleteNode(node *Node) *Node {
	if node == nil {
		return nil
	}
	if node.Next == nil || node.Next == node {
		return nil
	}
	if node.Prev == nil {
		node.Next.Prev = nil
	} else {
		node.Prev.Next = node.Next
		node.Next.Prev = node.Prev
	}
	return node.Next
}

// InsertByPriority inserts data into the linear list headed at n in
// priority order (highest priority, per priorityOf, nearest the head;
// ties preserve insertion order) and returns the new head. This is the
// waiter-queue ordering the mutex uses.
func InsertByPriority(n *Node, data interface{}, priorityOf func(interface{}) int) *Node {
	if n.Next == nil {
		// empty list: insert in front of the dummy node.
		node := &Node{Data: data, Next: n, Prev: nil}
		n.Prev = node
		return node
	}
	cur := n
	for cur.Next.Next != nil {
		cur = cur.Next
	}
	// cur is now the node immediately before the dummy tail.
	p := priorityOf(data)
	for cur != nil {
		if priorityOf(cur.Data) <= p {
			InsertAfter(cur, data)
			return n
		}
		cur = cur.Prev
	}
	return PushFront(n, data)
}

package cache

// lruNode links a key into a recency ring.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a circular list around a sentinel: root.next is the most
// recently used key, root.prev the least. Call init before use. It is not
// safe for concurrent use.
type lruList[K comparable] struct {
	root lruNode[K]
	n    int
}

func (l *lruList[K]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.n = 0
}

func (l *lruList[K]) insertFront(node *lruNode[K]) {
	node.prev = &l.root
	node.next = l.root.next
	l.root.next.prev = node
	l.root.next = node
}

func (l *lruList[K]) detach(node *lruNode[K]) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev, node.next = nil, nil
}

// pushFront links a new node for key as most recently used.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.insertFront(node)
	l.n++
	return node
}

// touch marks node as most recently used.
func (l *lruList[K]) touch(node *lruNode[K]) {
	if l.root.next == node {
		return
	}
	l.detach(node)
	l.insertFront(node)
}

// popBack unlinks the least recently used node and returns its key.
func (l *lruList[K]) popBack() (K, bool) {
	node := l.root.prev
	if node == &l.root {
		var zero K
		return zero, false
	}
	l.detach(node)
	l.n--
	return node.key, true
}

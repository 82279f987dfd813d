package queue

// Queue is a FIFO queue. A queue created with a positive limit keeps only
// the newest limit items: pushing onto a full queue evicts the oldest one.
type Queue[T any] struct {
	items []T
	limit int
}

// New creates an unbounded queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// NewBounded creates a queue holding at most limit items.
func NewBounded[T any](limit int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, limit), limit: limit}
}

// Enqueue adds an element to the back of the queue. When the queue is
// bounded and full, the front element is removed and returned.
func (q *Queue[T]) Enqueue(item T) (evicted T, ok bool) {
	if q.limit > 0 && len(q.items) == q.limit {
		evicted, ok = q.Dequeue()
	}
	q.items = append(q.items, item)
	return evicted, ok
}

// Dequeue removes and returns the front element.
// The boolean is false when the queue was empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Drain removes and returns every element in FIFO order.
func (q *Queue[T]) Drain() []T {
	out := q.items
	q.items = make([]T, 0, q.limit)
	return out
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Reset discards every element.
func (q *Queue[T]) Reset() {
	q.items = q.items[:0]
}

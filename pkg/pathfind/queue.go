package pathfind

// Queue is a FIFO queue backed by a growable ring buffer.
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	buf   []T
	head  int
	count int
}

// NewQueue returns an empty queue with room for capacity items.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{buf: make([]T, max(capacity, 1))}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.count }

// Push appends v to the back of the queue.
func (q *Queue[T]) Push(v T) {
	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
}

// Pop removes and returns the front item. ok is false if the queue is empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	if q.count == 0 {
		return v, false
	}
	v = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v, true
}

func (q *Queue[T]) grow() {
	next := make([]T, max(2*len(q.buf), 4))
	for i := range q.count {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf, q.head = next, 0
}

package ecs

import "github.com/kamstrup/intmap"

// destroyQueue buffers entities marked for destruction until the destroy phase
// at the end of the frame. Each entity is queued at most once per frame.
type destroyQueue struct {
	pending []EntityId
	queued  *intmap.Set[EntityId]
	head    int
}

func newDestroyQueue() *destroyQueue {
	return &destroyQueue{
		queued: intmap.NewSet[EntityId](64),
	}
}

func (q *destroyQueue) push(e EntityId) {
	if q.queued.Has(e) {
		return
	}
	q.queued.Add(e)
	q.pending = append(q.pending, e)
}

func (q *destroyQueue) has(e EntityId) bool {
	return q.queued.Has(e)
}

// pop returns the next queued entity in push order.
func (q *destroyQueue) pop() (EntityId, bool) {
	if q.head >= len(q.pending) {
		return 0, false
	}
	e := q.pending[q.head]
	q.head++
	return e, true
}

func (q *destroyQueue) len() int {
	return len(q.pending) - q.head
}

// reset clears the queue, resetting the buffer state for the next frame.
func (q *destroyQueue) reset() {
	q.pending = q.pending[:0]
	q.head = 0
	q.queued.Clear()
}

package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestroyQueue(t *testing.T) {
	t.Run("pops in push order without duplicates", func(t *testing.T) {
		q := newDestroyQueue()
		q.push(3)
		q.push(1)
		q.push(3)
		q.push(2)

		assert.Equal(t, 3, q.len())
		assert.True(t, q.has(1))

		var order []EntityId
		for {
			e, ok := q.pop()
			if !ok {
				break
			}
			order = append(order, e)
		}
		assert.Equal(t, []EntityId{3, 1, 2}, order)
		assert.Equal(t, 0, q.len())
	})

	t.Run("entities pushed while draining are popped", func(t *testing.T) {
		q := newDestroyQueue()
		q.push(1)

		e, _ := q.pop()
		assert.Equal(t, EntityId(1), e)

		q.push(1)
		q.push(2)
		e, ok := q.pop()
		assert.True(t, ok)
		assert.Equal(t, EntityId(2), e, "an entity already popped this frame is not queued again")
	})

	t.Run("grows past its initial capacity", func(t *testing.T) {
		q := newDestroyQueue()
		for e := range EntityId(500) {
			q.push(e + 1)
			q.push(e + 1)
		}
		assert.Equal(t, 500, q.len())
		assert.True(t, q.has(500))
		assert.False(t, q.has(501))
	})

	t.Run("reset clears the frame", func(t *testing.T) {
		q := newDestroyQueue()
		q.push(1)
		q.push(2)
		q.pop()
		q.reset()

		assert.Equal(t, 0, q.len())
		assert.False(t, q.has(2))

		q.push(2)
		e, ok := q.pop()
		assert.True(t, ok)
		assert.Equal(t, EntityId(2), e)
	})
}

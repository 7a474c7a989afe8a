package bakery

import (
	"container/list"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderQueuePushBackIsFIFO(t *testing.T) {
	q := NewOrderQueue()
	recipe := &Recipe{Name: "r", totalUnitWeight: 1}

	q.PushBack(newOrder("r", recipe, 1, 1))
	q.PushBack(newOrder("r", recipe, 1, 2))
	q.PushBack(newOrder("r", recipe, 1, 3))

	assert.EqualValues(t, 1, q.Front().ArrivalTick)
	first := q.PopFront()
	assert.EqualValues(t, 1, first.ArrivalTick)
	assert.EqualValues(t, 2, q.Front().ArrivalTick)
}

func TestOrderQueueInsertInOrderMaintainsAscendingArrival(t *testing.T) {
	q := NewOrderQueue()
	recipe := &Recipe{Name: "r", totalUnitWeight: 1}

	q.InsertInOrder(newOrder("r", recipe, 1, 5))
	q.InsertInOrder(newOrder("r", recipe, 1, 9))
	q.InsertInOrder(newOrder("r", recipe, 1, 2)) // promoted order, arrived earlier

	var ticks []uint32
	q.Each(func(_ *list.Element, o *Order) bool {
		ticks = append(ticks, o.ArrivalTick)
		return true
	})

	assert.Equal(t, []uint32{2, 5, 9}, ticks)
}

func TestOrderQueueHasRecipe(t *testing.T) {
	q := NewOrderQueue()
	recipeA := &Recipe{Name: "a", totalUnitWeight: 1}
	recipeB := &Recipe{Name: "b", totalUnitWeight: 1}

	q.PushBack(newOrder("a", recipeA, 1, 1))
	assert.True(t, q.HasRecipe("a"))
	assert.False(t, q.HasRecipe("b"))

	q.PushBack(newOrder("b", recipeB, 1, 2))
	assert.True(t, q.HasRecipe("b"))
}

func TestOrderQueueRemove(t *testing.T) {
	q := NewOrderQueue()
	recipe := &Recipe{Name: "r", totalUnitWeight: 1}

	e := q.PushBack(newOrder("r", recipe, 1, 1))
	q.PushBack(newOrder("r", recipe, 1, 2))
	require.Equal(t, 2, q.Len())

	removed := q.Remove(e)
	assert.EqualValues(t, 1, removed.ArrivalTick)
	assert.Equal(t, 1, q.Len())
}

func TestNewOrderComputesWeight(t *testing.T) {
	recipe := &Recipe{Name: "cake", totalUnitWeight: 15}
	o := newOrder("cake", recipe, 3, 7)
	assert.EqualValues(t, 45, o.Weight)
	assert.EqualValues(t, 7, o.ArrivalTick)
	assert.NotEqual(t, o.TraceID.String(), "")
}

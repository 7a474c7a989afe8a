package bakery

import (
	"container/list"

	"github.com/google/uuid"
)

// Order is one order placement: a quantity of a resolved recipe, the tick it
// arrived on, and its total weight (qty * recipe.TotalUnitWeight()), cached
// at placement time since it never changes afterward.
type Order struct {
	TraceID     uuid.UUID
	RecipeName  string
	Recipe      *Recipe
	Qty         uint32
	ArrivalTick uint32
	Weight      uint64
}

func newOrder(recipeName string, recipe *Recipe, qty uint32, arrivalTick uint32) *Order {
	return &Order{
		TraceID:     uuid.New(),
		RecipeName:  recipeName,
		Recipe:      recipe,
		Qty:         qty,
		ArrivalTick: arrivalTick,
		Weight:      uint64(qty) * recipe.TotalUnitWeight(),
	}
}

// OrderQueue wraps container/list.List to back both the WaitingQueue (pure
// FIFO) and the ReadyQueue (kept sorted by ArrivalTick ascending, since
// promotion can insert an older order after younger ones already in the
// queue).
type OrderQueue struct {
	l *list.List
}

func NewOrderQueue() *OrderQueue {
	return &OrderQueue{l: list.New()}
}

func (q *OrderQueue) Len() int {
	return q.l.Len()
}

// PushBack appends to the tail unconditionally -- the WaitingQueue's only
// insertion mode, and the fallback for ReadyQueue when arrival order is
// already increasing.
func (q *OrderQueue) PushBack(o *Order) *list.Element {
	return q.l.PushBack(o)
}

// InsertInOrder inserts o before the first element whose ArrivalTick is
// greater than o's, preserving ascending ArrivalTick order. Restock
// promotion can add an order that arrived earlier than orders already
// sitting in the ReadyQueue (orders placed after it that were producible
// at once and went straight to the ReadyQueue), so a plain PushBack
// would violate the ReadyQueue's ordering invariant.
func (q *OrderQueue) InsertInOrder(o *Order) *list.Element {
	for e := q.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*Order).ArrivalTick > o.ArrivalTick {
			return q.l.InsertBefore(o, e)
		}
	}
	return q.l.PushBack(o)
}

// Front returns the head order, or nil if the queue is empty.
func (q *OrderQueue) Front() *Order {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Order)
}

// PopFront removes and returns the head order, or nil if the queue is empty.
func (q *OrderQueue) PopFront() *Order {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	return q.l.Remove(e).(*Order)
}

// Remove detaches e from the queue and returns its order.
func (q *OrderQueue) Remove(e *list.Element) *Order {
	return q.l.Remove(e).(*Order)
}

// Each visits every order head-to-tail, stopping early if fn returns false.
func (q *OrderQueue) Each(fn func(e *list.Element, o *Order) bool) {
	for e := q.l.Front(); e != nil; {
		next := e.Next()
		if !fn(e, e.Value.(*Order)) {
			return
		}
		e = next
	}
}

// HasRecipe reports whether any queued order references recipeName, used to
// enforce the "a recipe with pending orders cannot be removed" rule.
func (q *OrderQueue) HasRecipe(recipeName string) bool {
	found := false
	q.Each(func(_ *list.Element, o *Order) bool {
		if o.RecipeName == recipeName {
			found = true
			return false
		}
		return true
	})
	return found
}

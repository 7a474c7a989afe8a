package bakery

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(period uint32, capacity uint64) *Dispatcher {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return NewDispatcher(period, capacity, HashConfig{}, logrus.NewEntry(l))
}

// TestScenarioBasicAcceptAndDispatch follows scenario 1.
func TestScenarioBasicAcceptAndDispatch(t *testing.T) {
	d := newTestDispatcher(2, 100)

	require.True(t, d.AddRecipe("cake", []RecipeLine{{Ingredient: "flour", Weight: 10}}))
	d.Advance() // tick 1

	d.Restock([]RestockTriple{{Ingredient: "flour", Qty: 50, Expiry: 5}})
	result := d.Advance() // tick 2, truck due, ready empty -> empty truck
	require.NotNil(t, result)
	assert.True(t, result.Empty)

	outcome := d.PlaceOrder("cake", 3)
	assert.Equal(t, OrderAccepted, outcome)
	d.Advance() // tick 3, not a multiple of 2

	result = d.Advance() // tick 4, dispatches the order placed at tick 3
	require.NotNil(t, result)
	require.False(t, result.Empty)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, DispatchLine{ArrivalTick: 2, RecipeName: "cake", Qty: 3}, result.Lines[0])
}

func TestScenarioInsufficientStockThenPromote(t *testing.T) {
	d := newTestDispatcher(10, 1000)

	require.True(t, d.AddRecipe("bun", []RecipeLine{{Ingredient: "sugar", Weight: 5}}))
	d.Advance() // tick 1

	outcome := d.PlaceOrder("bun", 4)
	assert.Equal(t, OrderAccepted, outcome)
	assert.Equal(t, 1, d.waiting.Len())
	d.Advance() // tick 2

	d.Restock([]RestockTriple{{Ingredient: "sugar", Qty: 20, Expiry: 50}})
	assert.Equal(t, 0, d.waiting.Len(), "order must be promoted to ready")
	assert.Equal(t, 1, d.ready.Len())

	front := d.ready.Front()
	require.NotNil(t, front)
	assert.EqualValues(t, 1, front.ArrivalTick)
}

func TestRemoveRecipeBlockedByPendingOrders(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	require.True(t, d.AddRecipe("pie", []RecipeLine{{Ingredient: "apple", Weight: 2}}))
	d.Advance()

	d.PlaceOrder("pie", 1)
	d.Advance()

	assert.Equal(t, RemovePendingOrders, d.RemoveRecipe("pie"))
}

func TestRemoveRecipeNotPresent(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	assert.Equal(t, RemoveNotPresent, d.RemoveRecipe("ghost"))
}

func TestAddRecipeIgnoredOnCollision(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	require.True(t, d.AddRecipe("pie", []RecipeLine{{Ingredient: "apple", Weight: 2}}))
	assert.False(t, d.AddRecipe("pie", []RecipeLine{{Ingredient: "apple", Weight: 3}}))
}

func TestOrderRejectedOnUnknownRecipeOrZeroQty(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	assert.Equal(t, OrderRejected, d.PlaceOrder("nope", 1))

	require.True(t, d.AddRecipe("pie", []RecipeLine{{Ingredient: "apple", Weight: 2}}))
	assert.Equal(t, OrderRejected, d.PlaceOrder("pie", 0))
}

func TestTwoPhaseAvailabilityCheckIsAtomicOnFailure(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	require.True(t, d.AddRecipe("cake", []RecipeLine{
		{Ingredient: "flour", Weight: 10},
		{Ingredient: "eggs", Weight: 1000},
	}))
	d.Restock([]RestockTriple{{Ingredient: "flour", Qty: 100, Expiry: 50}})

	flourBefore := d.Warehouse.Slot("flour").TotalQty()

	d.PlaceOrder("cake", 1) // eggs insufficient -> check fails without consuming flour; order waits

	assert.Equal(t, flourBefore, d.Warehouse.Slot("flour").TotalQty())
	assert.Equal(t, 1, d.waiting.Len())
}

// TestTruckCapacityStrictPrefix follows scenario 5: a later,
// lighter order is never pulled in after an earlier order overflows
// capacity, even though it would fit on its own.
func TestTruckCapacityStrictPrefix(t *testing.T) {
	d := newTestDispatcher(5, 100)
	require.True(t, d.AddRecipe("a", []RecipeLine{{Ingredient: "x", Weight: 1}}))
	require.True(t, d.AddRecipe("b", []RecipeLine{{Ingredient: "x", Weight: 1}}))
	require.True(t, d.AddRecipe("c", []RecipeLine{{Ingredient: "x", Weight: 1}}))
	d.Restock([]RestockTriple{{Ingredient: "x", Qty: 1000, Expiry: 100}})

	d.PlaceOrder("a", 60) // weight 60
	d.PlaceOrder("b", 50) // weight 50, cumulative 110 > 100, stops the scan
	d.PlaceOrder("c", 10) // weight 10, would fit alone but never reached

	var result *TruckResult
	for i := 0; i < 5; i++ {
		result = d.Advance()
	}

	require.NotNil(t, result)
	require.False(t, result.Empty)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "a", result.Lines[0].RecipeName)
	assert.Equal(t, 2, d.ready.Len(), "b and c remain behind the overflow point")
}

func TestTruckDispatchOrderingAndPrefix(t *testing.T) {
	d := newTestDispatcher(1, 100)
	require.True(t, d.AddRecipe("heavy", []RecipeLine{{Ingredient: "x", Weight: 60}}))
	require.True(t, d.AddRecipe("mid", []RecipeLine{{Ingredient: "x", Weight: 50}}))
	require.True(t, d.AddRecipe("light", []RecipeLine{{Ingredient: "x", Weight: 10}}))
	d.Restock([]RestockTriple{{Ingredient: "x", Qty: 10000, Expiry: 1000}})

	d.PlaceOrder("heavy", 1) // weight 60
	d.PlaceOrder("mid", 1)   // weight 50
	d.PlaceOrder("light", 1) // weight 10

	result := d.Advance()
	require.NotNil(t, result)
	require.False(t, result.Empty)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "heavy", result.Lines[0].RecipeName)

	assert.Equal(t, 2, d.ready.Len(), "mid and light remain, strict prefix excludes them")
}

func TestTruckDispatchEmptyWhenReadyQueueEmpty(t *testing.T) {
	d := newTestDispatcher(1, 100)
	result := d.Advance()
	require.NotNil(t, result)
	assert.True(t, result.Empty)
}

// TestTruckDispatchWeightDescArrivalAscTiebreak follows scenario 6:
// equal-weight orders dispatch in arrival order.
func TestTruckDispatchWeightDescArrivalAscTiebreak(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	require.True(t, d.AddRecipe("same", []RecipeLine{{Ingredient: "x", Weight: 40}}))
	d.Restock([]RestockTriple{{Ingredient: "x", Qty: 10000, Expiry: 1000}})

	for d.Now() < 7 {
		d.Advance()
	}
	d.PlaceOrder("same", 1) // arrival_tick 7

	for d.Now() < 9 {
		d.Advance()
	}
	d.PlaceOrder("same", 1) // arrival_tick 9

	var result *TruckResult
	for d.Now() < 100 {
		result = d.Advance()
	}

	require.NotNil(t, result)
	require.False(t, result.Empty)
	require.Len(t, result.Lines, 2)
	assert.EqualValues(t, 7, result.Lines[0].ArrivalTick)
	assert.EqualValues(t, 9, result.Lines[1].ArrivalTick)
}

func TestSortByWeightDescArrivalAscStability(t *testing.T) {
	recipe := &Recipe{Name: "r", totalUnitWeight: 1}
	orders := []*Order{
		{RecipeName: "r", Recipe: recipe, ArrivalTick: 9, Weight: 40},
		{RecipeName: "r", Recipe: recipe, ArrivalTick: 7, Weight: 40},
		{RecipeName: "r", Recipe: recipe, ArrivalTick: 1, Weight: 60},
	}

	sortByWeightDescArrivalAsc(orders)

	require.Len(t, orders, 3)
	assert.EqualValues(t, 60, orders[0].Weight)
	assert.EqualValues(t, 7, orders[1].ArrivalTick)
	assert.EqualValues(t, 9, orders[2].ArrivalTick)
}

// TestScenarioExpiryBeforeConsumption follows scenario 4: a
// pallet that expires before an order arrives leaves the order waiting,
// not accepted against stock that no longer exists.
func TestScenarioExpiryBeforeConsumption(t *testing.T) {
	d := newTestDispatcher(1, 1000)
	require.True(t, d.AddRecipe("jam", []RecipeLine{{Ingredient: "fruit", Weight: 1}}))
	d.Restock([]RestockTriple{{Ingredient: "fruit", Qty: 10, Expiry: 3}})

	for d.Now() < 3 {
		d.Advance() // carries the tick across the expiry sweep at tick 3
	}

	d.PlaceOrder("jam", 10) // tick 3, pallet already swept away
	assert.Equal(t, 1, d.waiting.Len())
	assert.Equal(t, 0, d.ready.Len())

	result := d.Advance()
	require.NotNil(t, result)
	assert.True(t, result.Empty)
}

// TestExpirySweepRecomputesNextExpiry checks that next_expiry is recomputed
// as the minimum across every remaining non-empty heap after a sweep, not
// just cleared.
func TestExpirySweepRecomputesNextExpiry(t *testing.T) {
	d := newTestDispatcher(100, 1000)
	d.Restock([]RestockTriple{
		{Ingredient: "fruit", Qty: 10, Expiry: 1},
		{Ingredient: "flour", Qty: 10, Expiry: 5},
	})
	assert.EqualValues(t, 1, d.nextExpiry)

	d.Advance() // tick 1: fruit's pallet expires

	assert.EqualValues(t, 5, d.nextExpiry)
	assert.EqualValues(t, 0, d.Warehouse.Slot("fruit").TotalQty())
	assert.EqualValues(t, 10, d.Warehouse.Slot("flour").TotalQty())
}

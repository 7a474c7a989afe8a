package bakery

import (
	"container/list"

	"github.com/sirupsen/logrus"
)

// DispatchLine is one emitted truck-manifest row: <arrival_tick> <recipe> <qty>.
type DispatchLine struct {
	ArrivalTick uint32
	RecipeName  string
	Qty         uint32
}

// TruckResult is the outcome of one truck-dispatch step. Empty is true when
// no order was selected (ready queue empty, or its head alone exceeds
// capacity); Lines is sorted weight-descending, arrival-ascending on ties.
type TruckResult struct {
	Empty bool
	Lines []DispatchLine
}

// Dispatcher is the scheduler: it owns the clock, the cookbook, the
// warehouse, and both order queues, and is the sole mutator of all of them.
type Dispatcher struct {
	Cookbook  *Cookbook
	Warehouse *Warehouse

	ready   *OrderQueue
	waiting *OrderQueue

	now        uint32
	nextExpiry uint32
	truckPeriod   uint32
	truckCapacity uint64

	log *logrus.Entry

	// requireds is the reusable per-order scratch buffer the availability
	// check fills with (ingredient heap, amount-needed) pairs, grown on
	// demand and never reallocated per call.
	requireds []requiredAmount
}

type requiredAmount struct {
	heap   *IngredientHeap
	amount uint64
}

// NewDispatcher wires a fresh scheduler for a run with the given truck
// period P and capacity C, the domain inputs that must come from the first
// stdin line per the external interface contract -- never from config or
// the environment.
func NewDispatcher(truckPeriod uint32, truckCapacity uint64, hashCfg HashConfig, log *logrus.Entry) *Dispatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Dispatcher{
		Cookbook:      NewCookbook(hashCfg),
		Warehouse:     NewWarehouse(hashCfg),
		ready:         NewOrderQueue(),
		waiting:       NewOrderQueue(),
		now:           0,
		nextExpiry:    ExpirySentinel,
		truckPeriod:   truckPeriod,
		truckCapacity: truckCapacity,
		log:           log,
	}
}

func (d *Dispatcher) Now() uint32 { return d.now }

// AddRecipe handles add_recipe NAME (ING QTY)+. Returns true on "added",
// false on "ignored".
func (d *Dispatcher) AddRecipe(name string, lines []RecipeLine) bool {
	ok := d.Cookbook.Add(name, lines, d.Warehouse)
	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "add_recipe", "event": ok}).Debug("add_recipe")
	return ok
}

// RemoveRecipeOutcome enumerates remove_recipe's three possible outputs.
type RemoveRecipeOutcome int

const (
	RemoveRemoved RemoveRecipeOutcome = iota
	RemoveNotPresent
	RemovePendingOrders
)

// RemoveRecipe handles remove_recipe NAME.
func (d *Dispatcher) RemoveRecipe(name string) RemoveRecipeOutcome {
	if _, ok := d.Cookbook.Lookup(name); !ok {
		return RemoveNotPresent
	}
	if d.ready.HasRecipe(name) || d.waiting.HasRecipe(name) {
		return RemovePendingOrders
	}
	d.Cookbook.Remove(name)
	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "remove_recipe", "event": "removed"}).Debug("remove_recipe")
	return RemoveRemoved
}

// RestockTriple is one (ingredient, qty, expiry) group parsed from a restock
// command line.
type RestockTriple struct {
	Ingredient string
	Qty        uint32
	Expiry     uint32
}

// Restock handles restock (ING QTY EXPIRY)+. Invalid triples (qty<=0 or
// expiry<=now) are silently dropped per spec. Always emits "restocked"
// (the caller is responsible for printing that token); promotion happens
// here as a side effect with no output of its own.
func (d *Dispatcher) Restock(triples []RestockTriple) {
	for _, t := range triples {
		if t.Qty == 0 || t.Expiry <= d.now {
			continue
		}
		slot := d.Warehouse.Slot(t.Ingredient)
		slot.Insert(&Pallet{Qty: t.Qty, ExpiryTick: t.Expiry})
		if t.Expiry < d.nextExpiry {
			d.nextExpiry = t.Expiry
		}
	}
	d.promoteWaiting()
	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "restock", "event": "restocked"}).Debug("restock")
}

// promoteWaiting scans the WaitingQueue head-to-tail exactly once,
// detaching and promoting every order that now passes the availability
// check. FIFO scan order is load-bearing: see the design note on restock
// promotion fairness.
func (d *Dispatcher) promoteWaiting() {
	var next *list.Element
	d.waiting.Each(func(e *list.Element, o *Order) bool {
		next = e
		if d.checkAndConsume(o) {
			d.waiting.Remove(e)
			d.ready.InsertInOrder(o)
		}
		return true
	})
	_ = next
}

// OrderOutcome is order's accepted/rejected result.
type OrderOutcome int

const (
	OrderAccepted OrderOutcome = iota
	OrderRejected
)

// PlaceOrder handles order RECIPE QTY.
func (d *Dispatcher) PlaceOrder(recipeName string, qty uint32) OrderOutcome {
	if qty == 0 {
		return OrderRejected
	}
	recipe, ok := d.Cookbook.Lookup(recipeName)
	if !ok {
		return OrderRejected
	}

	o := newOrder(recipeName, recipe, qty, d.now)
	if d.checkAndConsume(o) {
		d.ready.PushBack(o)
	} else {
		d.waiting.PushBack(o)
	}
	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "order", "event": "accepted", "recipe": recipeName}).Debug("order")
	return OrderAccepted
}

// checkAndConsume runs the mandatory two-phase availability check: a
// feasibility scan over every ingredient followed by a commit phase, so a
// failing check never partially consumes stock.
func (d *Dispatcher) checkAndConsume(o *Order) bool {
	d.requireds = d.requireds[:0]
	for _, ing := range o.Recipe.Ingredients {
		need := uint64(ing.Weight) * uint64(o.Qty)
		if ing.Heap.TotalQty() < need {
			return false
		}
		d.requireds = append(d.requireds, requiredAmount{heap: ing.Heap, amount: need})
	}
	for _, r := range d.requireds {
		r.heap.Consume(r.amount)
	}
	return true
}

// Advance runs one tick's post-command hooks in the mandated order: truck
// dispatch (if due), then expiry sweep (if due). Returns the truck result,
// or nil if no dispatch was due this tick.
func (d *Dispatcher) Advance() *TruckResult {
	d.now++

	var result *TruckResult
	if d.now%d.truckPeriod == 0 {
		r := d.dispatchTruck()
		result = &r
	}
	if d.now == d.nextExpiry {
		d.sweepExpired()
	}
	return result
}

// dispatchTruck selects a strict prefix by arrival order up to
// truckCapacity, then a stable sort of the selected prefix by weight
// descending / arrival ascending, then removal of the prefix from the
// ReadyQueue.
func (d *Dispatcher) dispatchTruck() TruckResult {
	var selected []*list.Element
	var cumulative uint64
	d.ready.Each(func(e *list.Element, o *Order) bool {
		if cumulative+o.Weight > d.truckCapacity {
			return false
		}
		cumulative += o.Weight
		selected = append(selected, e)
		return true
	})

	if len(selected) == 0 {
		d.log.WithFields(logrus.Fields{"tick": d.now, "command": "truck", "event": "empty"}).Debug("truck dispatch")
		return TruckResult{Empty: true}
	}

	orders := make([]*Order, len(selected))
	for i, e := range selected {
		orders[i] = e.Value.(*Order)
	}
	sortByWeightDescArrivalAsc(orders)

	lines := make([]DispatchLine, len(orders))
	for i, o := range orders {
		lines[i] = DispatchLine{ArrivalTick: o.ArrivalTick, RecipeName: o.RecipeName, Qty: o.Qty}
	}

	for _, e := range selected {
		d.ready.Remove(e)
	}

	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "truck", "event": "dispatched", "count": len(lines)}).Debug("truck dispatch")
	return TruckResult{Lines: lines}
}

// sortByWeightDescArrivalAsc is an explicit merge sort: stable, O(n log n).
// A stable stdlib sort with the same two-key comparator would be equally
// correct; merge sort is kept because it keeps the stability guarantee
// textually obvious rather than relying on a library contract.
func sortByWeightDescArrivalAsc(orders []*Order) {
	if len(orders) < 2 {
		return
	}
	mid := len(orders) / 2
	left := append([]*Order(nil), orders[:mid]...)
	right := append([]*Order(nil), orders[mid:]...)
	sortByWeightDescArrivalAsc(left)
	sortByWeightDescArrivalAsc(right)
	merge(orders, left, right)
}

func merge(dst, left, right []*Order) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if lessForDispatch(left[i], right[j]) {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	for i < len(left) {
		dst[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		dst[k] = right[j]
		j++
		k++
	}
}

// lessForDispatch orders a before b: heavier first, earlier arrival first
// on a weight tie.
func lessForDispatch(a, b *Order) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	return a.ArrivalTick < b.ArrivalTick
}

// sweepExpired expires every due pallet across the whole
// warehouse, then recompute next_expiry as the new minimum.
func (d *Dispatcher) sweepExpired() {
	d.Warehouse.Each(func(_ string, h *IngredientHeap) {
		h.Expire(d.now)
	})
	d.nextExpiry = d.Warehouse.NextExpiry()
	d.log.WithFields(logrus.Fields{"tick": d.now, "command": "expiry", "event": "swept"}).Debug("expiry sweep")
}

package bakery

import (
	"container/heap"
	"math"
)

// ExpirySentinel is the "no pallet expires" value for next-expiry tracking,
// the Go equivalent of main.c's UINT_MAX sentinel.
const ExpirySentinel = math.MaxUint32

// Pallet is a delivered batch of one ingredient. It is never stored once its
// Qty reaches zero -- depletion removes it from its heap immediately.
type Pallet struct {
	Qty        uint32
	ExpiryTick uint32
}

// palletHeap is a container/heap min-heap on ExpiryTick.
type palletHeap []*Pallet

func (h palletHeap) Len() int            { return len(h) }
func (h palletHeap) Less(i, j int) bool  { return h[i].ExpiryTick < h[j].ExpiryTick }
func (h palletHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *palletHeap) Push(x interface{}) { *h = append(*h, x.(*Pallet)) }
func (h *palletHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// IngredientHeap is the warehouse's per-ingredient record: a min-heap of
// pallets ordered by expiry plus a cached aggregate quantity. totalQty is
// the single source of truth for availability checks -- it is updated by
// every mutating operation below and never recomputed by summation.
type IngredientHeap struct {
	pallets  palletHeap
	totalQty uint64
}

func newIngredientHeap() *IngredientHeap {
	return &IngredientHeap{}
}

// TotalQty returns the cached sum of all stored pallets' Qty.
func (h *IngredientHeap) TotalQty() uint64 {
	return h.totalQty
}

// Peek returns the pallet closest to expiry, or nil if the heap is empty.
func (h *IngredientHeap) Peek() *Pallet {
	if len(h.pallets) == 0 {
		return nil
	}
	return h.pallets[0]
}

// Insert adds a pallet and restores the heap property.
func (h *IngredientHeap) Insert(p *Pallet) {
	heap.Push(&h.pallets, p)
	h.totalQty += uint64(p.Qty)
}

func (h *IngredientHeap) popRoot() *Pallet {
	p := heap.Pop(&h.pallets).(*Pallet)
	h.totalQty -= uint64(p.Qty)
	return p
}

// Consume removes exactly amount units, always depleting the
// closest-to-expiry pallet first. The caller must guarantee
// amount <= TotalQty(); violating that is a programming error, not a
// recoverable domain outcome (the two-phase availability check in
// scheduler.go exists precisely so this precondition always holds).
func (h *IngredientHeap) Consume(amount uint64) {
	for amount > 0 {
		root := h.Peek()
		if root == nil {
			return
		}
		if uint64(root.Qty) > amount {
			root.Qty -= uint32(amount)
			h.totalQty -= amount
			return
		}
		popped := h.popRoot()
		amount -= uint64(popped.Qty)
	}
}

// Expire drops every pallet whose ExpiryTick equals now. Strict equality is
// sufficient: the scheduler's expiry sweep runs every tick a pallet becomes
// due, so an overdue pallet (ExpiryTick < now) can never be observed here.
func (h *IngredientHeap) Expire(now uint32) {
	for {
		root := h.Peek()
		if root == nil || root.ExpiryTick != now {
			return
		}
		h.popRoot()
	}
}

func (h *IngredientHeap) empty() bool {
	return len(h.pallets) == 0
}

// Warehouse maps ingredient name to IngredientHeap. Every ingredient named
// by a live Recipe has an entry here, possibly with an empty heap.
type Warehouse struct {
	table *hashTable[*IngredientHeap]
}

// HashConfig tunes the underlying separate-chaining hashmap. Zero values
// fall back to the original defaults (32-slot growth blocks, 0.618 load
// factor), so the domain-observable behavior never depends on this being
// set.
type HashConfig struct {
	BlockSize  int
	LoadFactor float64
}

func NewWarehouse(cfg HashConfig) *Warehouse {
	return &Warehouse{table: newHashTable[*IngredientHeap](cfg.BlockSize, cfg.LoadFactor)}
}

// Slot returns the existing heap for ingredient, creating an empty one if
// this is the first reference to it (from a restock or a recipe).
func (w *Warehouse) Slot(ingredient string) *IngredientHeap {
	if node := w.table.Search(ingredient); node != nil {
		return node.Val
	}
	h := newIngredientHeap()
	w.table.Insert(ingredient, h)
	return h
}

// Lookup returns the heap for ingredient without creating it.
func (w *Warehouse) Lookup(ingredient string) (*IngredientHeap, bool) {
	node := w.table.Search(ingredient)
	if node == nil {
		return nil, false
	}
	return node.Val, true
}

// Each visits every ingredient slot, including empty ones.
func (w *Warehouse) Each(fn func(ingredient string, h *IngredientHeap)) {
	w.table.Range(fn)
}

// NextExpiry recomputes the minimum ExpiryTick across all non-empty heaps,
// or ExpirySentinel if every heap is empty.
func (w *Warehouse) NextExpiry() uint32 {
	next := uint32(ExpirySentinel)
	w.Each(func(_ string, h *IngredientHeap) {
		if p := h.Peek(); p != nil && p.ExpiryTick < next {
			next = p.ExpiryTick
		}
	})
	return next
}

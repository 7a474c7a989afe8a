package bakery

import "container/list"

// Snapshot is a frozen, JSON-serializable view of the dispatcher's internal
// state, taken once at EOF. It exists purely for post-run inspection (see
// cmd/pastryforge's inspect subcommand) and as a richer assertion surface
// for tests than stdout alone; nothing in the live simulation ever reads a
// Snapshot back.
type Snapshot struct {
	Now           uint32                `json:"now"`
	NextExpiry    *uint32               `json:"next_expiry,omitempty"`
	Recipes       []RecipeSnapshot      `json:"recipes"`
	Ingredients   []IngredientSnapshot  `json:"ingredients"`
	ReadyOrders   []OrderSnapshot       `json:"ready_orders"`
	WaitingOrders []OrderSnapshot       `json:"waiting_orders"`
}

type RecipeSnapshot struct {
	Name            string   `json:"name"`
	Ingredients     []string `json:"ingredients"`
	TotalUnitWeight uint64   `json:"total_unit_weight"`
}

type IngredientSnapshot struct {
	Name     string   `json:"name"`
	TotalQty uint64   `json:"total_qty"`
	Pallets  []Pallet `json:"pallets"`
}

type OrderSnapshot struct {
	TraceID     string `json:"trace_id"`
	Recipe      string `json:"recipe"`
	Qty         uint32 `json:"qty"`
	ArrivalTick uint32 `json:"arrival_tick"`
	Weight      uint64 `json:"weight"`
}

// Snapshot captures the dispatcher's entire state. Reinstates the debug
// dump tooling main.c left commented out (print_cookbook / print_warehouse
// / print_queue / print_2D_heap), as a structured value rather than ad hoc
// stdout text.
func (d *Dispatcher) Snapshot() Snapshot {
	s := Snapshot{Now: d.now}
	if d.nextExpiry != ExpirySentinel {
		ne := d.nextExpiry
		s.NextExpiry = &ne
	}

	d.Cookbook.table.Range(func(name string, r *Recipe) {
		names := make([]string, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			names[i] = ing.Name
		}
		s.Recipes = append(s.Recipes, RecipeSnapshot{
			Name:            name,
			Ingredients:     names,
			TotalUnitWeight: r.TotalUnitWeight(),
		})
	})

	d.Warehouse.Each(func(name string, h *IngredientHeap) {
		pallets := make([]Pallet, len(h.pallets))
		for i, p := range h.pallets {
			pallets[i] = *p
		}
		s.Ingredients = append(s.Ingredients, IngredientSnapshot{
			Name:     name,
			TotalQty: h.TotalQty(),
			Pallets:  pallets,
		})
	})

	s.ReadyOrders = snapshotOrders(d.ready)
	s.WaitingOrders = snapshotOrders(d.waiting)

	return s
}

func snapshotOrders(q *OrderQueue) []OrderSnapshot {
	var out []OrderSnapshot
	q.Each(func(_ *list.Element, o *Order) bool {
		out = append(out, OrderSnapshot{
			TraceID:     o.TraceID.String(),
			Recipe:      o.RecipeName,
			Qty:         o.Qty,
			ArrivalTick: o.ArrivalTick,
			Weight:      o.Weight,
		})
		return true
	})
	return out
}

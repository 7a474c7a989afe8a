// Package generate emits a synthetic command script in the documented input
// grammar, for use as test input to the simulator. It shares no state with
// internal/bakery -- it is a text generator, not a second runtime.
//
// Grounded on runner/runner.go's rate-driven load generator and its
// distuv.Poisson{Lambda: rate} draw. Here every non-restock tick emits
// exactly one order line; the Poisson draw (at least 1) only bounds that
// order's quantity, which is drawn uniformly from 1..draw+1.
package generate

import (
	"fmt"
	"io"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Options configures a generated script.
type Options struct {
	Period       uint32  // truck period P
	Capacity     uint64  // truck capacity C
	Ticks        int     // number of restock/order lines to emit after the add_recipe lines
	OrderRate    float64 // Poisson lambda of the draw that bounds each order's quantity
	RestockEvery int     // emit one restock line every N ticks
	Seed         int64
}

var sampleIngredients = []struct {
	name   string
	weight uint32
}{
	{"flour", 10},
	{"sugar", 5},
	{"eggs", 2},
	{"butter", 8},
}

var sampleRecipes = []string{"cake", "bun", "pie", "croissant"}

// Write emits the header line, one add_recipe line per sample recipe, and
// Ticks further restock/order lines to w.
func (o Options) Write(w io.Writer) error {
	if o.RestockEvery <= 0 {
		o.RestockEvery = 5
	}
	rng := rand.New(rand.NewSource(o.Seed))
	dist := distuv.Poisson{Lambda: o.OrderRate, Src: rng}

	if _, err := fmt.Fprintf(w, "%d %d\n", o.Period, o.Capacity); err != nil {
		return err
	}

	for i, name := range sampleRecipes {
		ing := sampleIngredients[i%len(sampleIngredients)]
		if _, err := fmt.Fprintf(w, "add_recipe %s %s %d\n", name, ing.name, ing.weight); err != nil {
			return err
		}
	}

	for tick := 1; tick <= o.Ticks; tick++ {
		if tick%o.RestockEvery == 0 {
			ing := sampleIngredients[rng.Intn(len(sampleIngredients))]
			qty := 10 + rng.Intn(90)
			expiry := uint32(tick) + uint32(10+rng.Intn(40))
			if _, err := fmt.Fprintf(w, "restock %s %d %d\n", ing.name, qty, expiry); err != nil {
				return err
			}
			continue
		}

		count := int(dist.Rand())
		if count == 0 {
			count = 1
		}
		recipe := sampleRecipes[rng.Intn(len(sampleRecipes))]
		qty := 1 + rng.Intn(count+1)
		if _, err := fmt.Fprintf(w, "order %s %d\n", recipe, qty); err != nil {
			return err
		}
	}
	return nil
}

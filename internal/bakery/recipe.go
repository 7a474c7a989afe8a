package bakery

// ingredientWeight is one line of a recipe: how much of one warehouse
// ingredient a single unit of the recipe consumes. Heap is the resolved
// handle into the warehouse, cached at AddRecipe time so order placement
// never pays a second hash lookup per ingredient.
type ingredientWeight struct {
	Name   string
	Weight uint32
	Heap   *IngredientHeap
}

// Recipe is an ordered ingredient list plus the precomputed per-unit weight
// total truck-dispatch ordering needs.
type Recipe struct {
	Name            string
	Ingredients     []ingredientWeight
	totalUnitWeight uint64
}

// TotalUnitWeight is the combined weight of one unit of this recipe, the sum
// of every ingredient's per-unit weight.
func (r *Recipe) TotalUnitWeight() uint64 {
	return r.totalUnitWeight
}

// Cookbook maps recipe name to Recipe.
type Cookbook struct {
	table *hashTable[*Recipe]
}

func NewCookbook(cfg HashConfig) *Cookbook {
	return &Cookbook{table: newHashTable[*Recipe](cfg.BlockSize, cfg.LoadFactor)}
}

// Lookup returns the recipe named name, if any.
func (c *Cookbook) Lookup(name string) (*Recipe, bool) {
	node := c.table.Search(name)
	if node == nil {
		return nil, false
	}
	return node.Val, true
}

// Add registers a new recipe. It reports false (and adds nothing) if a
// recipe by this name already exists, matching add_recipe's
// "ignored" outcome. warehouse resolves each ingredient's heap handle,
// creating an empty one the first time an ingredient is named by any
// recipe.
func (c *Cookbook) Add(name string, lines []RecipeLine, warehouse *Warehouse) bool {
	if c.table.Search(name) != nil {
		return false
	}

	ingredients := make([]ingredientWeight, 0, len(lines))
	var total uint64
	for _, l := range lines {
		ingredients = append(ingredients, ingredientWeight{
			Name:   l.Ingredient,
			Weight: l.Weight,
			Heap:   warehouse.Slot(l.Ingredient),
		})
		total += uint64(l.Weight)
	}

	c.table.Insert(name, &Recipe{
		Name:            name,
		Ingredients:     ingredients,
		totalUnitWeight: total,
	})
	return true
}

// Remove deletes a recipe by name. It reports false if no such recipe
// exists. Callers are responsible for enforcing "pending orders
// block removal" rule before calling this -- Cookbook itself has no
// visibility into outstanding orders.
func (c *Cookbook) Remove(name string) bool {
	return c.table.Delete(name)
}

// RecipeLine is one (ingredient, weightPerUnit) pair as parsed from an
// add_recipe command, before the ingredient name is resolved against a
// Warehouse.
type RecipeLine struct {
	Ingredient string
	Weight     uint32
}

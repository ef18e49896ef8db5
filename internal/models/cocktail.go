package models

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Ingredients maps ingredient name to a measurement string ("2 oz") and
// keeps the order the recipe listed them in.
type Ingredients = orderedmap.OrderedMap[string, string]

// NewIngredients builds an ordered ingredient list from name, measurement pairs.
func NewIngredients(pairs ...string) *Ingredients {
	om := orderedmap.New[string, string](len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		om.Set(pairs[i], pairs[i+1])
	}
	return om
}

// Cocktail is one recipe from the collection record.
type Cocktail struct {
	NormalName  string       `json:"normal_name"`
	FunName     string       `json:"fun_name"`
	Ingredients *Ingredients `json:"ingredients"`
}

// SafeName is the selection token for this cocktail.
func (c Cocktail) SafeName() string { return SafeName(c.NormalName) }

// IngredientCount returns the number of ingredients, zero when unset.
func (c Cocktail) IngredientCount() int {
	if c.Ingredients == nil {
		return 0
	}
	return c.Ingredients.Len()
}

// CocktailCollection is the {"cocktails":[...]} record.
type CocktailCollection struct {
	Cocktails []Cocktail `json:"cocktails"`
}

// SafeName lowercases name and replaces spaces with underscores. The result is
// the token UIs exchange to say which cocktail is selected.
func SafeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

package category

import "math/rand"

// Category labels a satirical article.
type Category string

const (
	Politics   Category = "politics"
	Technology Category = "technology"
	Lifestyle  Category = "lifestyle"
	Business   Category = "business"
	Cricket    Category = "cricket"
)

// Random is the sentinel callers pass to have a category chosen for them.
const Random = "random"

// All returns the fixed category set in canonical order.
func All() []Category {
	return []Category{Politics, Technology, Lifestyle, Business, Cricket}
}

// Resolve maps a caller-supplied category to the one used for prompting.
// The Random sentinel (or an empty string) picks uniformly from the fixed
// set; anything else is used verbatim.
func Resolve(s string) string {
	if s == "" || s == Random {
		all := All()
		return string(all[rand.Intn(len(all))])
	}
	return s
}

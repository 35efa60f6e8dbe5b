package categories

import "strings"

// FallbackCategoryID is the catch-all bucket for names no keyword rule
// matches.
const FallbackCategoryID = "cat-5"

// inferenceRules are evaluated in priority order; the first rule with a
// matching keyword wins. This is a display heuristic, not an authoritative
// classification — the explicit Product.CategoryID always takes precedence.
var inferenceRules = []struct {
	categoryID string
	keywords   []string
}{
	{"cat-1", []string{"engine", "motor", "drive"}},
	{"cat-2", []string{"sensor", "controller", "switch", "control"}},
	{"cat-3", []string{"pump", "valve", "fluid", "oil"}},
	{"cat-4", []string{"belt", "gear", "coupling", "shaft", "chain", "sprocket"}},
}

// InferCategoryID assigns a category id from keywords in the product name.
func InferCategoryID(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range inferenceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.categoryID
			}
		}
	}
	return FallbackCategoryID
}

package diff

import (
	"sort"
)

// sortSteps orders steps by class rank: objects are created before anything
// uses them and dropped only after their last use. The sort is stable, so
// the differ's sorted-by-name emission order survives within each class.
func sortSteps(steps []Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].rank() < steps[j].rank()
	})
}

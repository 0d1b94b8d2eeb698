package attendant

import (
	"sort"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

// fill sets every category of the locker to the target counts. Categories
// that shrink are set before those that grow, so every intermediate total
// stays within the larger of the old and new totals. On failure the
// categories already set keep their new values.
func fill(locker *cloakroom.Locker, target cloakroom.Items) error {
	current := locker.Items()
	order := cloakroom.Categories()
	sort.SliceStable(order, func(i, j int) bool {
		return delta(current, target, order[i]) < delta(current, target, order[j])
	})

	for _, category := range order {
		if err := locker.Set(category, target.Get(category)); err != nil {
			return err
		}
	}
	return nil
}

func delta(from, to cloakroom.Items, c cloakroom.Category) int {
	return int(to.Get(c)) - int(from.Get(c))
}

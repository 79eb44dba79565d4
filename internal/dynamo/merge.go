package dynamo

import (
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// mergeBodies runs the contact scan over bodies in index order and returns
// the compacted survivors, reusing the backing array. alive is scratch space
// of at least len(bodies).
//
// A pair (i, j), i < j, is in contact when their distance is at most the
// contact distance of body i. The heavier body absorbs the lighter; on equal
// mass body j survives. An absorbed body is skipped for the rest of the
// pass, so chains resolve in index order within one tick.
func mergeBodies(bodies []physics.Body, alive []bool) ([]physics.Body, []Merge) {
	n := len(bodies)
	alive = alive[:n]
	for i := range alive {
		alive[i] = true
	}

	var merges []Merge
	for i := 0; i < n; i++ {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !alive[j] {
				continue
			}
			a, b := &bodies[i], &bodies[j]
			if !(vecmath.Distance(a.Position, b.Position) <= a.ContactDistance()) {
				continue
			}

			if a.Mass > b.Mass {
				a.Absorb(*b)
				alive[j] = false
				merges = append(merges, Merge{Survivor: a.ID, Absorbed: b.ID, Mass: a.Mass})
				continue
			}

			b.Absorb(*a)
			alive[i] = false
			merges = append(merges, Merge{Survivor: b.ID, Absorbed: a.ID, Mass: b.Mass})
			break
		}
	}

	if len(merges) == 0 {
		return bodies, nil
	}

	live := bodies[:0]
	for i := 0; i < n; i++ {
		if alive[i] {
			live = append(live, bodies[i])
		}
	}
	// clear the tail so absorbed bodies are not retained
	for i := len(live); i < n; i++ {
		bodies[i] = physics.Body{}
	}
	return live, merges
}

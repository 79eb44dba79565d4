package dynamo_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/integrators"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

func newDisk(seed int64) *dynamo.Engine {
	cfg := physics.DefaultOrbitConfig()
	bodies, err := physics.Initialize(1000, 1000, cfg, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return dynamo.NewEngine(bodies, cfg.G, integrators.NewLeapfrog())
}

func anchor() physics.Body {
	return physics.NewAnchor(vecmath.Vec{X: 500, Y: 500}, physics.DefaultOrbitConfig())
}

func orbiter(id int, mass float64, pos vecmath.Vec) physics.Body {
	return physics.Body{ID: id, Category: physics.Orbiter, Mass: mass, Radius: 7, Position: pos}
}

func liveIDs(res dynamo.StepResult) []int {
	out := make([]int, len(res.Live))
	for i, v := range res.Live {
		out[i] = v.ID
	}
	return out
}

var _ = Describe("Engine", func() {
	Describe("merging", func() {
		It("merges two coincident orbiters into the heavier one", func() {
			p := vecmath.Vec{X: 700, Y: 500}
			eng := dynamo.NewEngine([]physics.Body{anchor(), orbiter(1, 1, p), orbiter(2, 2, p)}, 1, integrators.NewLeapfrog())

			res := eng.Step(dynamo.DefaultDt)

			Expect(res.Destroyed).To(Equal([]int{1}))
			Expect(liveIDs(res)).To(Equal([]int{0, 2}))
			Expect(res.Live[1].Mass).To(Equal(3.0))
			Expect(res.Merges).To(Equal([]dynamo.Merge{{Survivor: 2, Absorbed: 1, Mass: 3}}))
		})

		It("uses only the first body's radius as the contact distance", func() {
			// 3.4 apart, inside half of body 1's radius of 7
			eng := dynamo.NewEngine([]physics.Body{
				anchor(),
				orbiter(1, 1, vecmath.Vec{X: 800, Y: 500}),
				{ID: 2, Category: physics.Orbiter, Mass: 2, Radius: 0.1, Position: vecmath.Vec{X: 803.4, Y: 500}},
			}, 1, integrators.NewLeapfrog())

			res := eng.Step(dynamo.DefaultDt)
			Expect(res.Destroyed).To(Equal([]int{1}))

			// same pair with the small radius on the first body stays apart
			eng = dynamo.NewEngine([]physics.Body{
				anchor(),
				{ID: 1, Category: physics.Orbiter, Mass: 1, Radius: 0.1, Position: vecmath.Vec{X: 800, Y: 500}},
				orbiter(2, 2, vecmath.Vec{X: 803.4, Y: 500}),
			}, 1, integrators.NewLeapfrog())

			res = eng.Step(dynamo.DefaultDt)
			Expect(res.Destroyed).To(BeEmpty())
			Expect(res.Live).To(HaveLen(3))
		})

		It("lets the later body survive an equal-mass merge", func() {
			p := vecmath.Vec{X: 200, Y: 500}
			eng := dynamo.NewEngine([]physics.Body{anchor(), orbiter(1, 3, p), orbiter(2, 3, p)}, 1, integrators.NewLeapfrog())

			res := eng.Step(dynamo.DefaultDt)
			Expect(res.Destroyed).To(Equal([]int{1}))
			Expect(liveIDs(res)).To(Equal([]int{0, 2}))
			Expect(res.Live[1].Mass).To(Equal(6.0))
		})

		It("cascades chains within one tick in index order", func() {
			p := vecmath.Vec{X: 300, Y: 300}
			eng := dynamo.NewEngine([]physics.Body{
				anchor(),
				orbiter(1, 1, p),
				orbiter(2, 2, p),
				orbiter(3, 1, p),
				orbiter(4, 5, p),
			}, 1, integrators.NewLeapfrog())

			res := eng.Step(dynamo.DefaultDt)

			// 1 into 2 (3), 3 into 2 (4), 2 into 4 (9)
			Expect(res.Destroyed).To(Equal([]int{1, 3, 2}))
			Expect(liveIDs(res)).To(Equal([]int{0, 4}))
			Expect(res.Live[1].Mass).To(Equal(9.0))
		})

		It("absorbs orbiters that reach the anchor and keeps the anchor", func() {
			eng := dynamo.NewEngine([]physics.Body{
				anchor(),
				orbiter(1, 3, vecmath.Vec{X: 510, Y: 500}),
			}, 1, integrators.NewLeapfrog())

			res := eng.Step(dynamo.DefaultDt)
			Expect(res.Destroyed).To(Equal([]int{1}))
			Expect(liveIDs(res)).To(Equal([]int{0}))
			Expect(res.Live[0].Mass).To(Equal(1_000_003.0))
			Expect(res.Live[0].Category).To(Equal(physics.Anchor))
		})

		It("keeps the survivor's own velocity", func() {
			p := vecmath.Vec{X: 700, Y: 500}
			light := orbiter(1, 1, p)
			light.Velocity = vecmath.Vec{X: 100}
			heavy := orbiter(2, 2, p)
			heavy.Velocity = vecmath.Vec{Y: 10}

			eng := dynamo.NewEngine([]physics.Body{anchor(), light, heavy}, 1, integrators.NewLeapfrog())
			eng.Step(dynamo.DefaultDt)

			survivor := eng.Bodies()[1]
			Expect(survivor.ID).To(Equal(2))
			Expect(survivor.Velocity.X).To(BeNumerically("~", 0, 1))
			Expect(survivor.Velocity.Y).To(BeNumerically("~", 10, 1))
		})
	})

	Describe("a live disk", func() {
		It("conserves total mass through every tick", func() {
			for seed := int64(1); seed <= 5; seed++ {
				eng := newDisk(seed)
				initial := physics.TotalMass(eng.Bodies())
				prev := eng.Len()
				for i := 0; i < 400; i++ {
					eng.Step(dynamo.DefaultDt)
					Expect(physics.TotalMass(eng.Bodies())).To(BeNumerically("~", initial, initial*1e-12))
					Expect(eng.Len()).To(BeNumerically("<=", prev))
					prev = eng.Len()
				}
			}
		})

		It("never reports a destroyed id again", func() {
			eng := newDisk(11)
			gone := map[int]bool{}
			for i := 0; i < 1500; i++ {
				res := eng.Step(dynamo.DefaultDt)
				for _, v := range res.Live {
					Expect(gone).NotTo(HaveKey(v.ID))
				}
				for _, id := range res.Destroyed {
					Expect(gone).NotTo(HaveKey(id))
					gone[id] = true
				}
			}
		})

		It("keeps exactly one anchor and unique ids", func() {
			eng := newDisk(4)
			for i := 0; i < 1000; i++ {
				res := eng.Step(dynamo.DefaultDt)
				seen := map[int]bool{}
				anchors := 0
				for _, v := range res.Live {
					Expect(seen).NotTo(HaveKey(v.ID))
					seen[v.ID] = true
					Expect(v.Mass).To(BeNumerically(">", 0))
					if v.Category == physics.Anchor {
						anchors++
					}
				}
				Expect(anchors).To(Equal(1))
			}
			a, ok := eng.Anchor()
			Expect(ok).To(BeTrue())
			Expect(a.ID).To(Equal(0))
		})

		It("is deterministic for a given seed", func() {
			a, b := newDisk(2024), newDisk(2024)
			for i := 0; i < 500; i++ {
				ra, rb := a.Step(dynamo.DefaultDt), b.Step(dynamo.DefaultDt)
				Expect(ra.Destroyed).To(Equal(rb.Destroyed))
				Expect(ra.Live).To(Equal(rb.Live))
			}
			Expect(a.Bodies()).To(Equal(b.Bodies()))
		})

		It("advances tick and time", func() {
			eng := newDisk(1)
			eng.Step(0.01)
			res := eng.Step(0.01)
			Expect(res.Tick).To(Equal(2))
			Expect(res.Time).To(BeNumerically("~", 0.02, 1e-15))
			Expect(eng.Tick()).To(Equal(2))
		})

		It("hands out copies of its bodies", func() {
			eng := newDisk(1)
			bodies := eng.Bodies()
			bodies[0].Mass = -1
			Expect(eng.Bodies()[0].Mass).To(BeNumerically(">", 0))
		})
	})

	Describe("integration", func() {
		It("moves only by velocity on the first tick", func() {
			body := orbiter(1, 3, vecmath.Vec{X: 800, Y: 500})
			body.Velocity = vecmath.Vec{Y: 20}
			eng := dynamo.NewEngine([]physics.Body{anchor(), body}, 1, integrators.NewLeapfrog())

			eng.Step(0.01)
			moved := eng.Bodies()[1]
			Expect(moved.Position.X).To(Equal(800.0))
			Expect(moved.Position.Y).To(BeNumerically("~", 500.2, 1e-12))
			// end-of-tick acceleration points back at the anchor
			Expect(moved.Acceleration.X).To(BeNumerically("<", 0))
		})

		It("keeps a single damped orbit bounded for 10000 ticks", func() {
			cfg := physics.DefaultOrbitConfig()
			a := anchor()
			const distance = 300.0
			o := physics.NewOrbiter(1, a, cfg, cfg.AverageDistance(1000), 0, distance, 0)

			eng := dynamo.NewEngine([]physics.Body{a, o}, cfg.G, integrators.NewLeapfrog())
			minD, maxD := math.Inf(1), 0.0
			for i := 0; i < 10_000; i++ {
				res := eng.Step(dynamo.DefaultDt)
				Expect(res.Live).To(HaveLen(2))
				d := vecmath.Distance(res.Live[0].Position, res.Live[1].Position)
				minD = math.Min(minD, d)
				maxD = math.Max(maxD, d)
			}
			Expect(maxD).To(BeNumerically("<=", 2*distance))
			Expect(minD).To(BeNumerically(">", 0))
			Expect(maxD - minD).To(BeNumerically(">", 10))
		})

		It("leaves a lone body unaccelerated", func() {
			eng := dynamo.NewEngine([]physics.Body{anchor()}, 1, integrators.NewLeapfrog())
			res := eng.Step(0.01)
			Expect(res.Live[0].Position).To(Equal(vecmath.Vec{X: 500, Y: 500}))
			Expect(eng.Bodies()[0].Acceleration).To(Equal(vecmath.Zero))
		})
	})
})

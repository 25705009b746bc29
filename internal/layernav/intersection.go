package layernav

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundaryCheck selects whether a hit must lie inside the bounded region of a surface.
type BoundaryCheck uint8

const (
	BoundaryStrict  BoundaryCheck = iota // hit must be inside the bounds
	BoundaryRelaxed                      // any point of the infinite extension is accepted
)

func (bc BoundaryCheck) String() string {
	if bc == BoundaryRelaxed {
		return "relaxed"
	}
	return "strict"
}

// NavDirection is the propagation direction relative to the track momentum.
type NavDirection int8

const (
	Opposite NavDirection = -1
	Any      NavDirection = 0
	Along    NavDirection = 1
)

func (d NavDirection) String() string {
	switch d {
	case Opposite:
		return "opposite"
	case Along:
		return "along"
	default:
		return "any"
	}
}

// Intersection is the outcome of a ray/surface estimate.
// Valid == false means there is no hit under the requested containment mode.
type Intersection struct {
	Position   r3.Vec
	PathLength Real
	Valid      bool
}

// SurfaceIntersection is one element of a compatibility search result.
type SurfaceIntersection struct {
	Intersection
	Surface   Surface
	Direction NavDirection
}

// sortIntersections orders by ascending signed path length, keeping insertion order on ties.
func sortIntersections(xs []SurfaceIntersection) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].PathLength < xs[j].PathLength
	})
}

// solutionOrder returns the candidate path lengths in the order they should be tried:
// forward ones nearest first when forced, otherwise nearest to the origin first.
func solutionOrder(forceDir bool, ss ...Real) []Real {
	out := make([]Real, 0, len(ss))
	for _, s := range ss {
		if forceDir && s < 0 {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i], out[j]
		if ai < 0 {
			ai = -ai
		}
		if aj < 0 {
			aj = -aj
		}
		return ai < aj
	})
	return out
}

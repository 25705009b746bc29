package layernav

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneSurface lies in the local XY plane; local Z is its normal.
type PlaneSurface struct {
	surfaceBase
	bounds Bounds
}

// NewPlaneSurface builds a plane. A nil bounds means an unbounded plane.
func NewPlaneSurface(name string, tr Transform3, bounds Bounds) (*PlaneSurface, error) {
	if bounds == nil {
		bounds = InfiniteBounds{}
	}
	if _, ok := bounds.(*CylinderBounds); ok {
		return nil, errors.Errorf("plane %q: cylinder bounds are not planar", name)
	}
	ps := &PlaneSurface{surfaceBase: newSurfaceBase(name, tr), bounds: bounds}
	DebugLog("Created plane", zapSurface(ps)...)
	return ps, nil
}

func (p *PlaneSurface) Type() SurfaceType { return SurfacePlane }
func (p *PlaneSurface) Bounds() Bounds    { return p.bounds }
func (p *PlaneSurface) Normal() r3.Vec    { return p.transform.DirToGlobal(vec(0, 0, 1)) }

func (p *PlaneSurface) Intersect(O, D r3.Vec, forceDir bool, bc BoundaryCheck) Intersection {
	return intersectPlanar(&p.surfaceBase, p.bounds, O, D, forceDir, bc)
}

func (p *PlaneSurface) InsideBounds(g r3.Vec, bc BoundaryCheck) bool {
	return p.bounds.Inside(p.transform.ToLocal(g), bc)
}

func (p *PlaneSurface) IsOnSurface(g r3.Vec, bc BoundaryCheck) bool {
	return onPlanar(&p.surfaceBase, p.bounds, g, bc)
}

func (p *PlaneSurface) Extent() (r3.Vec, r3.Vec) {
	return p.transform.extent(p.bounds.localBox())
}

// intersectPlanar solves the ray against the local z = 0 plane.
func intersectPlanar(b *surfaceBase, bounds Bounds, O, D r3.Vec, forceDir bool, bc BoundaryCheck) Intersection {
	Ol := b.transform.ToLocal(O)
	Dl := b.transform.DirToLocal(D)
	if math.Abs(Dl.Z) < parallelEps {
		return Intersection{}
	}
	s := -Ol.Z / Dl.Z
	if forceDir && s < 0 {
		return Intersection{}
	}
	if !bounds.Inside(along(Ol, Dl, s), bc) {
		return Intersection{}
	}
	return Intersection{Position: along(O, D, s), PathLength: s, Valid: true}
}

func onPlanar(b *surfaceBase, bounds Bounds, g r3.Vec, bc BoundaryCheck) bool {
	l := b.transform.ToLocal(g)
	if !scalar.EqualWithinAbs(l.Z, 0, onSurfaceTolerance) {
		return false
	}
	return bounds.Inside(l, bc)
}

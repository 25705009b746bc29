package layernav

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds tests local coordinates against the bounded region of a surface.
type Bounds interface {
	Inside(local r3.Vec, bc BoundaryCheck) bool
	// localBox is the local axis-aligned box enclosing the region.
	localBox() (r3.Vec, r3.Vec)
}

// RectangleBounds: |x| <= HalfX, |y| <= HalfY in the surface plane.
type RectangleBounds struct {
	HalfX, HalfY Real
}

func NewRectangleBounds(halfX, halfY Real) (*RectangleBounds, error) {
	if !(halfX > 0 && halfY > 0) {
		return nil, errors.Errorf("rectangle half lengths must be > 0, got (%.6g, %.6g)", halfX, halfY)
	}
	return &RectangleBounds{HalfX: halfX, HalfY: halfY}, nil
}

func (b *RectangleBounds) Inside(l r3.Vec, bc BoundaryCheck) bool {
	if bc == BoundaryRelaxed {
		return true
	}
	return math.Abs(l.X) <= b.HalfX+boundsTolerance && math.Abs(l.Y) <= b.HalfY+boundsTolerance
}

func (b *RectangleBounds) localBox() (r3.Vec, r3.Vec) {
	return vec(-b.HalfX, -b.HalfY, 0), vec(b.HalfX, b.HalfY, 0)
}

// RadialBounds: RMin <= r <= RMax in the surface plane.
type RadialBounds struct {
	RMin, RMax Real
}

func NewRadialBounds(rMin, rMax Real) (*RadialBounds, error) {
	if rMin < 0 || rMax <= rMin {
		return nil, errors.Errorf("radial bounds need 0 <= rMin < rMax, got (%.6g, %.6g)", rMin, rMax)
	}
	return &RadialBounds{RMin: rMin, RMax: rMax}, nil
}

func (b *RadialBounds) Inside(l r3.Vec, bc BoundaryCheck) bool {
	if bc == BoundaryRelaxed {
		return true
	}
	r := perp(l)
	return r >= b.RMin-boundsTolerance && r <= b.RMax+boundsTolerance
}

func (b *RadialBounds) localBox() (r3.Vec, r3.Vec) {
	return vec(-b.RMax, -b.RMax, 0), vec(b.RMax, b.RMax, 0)
}

// CylinderBounds: a cylinder of Radius around local Z with |z| <= HalfZ.
type CylinderBounds struct {
	Radius, HalfZ Real
}

func NewCylinderBounds(radius, halfZ Real) (*CylinderBounds, error) {
	if !(radius > 0 && halfZ > 0) {
		return nil, errors.Errorf("cylinder radius and half length must be > 0, got (%.6g, %.6g)", radius, halfZ)
	}
	return &CylinderBounds{Radius: radius, HalfZ: halfZ}, nil
}

// Inside only checks z; the radial coordinate is fixed by the surface itself.
func (b *CylinderBounds) Inside(l r3.Vec, bc BoundaryCheck) bool {
	if bc == BoundaryRelaxed {
		return true
	}
	return math.Abs(l.Z) <= b.HalfZ+boundsTolerance
}

func (b *CylinderBounds) localBox() (r3.Vec, r3.Vec) {
	return vec(-b.Radius, -b.Radius, -b.HalfZ), vec(b.Radius, b.Radius, b.HalfZ)
}

// InfiniteBounds accepts everything.
type InfiniteBounds struct{}

func (InfiniteBounds) Inside(r3.Vec, BoundaryCheck) bool { return true }

func (InfiniteBounds) localBox() (r3.Vec, r3.Vec) {
	return vec(-infiniteExtent, -infiniteExtent, 0), vec(infiniteExtent, infiniteExtent, 0)
}

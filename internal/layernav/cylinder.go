package layernav

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// CylinderSurface: radius around local Z, centred on the local origin.
type CylinderSurface struct {
	surfaceBase
	bounds *CylinderBounds
}

func NewCylinderSurface(name string, tr Transform3, bounds *CylinderBounds) (*CylinderSurface, error) {
	if bounds == nil {
		return nil, errNilBounds(name)
	}
	cs := &CylinderSurface{surfaceBase: newSurfaceBase(name, tr), bounds: bounds}
	DebugLog("Created cylinder", zapSurface(cs)...)
	return cs, nil
}

func (c *CylinderSurface) Type() SurfaceType       { return SurfaceCylinder }
func (c *CylinderSurface) Bounds() *CylinderBounds { return c.bounds }
func (c *CylinderSurface) Radius() Real            { return c.bounds.Radius }

// Intersect solves |O_xy + s D_xy|^2 = R^2 in local coordinates and keeps the
// preferred root that passes the boundary check.
func (c *CylinderSurface) Intersect(O, D r3.Vec, forceDir bool, bc BoundaryCheck) Intersection {
	Ol := c.transform.ToLocal(O)
	Dl := c.transform.DirToLocal(D)

	a := Dl.X*Dl.X + Dl.Y*Dl.Y
	if a < parallelEps {
		// parallel to the axis
		return Intersection{}
	}
	b := 2 * (Ol.X*Dl.X + Ol.Y*Dl.Y)
	cc := Ol.X*Ol.X + Ol.Y*Ol.Y - c.bounds.Radius*c.bounds.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return Intersection{}
	}
	sqrtD := math.Sqrt(disc)
	inv2a := 1 / (2 * a)
	s0 := (-b - sqrtD) * inv2a
	s1 := (-b + sqrtD) * inv2a

	for _, s := range solutionOrder(forceDir, s0, s1) {
		if c.bounds.Inside(along(Ol, Dl, s), bc) {
			return Intersection{Position: along(O, D, s), PathLength: s, Valid: true}
		}
	}
	return Intersection{}
}

func (c *CylinderSurface) InsideBounds(g r3.Vec, bc BoundaryCheck) bool {
	return c.bounds.Inside(c.transform.ToLocal(g), bc)
}

func (c *CylinderSurface) IsOnSurface(g r3.Vec, bc BoundaryCheck) bool {
	l := c.transform.ToLocal(g)
	if !scalar.EqualWithinAbs(perp(l), c.bounds.Radius, onSurfaceTolerance) {
		return false
	}
	return c.bounds.Inside(l, bc)
}

// BinningPosition for BinR sits on the shell, elsewhere at the centre.
func (c *CylinderSurface) BinningPosition(bv BinValue) r3.Vec {
	if bv == BinR {
		return c.transform.ToGlobal(vec(c.bounds.Radius, 0, 0))
	}
	return c.Center()
}

func (c *CylinderSurface) Extent() (r3.Vec, r3.Vec) {
	return c.transform.extent(c.bounds.localBox())
}

func errNilBounds(name string) error {
	return errors.Errorf("surface %q: bounds must not be nil", name)
}

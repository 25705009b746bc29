package layernav

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// DiscSurface is a plane bounded by an annulus around its local origin.
type DiscSurface struct {
	surfaceBase
	bounds *RadialBounds
}

func NewDiscSurface(name string, tr Transform3, bounds *RadialBounds) (*DiscSurface, error) {
	if bounds == nil {
		return nil, errNilBounds(name)
	}
	ds := &DiscSurface{surfaceBase: newSurfaceBase(name, tr), bounds: bounds}
	DebugLog("Created disc", zapSurface(ds)...)
	return ds, nil
}

func (d *DiscSurface) Type() SurfaceType     { return SurfaceDisc }
func (d *DiscSurface) Bounds() *RadialBounds { return d.bounds }

func (d *DiscSurface) Intersect(O, D r3.Vec, forceDir bool, bc BoundaryCheck) Intersection {
	return intersectPlanar(&d.surfaceBase, d.bounds, O, D, forceDir, bc)
}

func (d *DiscSurface) InsideBounds(g r3.Vec, bc BoundaryCheck) bool {
	return d.bounds.Inside(d.transform.ToLocal(g), bc)
}

func (d *DiscSurface) IsOnSurface(g r3.Vec, bc BoundaryCheck) bool {
	return onPlanar(&d.surfaceBase, d.bounds, g, bc)
}

// BinningPosition for BinR sits at the mean radius, elsewhere at the centre.
func (d *DiscSurface) BinningPosition(bv BinValue) r3.Vec {
	if bv == BinR {
		r := 0.5 * (d.bounds.RMin + d.bounds.RMax)
		return d.transform.ToGlobal(vec(r, 0, 0))
	}
	return d.Center()
}

func (d *DiscSurface) Extent() (r3.Vec, r3.Vec) {
	return d.transform.extent(d.bounds.localBox())
}

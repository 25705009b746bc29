package layernav

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

type SurfaceType uint8

const (
	SurfaceOther SurfaceType = iota
	SurfacePlane
	SurfaceDisc
	SurfaceCylinder
)

func (t SurfaceType) String() string {
	switch t {
	case SurfacePlane:
		return "plane"
	case SurfaceDisc:
		return "disc"
	case SurfaceCylinder:
		return "cylinder"
	default:
		return "other"
	}
}

// Surface is an immutable bounded shape that can be intersected by a ray.
// Surfaces are owned by the geometry that built them and are shared
// read-only by every search.
type Surface interface {
	ID() uuid.UUID
	Name() string
	Type() SurfaceType
	Center() r3.Vec
	Transform() Transform3
	// Intersect estimates where the ray (position, unit direction) meets the surface.
	// With forceDir only hits with a non-negative path length are valid.
	Intersect(position, direction r3.Vec, forceDir bool, bc BoundaryCheck) Intersection
	InsideBounds(global r3.Vec, bc BoundaryCheck) bool
	IsOnSurface(global r3.Vec, bc BoundaryCheck) bool
	AssociatedMaterial() SurfaceMaterial
	AssociatedDetectorElement() *DetectorElement
	BinningPosition(bv BinValue) r3.Vec
	Extent() (r3.Vec, r3.Vec)

	base() *surfaceBase
}

// surfaceBase holds what every shape shares: identity, placement and associations.
type surfaceBase struct {
	id        uuid.UUID
	name      string
	transform Transform3
	material  SurfaceMaterial
	element   *DetectorElement
}

func newSurfaceBase(name string, tr Transform3) surfaceBase {
	return surfaceBase{id: uuid.New(), name: name, transform: tr}
}

func (b *surfaceBase) base() *surfaceBase { return b }

func (b *surfaceBase) ID() uuid.UUID         { return b.id }
func (b *surfaceBase) Name() string          { return b.name }
func (b *surfaceBase) Transform() Transform3 { return b.transform }
func (b *surfaceBase) Center() r3.Vec        { return b.transform.T }

func (b *surfaceBase) AssociatedMaterial() SurfaceMaterial         { return b.material }
func (b *surfaceBase) AssociatedDetectorElement() *DetectorElement { return b.element }

// SetAssociatedMaterial attaches (or with nil removes) the material marker.
// Only valid during geometry construction.
func (b *surfaceBase) SetAssociatedMaterial(m SurfaceMaterial) { b.material = materialOrNil(m) }

func (b *surfaceBase) BinningPosition(BinValue) r3.Vec { return b.Center() }

func hasMaterial(s Surface) bool { return s.AssociatedMaterial() != nil }

func surfaceName(s Surface) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}

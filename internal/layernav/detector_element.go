package layernav

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DetectorElement links a sensitive surface to the elements sharing its bin
// (bin members, e.g. the second side of a double-sided module) and to the
// elements of adjacent bins (neighbours). The links are set while the
// geometry is assembled and only read by searches.
type DetectorElement struct {
	id         uuid.UUID
	identifier uint64
	thickness  Real
	surface    Surface
	binMembers []*DetectorElement
	neighbours []*DetectorElement
}

// NewDetectorElement attaches a new element to surface. A non-nil material
// becomes the surface material.
func NewDetectorElement(identifier uint64, surface Surface, thickness Real, mat SurfaceMaterial) (*DetectorElement, error) {
	if surface == nil {
		return nil, errors.Errorf("detector element %d: surface must not be nil", identifier)
	}
	if thickness < 0 {
		return nil, errors.Errorf("detector element %d: thickness must be >= 0, got %.6g", identifier, thickness)
	}
	b := surface.base()
	if b.element != nil {
		return nil, errors.Errorf("surface %q already has detector element %d", b.name, b.element.identifier)
	}
	de := &DetectorElement{
		id:         uuid.New(),
		identifier: identifier,
		thickness:  thickness,
		surface:    surface,
	}
	b.element = de
	if mat = materialOrNil(mat); mat != nil {
		b.material = mat
	}
	return de, nil
}

func (d *DetectorElement) ID() uuid.UUID      { return d.id }
func (d *DetectorElement) Identifier() uint64 { return d.identifier }
func (d *DetectorElement) Thickness() Real    { return d.thickness }
func (d *DetectorElement) Surface() Surface   { return d.surface }

func (d *DetectorElement) BinMembers() []*DetectorElement { return d.binMembers }
func (d *DetectorElement) Neighbours() []*DetectorElement { return d.neighbours }

func (d *DetectorElement) SetBinMembers(members []*DetectorElement) { d.binMembers = members }
func (d *DetectorElement) SetNeighbours(neighbours []*DetectorElement) {
	d.neighbours = neighbours
}

package layernav

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// SurfaceIndex is the spatial index of the sensitive surfaces of a layer.
type SurfaceIndex interface {
	// AllObjects returns every indexed surface.
	AllObjects() []Surface
	// ObjectAt returns the surface whose bin contains pos, nil if there is none.
	ObjectAt(pos r3.Vec) Surface
}

// SurfaceArray indexes surfaces with a SurfaceGrid.
type SurfaceArray struct {
	grid     *SurfaceGrid
	surfaces []Surface
}

// NewSurfaceArray fills grid with surfaces and wires the detector element
// neighbourhoods from the resulting bins.
func NewSurfaceArray(grid *SurfaceGrid, surfaces []Surface) (*SurfaceArray, error) {
	if grid == nil {
		return nil, errors.New("surface array needs a grid")
	}
	if err := grid.Fill(surfaces); err != nil {
		return nil, errors.Wrap(err, "filling surface grid")
	}
	grid.AssignNeighbours()
	return &SurfaceArray{grid: grid, surfaces: surfaces}, nil
}

func (a *SurfaceArray) AllObjects() []Surface {
	if a == nil {
		return nil
	}
	return a.surfaces
}

func (a *SurfaceArray) ObjectAt(pos r3.Vec) Surface {
	if a == nil || a.grid == nil {
		return nil
	}
	content := a.grid.Lookup(pos)
	if len(content) == 0 {
		return nil
	}
	return content[0]
}

func (a *SurfaceArray) Grid() *SurfaceGrid {
	if a == nil {
		return nil
	}
	return a.grid
}

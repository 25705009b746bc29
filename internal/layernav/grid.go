package layernav

import (
	"math"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
)

// BinValue selects the global coordinate an axis bins in.
type BinValue uint8

const (
	BinX BinValue = iota
	BinY
	BinZ
	BinR
	BinPhi
)

func (bv BinValue) String() string {
	switch bv {
	case BinX:
		return "x"
	case BinY:
		return "y"
	case BinZ:
		return "z"
	case BinR:
		return "r"
	default:
		return "phi"
	}
}

func (bv BinValue) project(g r3.Vec) Real {
	switch bv {
	case BinX:
		return g.X
	case BinY:
		return g.Y
	case BinZ:
		return g.Z
	case BinR:
		return perp(g)
	default:
		return phi(g)
	}
}

type AxisWrap uint8

const (
	AxisOpen   AxisWrap = iota // out of range values have no bin
	AxisClosed                 // values wrap around, e.g. phi
)

// EquidistantAxis splits [Min, Max) into NBins bins of equal width.
type EquidistantAxis struct {
	Min, Max Real
	NBins    int
	Wrap     AxisWrap
	width    Real
}

func NewEquidistantAxis(min, max Real, nBins int, wrap AxisWrap) (EquidistantAxis, error) {
	if nBins <= 0 {
		return EquidistantAxis{}, errors.Errorf("axis needs at least one bin, got %d", nBins)
	}
	if !(max > min) || !isFinite(min) || !isFinite(max) {
		return EquidistantAxis{}, errors.Errorf("axis range must be finite with max > min, got [%.6g, %.6g)", min, max)
	}
	return EquidistantAxis{Min: min, Max: max, NBins: nBins, Wrap: wrap, width: (max - min) / Real(nBins)}, nil
}

// Bin maps x to its bin. On an open axis x == Max falls in the last bin.
// Non-finite values have no bin.
func (a EquidistantAxis) Bin(x Real) (int, bool) {
	if !isFinite(x) || !(a.width > 0) {
		return 0, false
	}
	if a.Wrap == AxisClosed {
		span := a.Max - a.Min
		x = math.Mod(x-a.Min, span)
		if x < 0 {
			x += span
		}
		x += a.Min
	} else if x < a.Min || x > a.Max {
		return 0, false
	}
	b := int((x - a.Min) / a.width)
	if b < 0 {
		return 0, false
	}
	if b >= a.NBins {
		b = a.NBins - 1
	}
	return b, true
}

func (a EquidistantAxis) Center(b int) Real { return a.Min + (Real(b)+0.5)*a.width }

// Neighbours returns b and its adjacent bins, wrapping on closed axes.
func (a EquidistantAxis) Neighbours(b int) []int {
	out := make([]int, 0, 3)
	seen := make(map[int]bool, 3)
	for d := -1; d <= 1; d++ {
		n := b + d
		if a.Wrap == AxisClosed {
			n = ((n % a.NBins) + a.NBins) % a.NBins
		} else if n < 0 || n >= a.NBins {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// GridAxis is an axis bound to the coordinate it bins.
type GridAxis struct {
	EquidistantAxis
	Value BinValue
}

// SurfaceGrid is a 1-3 dimensional binned lookup of surfaces.
type SurfaceGrid struct {
	axes    []GridAxis
	strides []int
	bins    [][]Surface
}

// NewSurfaceGrid validates every axis again, so axes built as struct
// literals get their bin width computed here.
func NewSurfaceGrid(axes ...GridAxis) (*SurfaceGrid, error) {
	if len(axes) == 0 || len(axes) > maxGridDimensions {
		return nil, errors.Errorf("surface grid needs 1 to %d axes, got %d", maxGridDimensions, len(axes))
	}
	checked := make([]GridAxis, len(axes))
	strides := make([]int, len(axes))
	total := 1
	for i := len(axes) - 1; i >= 0; i-- {
		ax, err := NewEquidistantAxis(axes[i].Min, axes[i].Max, axes[i].NBins, axes[i].Wrap)
		if err != nil {
			return nil, errors.Wrapf(err, "grid axis %d (%s)", i, axes[i].Value)
		}
		checked[i] = GridAxis{EquidistantAxis: ax, Value: axes[i].Value}
		strides[i] = total
		total *= ax.NBins
	}
	g := &SurfaceGrid{
		axes:    checked,
		strides: strides,
		bins:    make([][]Surface, total),
	}
	DebugLog("Created surface grid")
	return g, nil
}

func (g *SurfaceGrid) Dimensions() int { return len(g.axes) }
func (g *SurfaceGrid) NumBins() int    { return len(g.bins) }

// localBins maps a global position to per-axis bin indices.
func (g *SurfaceGrid) localBins(pos r3.Vec) ([]int, bool) {
	loc := make([]int, len(g.axes))
	for i, ax := range g.axes {
		b, ok := ax.Bin(ax.Value.project(pos))
		if !ok {
			return nil, false
		}
		loc[i] = b
	}
	return loc, true
}

func (g *SurfaceGrid) globalBin(loc []int) int {
	idx := 0
	for i, b := range loc {
		idx += b * g.strides[i]
	}
	return idx
}

// BinOf returns the global bin of pos, false when it is outside the grid.
func (g *SurfaceGrid) BinOf(pos r3.Vec) (int, bool) {
	loc, ok := g.localBins(pos)
	if !ok {
		return 0, false
	}
	return g.globalBin(loc), true
}

// Fill places each surface in the bin of its binning position.
// Surfaces outside the grid are reported and skipped.
func (g *SurfaceGrid) Fill(surfaces []Surface) error {
	var err error
	for _, s := range surfaces {
		if s == nil {
			continue
		}
		loc := make([]int, len(g.axes))
		ok := true
		for i, ax := range g.axes {
			b, in := ax.Bin(ax.Value.project(s.BinningPosition(ax.Value)))
			if !in {
				ok = false
				break
			}
			loc[i] = b
		}
		if !ok {
			err = multierr.Append(err, errors.Errorf("surface %q is outside the grid", s.Name()))
			continue
		}
		gb := g.globalBin(loc)
		g.bins[gb] = append(g.bins[gb], s)
	}
	return err
}

// Lookup returns the surfaces in the bin containing pos (nil outside the grid).
func (g *SurfaceGrid) Lookup(pos r3.Vec) []Surface {
	gb, ok := g.BinOf(pos)
	if !ok {
		return nil
	}
	return g.bins[gb]
}

func (g *SurfaceGrid) BinContent(bin int) []Surface {
	if bin < 0 || bin >= len(g.bins) {
		return nil
	}
	return g.bins[bin]
}

// NeighbourBins returns bin and every bin adjacent to it along any combination of axes.
func (g *SurfaceGrid) NeighbourBins(bin int) []int {
	loc := make([]int, len(g.axes))
	rest := bin
	for i := range g.axes {
		loc[i] = rest / g.strides[i]
		rest %= g.strides[i]
	}
	out := []int{0}
	for i, ax := range g.axes {
		next := make([]int, 0, len(out)*3)
		for _, partial := range out {
			for _, n := range ax.Neighbours(loc[i]) {
				next = append(next, partial+n*g.strides[i])
			}
		}
		out = next
	}
	sort.Ints(out)
	return out
}

// AssignNeighbours wires the detector elements of the grid. The elements of
// the other surfaces sharing a bin are appended to the bin members, after any
// co-located members set while building the geometry. The elements in the
// adjacent bins become the neighbours.
func (g *SurfaceGrid) AssignNeighbours() {
	for bin, content := range g.bins {
		if len(content) == 0 {
			continue
		}
		nbins := g.NeighbourBins(bin)
		for _, s := range content {
			de := s.AssociatedDetectorElement()
			if de == nil {
				continue
			}
			members := append([]*DetectorElement(nil), de.BinMembers()...)
			for _, o := range content {
				ode := o.AssociatedDetectorElement()
				if o == s || ode == nil || ode == de || slices.Contains(members, ode) {
					continue
				}
				members = append(members, ode)
			}
			de.SetBinMembers(members)

			var neighbours []*DetectorElement
			for _, nb := range nbins {
				if nb == bin {
					continue
				}
				for _, o := range g.bins[nb] {
					if ode := o.AssociatedDetectorElement(); ode != nil && ode != de {
						neighbours = append(neighbours, ode)
					}
				}
			}
			de.SetNeighbours(neighbours)
		}
	}
}

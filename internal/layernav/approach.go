package layernav

import "gonum.org/v1/gonum/spatial/r3"

// ApproachDescriptor holds the boundary surfaces through which a track
// enters or leaves a layer. The set is unordered.
type ApproachDescriptor struct {
	surfaces []Surface
}

func NewApproachDescriptor(surfaces ...Surface) *ApproachDescriptor {
	kept := make([]Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &ApproachDescriptor{surfaces: kept}
}

func (a *ApproachDescriptor) ContainedSurfaces() []Surface {
	if a == nil {
		return nil
	}
	return a.surfaces
}

// ApproachSurface returns the closest approach surface hit ahead of the track.
func (a *ApproachDescriptor) ApproachSurface(pos, dir r3.Vec, bc BoundaryCheck) (SurfaceIntersection, bool) {
	var best SurfaceIntersection
	found := false
	dir = unit(dir)
	for _, s := range a.ContainedSurfaces() {
		sfi := s.Intersect(pos, dir, true, bc)
		if !sfi.Valid || sfi.PathLength <= 0 {
			continue
		}
		if !found || sfi.PathLength < best.PathLength {
			best = SurfaceIntersection{Intersection: sfi, Surface: s, Direction: Along}
			found = true
		}
	}
	return best, found
}

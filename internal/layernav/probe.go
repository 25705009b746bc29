package layernav

import "gonum.org/v1/gonum/spatial/r3"

// probe intersects s and accepts the hit when it is valid and strictly
// below ceiling. The direction tag is Along for positive path lengths.
func probe(s Surface, pos, dir r3.Vec, forceDir bool, bc BoundaryCheck, ceiling Real) (SurfaceIntersection, bool) {
	sfi := s.Intersect(pos, dir, forceDir, bc)
	if !sfi.Valid || !(sfi.PathLength < ceiling) {
		return SurfaceIntersection{}, false
	}
	nd := Opposite
	if sfi.PathLength > 0 {
		nd = Along
	}
	return SurfaceIntersection{Intersection: sfi, Surface: s, Direction: nd}, true
}

// collector accumulates the accepted intersections of one search.
// Each surface is probed at most once.
type collector struct {
	pos, dir   r3.Vec
	forceDir   bool
	bc         BoundaryCheck
	ceiling    Real
	start, end Surface
	seen       map[Surface]struct{}
	out        []SurfaceIntersection
}

func (c *collector) vetoed(s Surface) bool {
	return s == nil || s == c.start || s == c.end
}

func (c *collector) test(s Surface) {
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	if sfi, ok := probe(s, c.pos, c.dir, c.forceDir, c.bc, c.ceiling); ok {
		c.out = append(c.out, sfi)
	}
}

package layernav

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

type bvhLeaf struct {
	min, max r3.Vec
	surface  Surface
}

type BVHNode struct {
	min, max r3.Vec
	left     *BVHNode
	right    *BVHNode
	leafObjs []bvhLeaf // non-nil ⇒ leaf
}

// BVHIndex indexes surfaces by their bounding boxes. It is an alternative to
// the binned SurfaceArray when no regular grid fits the layer.
type BVHIndex struct {
	root     *BVHNode
	surfaces []Surface
	flat     [3]bool // axes along which every indexed box is flat
}

func NewBVHIndex(surfaces []Surface) *BVHIndex {
	objs := make([]bvhLeaf, 0, len(surfaces))
	kept := make([]Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if s == nil {
			continue
		}
		minP, maxP := s.Extent()
		objs = append(objs, bvhLeaf{min: minP, max: maxP, surface: s})
		kept = append(kept, s)
	}
	idx := &BVHIndex{surfaces: kept, flat: flatAxes(objs)}
	idx.root = buildBVH(objs)
	DebugLog("Created surface BVH")
	return idx
}

func (b *BVHIndex) AllObjects() []Surface {
	if b == nil {
		return nil
	}
	return b.surfaces
}

func (b *BVHIndex) Root() *BVHNode {
	if b == nil {
		return nil
	}
	return b.root
}

// ObjectAt returns the surface whose box contains the projection of pos. Axes
// along which every indexed box is flat, like the common normal of planar
// modules, are projected out, so a position in front of a module finds it.
// When boxes overlap the one with the closest projected centre wins.
func (b *BVHIndex) ObjectAt(pos r3.Vec) Surface {
	if b == nil || b.root == nil {
		return nil
	}
	var best Surface
	bestD := 0.0
	stack := []*BVHNode{b.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !aabbContainsOn(n.min, n.max, pos, bvhPadding, b.flat) {
			continue
		}
		if n.leafObjs != nil {
			for i := range n.leafObjs {
				l := n.leafObjs[i]
				if !aabbContainsOn(l.min, l.max, pos, bvhPadding, b.flat) {
					continue
				}
				d := r3.Norm2(dropAxes(r3.Sub(l.surface.Center(), pos), b.flat))
				if best == nil || d < bestD {
					best, bestD = l.surface, d
				}
			}
			continue
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return best
}

func flatAxes(objs []bvhLeaf) [3]bool {
	var flat [3]bool
	if len(objs) == 0 {
		return flat
	}
	for axis := 0; axis < 3; axis++ {
		flat[axis] = true
		for _, o := range objs {
			if component(o.max, axis)-component(o.min, axis) > 2*bvhPadding {
				flat[axis] = false
				break
			}
		}
	}
	return flat
}

func buildBVH(objs []bvhLeaf) *BVHNode {
	return buildBVHRec(objs, 0)
}

func buildBVHRec(objs []bvhLeaf, depth int) *BVHNode {
	n := len(objs)
	if n == 0 {
		return nil
	}
	if n <= BVHMaxLeafSize {
		minP, maxP := objs[0].min, objs[0].max
		for i := 1; i < n; i++ {
			minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		}
		return &BVHNode{min: minP, max: maxP, leafObjs: objs}
	}

	// Union bounds and centroid spreads
	minP, maxP := objs[0].min, objs[0].max
	cmin := leafCentroid(objs[0])
	cmax := cmin
	for i := 1; i < n; i++ {
		minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		c := leafCentroid(objs[i])
		cmin, cmax = vecMin(cmin, c), vecMax(cmax, c)
	}
	axis := longestAxis(r3.Sub(cmax, cmin))

	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if component(r3.Sub(cmax, cmin), axis) <= 1e-18 {
		axis = longestAxis(r3.Sub(maxP, minP))
	}

	// Sort by chosen centroid axis, split at median
	sort.SliceStable(objs, func(i, j int) bool {
		return getCentroidAxis(objs[i], axis) < getCentroidAxis(objs[j], axis)
	})
	mid := n / 2
	left := buildBVHRec(objs[:mid], depth+1)
	right := buildBVHRec(objs[mid:], depth+1)

	return &BVHNode{min: minP, max: maxP, left: left, right: right}
}

func leafCentroid(o bvhLeaf) r3.Vec {
	return vec(centroid(o.min.X, o.max.X), centroid(o.min.Y, o.max.Y), centroid(o.min.Z, o.max.Z))
}

func getCentroidAxis(o bvhLeaf, axis int) Real {
	return component(leafCentroid(o), axis)
}

func longestAxis(ext r3.Vec) int {
	axis := 0
	if ext.Y > component(ext, axis) {
		axis = 1
	}
	if ext.Z > component(ext, axis) {
		axis = 2
	}
	return axis
}

package layernav

import "gonum.org/v1/gonum/spatial/r3"

// aabbContainsOn reports whether p is inside [minP, maxP] grown by pad,
// ignoring the axes marked in skip.
func aabbContainsOn(minP, maxP, p r3.Vec, pad Real, skip [3]bool) bool {
	for axis := 0; axis < 3; axis++ {
		if skip[axis] {
			continue
		}
		c := component(p, axis)
		if c < component(minP, axis)-pad || c > component(maxP, axis)+pad {
			return false
		}
	}
	return true
}

// dropAxes zeroes the components of d marked in skip.
func dropAxes(d r3.Vec, skip [3]bool) r3.Vec {
	if skip[0] {
		d.X = 0
	}
	if skip[1] {
		d.Y = 0
	}
	if skip[2] {
		d.Z = 0
	}
	return d
}

func aabbUnion(aMin, aMax, bMin, bMax r3.Vec) (r3.Vec, r3.Vec) {
	return vecMin(aMin, bMin), vecMax(aMax, bMax)
}

func centroid(a, b Real) Real { return (a + b) * 0.5 }

package layernav

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Real = float64

func vec(x, y, z Real) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// unit returns a unit-length version of v, or v itself when it is zero.
func unit(v r3.Vec) r3.Vec {
	if r3.Norm(v) == 0 {
		return v
	}
	return r3.Unit(v)
}

// along returns p + s*d.
func along(p, d r3.Vec, s Real) r3.Vec { return r3.Add(p, r3.Scale(s, d)) }

func perp(v r3.Vec) Real { return math.Hypot(v.X, v.Y) }

func phi(v r3.Vec) Real { return math.Atan2(v.Y, v.X) }

func vecMin(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func vecMax(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func component(v r3.Vec, axis int) Real {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func fmtVec(v r3.Vec) string { return fmt.Sprintf("(%.5g, %.5g, %.5g)", v.X, v.Y, v.Z) }

package layernav

import "gonum.org/v1/gonum/spatial/r3"

// Transform3 places a surface: local -> global is R*l + T.
type Transform3 struct {
	R  Mat3 // local->global rotation
	RT Mat3 // global->local rotation (R^T)
	T  r3.Vec
}

func Identity3() Transform3 {
	return Transform3{R: I3(), RT: I3()}
}

func Translation3(t r3.Vec) Transform3 {
	tr := Identity3()
	tr.T = t
	return tr
}

func NewTransform3(translation r3.Vec, angles Rot3) Transform3 {
	if angles.IsZero() {
		return Translation3(translation)
	}
	R := rotFromAngles(angles)
	return Transform3{R: R, RT: R.Transpose(), T: translation}
}

func (tr Transform3) ToLocal(g r3.Vec) r3.Vec  { return tr.RT.MulVec(r3.Sub(g, tr.T)) }
func (tr Transform3) ToGlobal(l r3.Vec) r3.Vec { return r3.Add(tr.R.MulVec(l), tr.T) }

func (tr Transform3) DirToLocal(d r3.Vec) r3.Vec  { return tr.RT.MulVec(d) }
func (tr Transform3) DirToGlobal(d r3.Vec) r3.Vec { return tr.R.MulVec(d) }

// extent returns the global axis-aligned box of the local box [lmin, lmax].
func (tr Transform3) extent(lmin, lmax r3.Vec) (r3.Vec, r3.Vec) {
	first := true
	var gmin, gmax r3.Vec
	for i := 0; i < 8; i++ {
		c := lmin
		if i&1 != 0 {
			c.X = lmax.X
		}
		if i&2 != 0 {
			c.Y = lmax.Y
		}
		if i&4 != 0 {
			c.Z = lmax.Z
		}
		g := tr.ToGlobal(c)
		if first {
			gmin, gmax, first = g, g, false
			continue
		}
		gmin, gmax = vecMin(gmin, g), vecMax(gmax, g)
	}
	return gmin, gmax
}

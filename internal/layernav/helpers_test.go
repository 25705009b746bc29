package layernav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func v(x, y, z float64) r3.Vec { return vec(x, y, z) }

func almostEq(a, b Real) bool { return math.Abs(a-b) < 1e-9 }

func vecAlmostEq(a, b r3.Vec) bool {
	return almostEq(a.X, b.X) && almostEq(a.Y, b.Y) && almostEq(a.Z, b.Z)
}

func silicon(t *testing.T) SurfaceMaterial {
	t.Helper()
	m, err := NewHomogeneousMaterial(MaterialProperties{Thickness: 0.15, X0: 93.6, L0: 465.2, A: 28.09, Z: 14, Rho: 2.33})
	require.NoError(t, err)
	return m
}

// zPlane builds a plane normal to z centred at c; hx == 0 means unbounded.
func zPlane(t *testing.T, name string, c r3.Vec, hx, hy Real) *PlaneSurface {
	t.Helper()
	var b Bounds
	if hx > 0 {
		rb, err := NewRectangleBounds(hx, hy)
		require.NoError(t, err)
		b = rb
	}
	p, err := NewPlaneSurface(name, Translation3(c), b)
	require.NoError(t, err)
	return p
}

func element(t *testing.T, s Surface, id uint64) *DetectorElement {
	t.Helper()
	de, err := NewDetectorElement(id, s, 0.15, nil)
	require.NoError(t, err)
	return de
}

// listIndex is a fixed SurfaceIndex: every surface, one answer for ObjectAt.
type listIndex struct {
	all []Surface
	at  Surface
}

func (l *listIndex) AllObjects() []Surface   { return l.all }
func (l *listIndex) ObjectAt(r3.Vec) Surface { return l.at }

func names(xs []SurfaceIntersection) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.Surface.Name())
	}
	return out
}

// withDebug enables query logging with a silent logger for the duration of the test.
func withDebug(t *testing.T) {
	t.Helper()
	prevDebug, prevLogger := Debug, Logger
	Debug = true
	resetQueryLog()
	t.Cleanup(func() {
		Debug, Logger = prevDebug, prevLogger
		resetQueryLog()
	})
}

package layernav

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBHelpers(t *testing.T) {
	uMin, uMax := aabbUnion(v(0, 0, 0), v(1, 2, 3), v(-1, 1, 2), v(2, 1.5, 3.5))
	assert.Equal(t, v(-1, 0, 0), uMin)
	assert.Equal(t, v(2, 2, 3.5), uMax)
	var none [3]bool
	assert.True(t, aabbContainsOn(v(0, 0, 0), v(1, 1, 0), v(0.5, 0.5, 0), 0, none))
	assert.False(t, aabbContainsOn(v(0, 0, 0), v(1, 1, 0), v(0.5, 0.5, 0.1), 0, none))
	assert.True(t, aabbContainsOn(v(0, 0, 0), v(1, 1, 0), v(0.5, 0.5, 0.1), 0.2, none))
	assert.True(t, aabbContainsOn(v(0, 0, 0), v(1, 1, 0), v(0.5, 0.5, 7), 0, [3]bool{false, false, true}))
	assert.False(t, aabbContainsOn(v(0, 0, 0), v(1, 1, 0), v(1.5, 0.5, 7), 0, [3]bool{false, false, true}))
	assert.Equal(t, v(1, 0, 3), dropAxes(v(1, 2, 3), [3]bool{false, true, false}))
}

func TestGetCentroidAxis(t *testing.T) {
	l := bvhLeaf{min: v(1, 2, 3), max: v(3, 6, 7)}
	assert.True(t, almostEq(getCentroidAxis(l, 0), 2))
	assert.True(t, almostEq(getCentroidAxis(l, 1), 4))
	assert.True(t, almostEq(getCentroidAxis(l, 2), 5))
	assert.Equal(t, 1, longestAxis(v(1, 5, 2)))
	assert.Equal(t, 2, longestAxis(v(1, 1, 2)))
	assert.Equal(t, 0, longestAxis(v(0, 0, 0)))
}

func threeModules(t *testing.T) []Surface {
	t.Helper()
	return []Surface{
		zPlane(t, "m0", v(-2, 0, 0), 0.9, 0.9),
		zPlane(t, "m1", v(0, 0, 0), 0.9, 0.9),
		zPlane(t, "m2", v(2, 0, 0), 0.9, 0.9),
	}
}

func TestBVHObjectAt(t *testing.T) {
	ms := threeModules(t)
	idx := NewBVHIndex(append([]Surface{nil}, ms...))
	assert.Equal(t, ms, idx.AllObjects())
	require.NotNil(t, idx.Root())

	for i, x := range []Real{-2.3, 0.1, 1.5} {
		assert.Equal(t, ms[i], idx.ObjectAt(v(x, 0.2, 0)), "x=%v", x)
	}
	// z is flat for every module and is projected out
	assert.Equal(t, ms[1], idx.ObjectAt(v(0, 0, 5)))
	assert.Equal(t, ms[2], idx.ObjectAt(v(2.5, -0.5, -40)))
	assert.Nil(t, idx.ObjectAt(v(1, 0, 0)))
	assert.Nil(t, idx.ObjectAt(v(5, 0, 0)))
	assert.Nil(t, idx.ObjectAt(v(0, 3, 5)))
}

func TestBVHFlatAxes(t *testing.T) {
	assert.Equal(t, [3]bool{false, false, true}, NewBVHIndex(threeModules(t)).flat)
	b, err := NewCylinderBounds(10, 20)
	require.NoError(t, err)
	cyl, err := NewCylinderSurface("barrel", Identity3(), b)
	require.NoError(t, err)
	assert.Equal(t, [3]bool{}, NewBVHIndex([]Surface{cyl}).flat)
	assert.Equal(t, [3]bool{}, NewBVHIndex(nil).flat)
}

func TestBVHNilIndex(t *testing.T) {
	var idx *BVHIndex
	assert.Nil(t, idx.AllObjects())
	assert.Nil(t, idx.ObjectAt(v(0, 0, 0)))
	assert.Nil(t, idx.Root())
}

func TestBVHOverlapPrefersClosestCentre(t *testing.T) {
	big := zPlane(t, "big", v(0, 0, 0), 5, 5)
	small := zPlane(t, "small", v(3, 0, 0), 1, 1)
	idx := NewBVHIndex([]Surface{big, small})
	assert.Equal(t, small, idx.ObjectAt(v(3.2, 0, 0)))
	assert.Equal(t, big, idx.ObjectAt(v(1.5, 0, 0)))
}

func TestBVHEmpty(t *testing.T) {
	idx := NewBVHIndex(nil)
	assert.Nil(t, idx.Root())
	assert.Nil(t, idx.ObjectAt(v(0, 0, 0)))
	assert.Empty(t, idx.AllObjects())

	var buf bytes.Buffer
	assert.False(t, DumpBVH(&buf, idx))
	assert.False(t, DumpBVH(&buf, nil))
	assert.Equal(t, 2, strings.Count(buf.String(), "<empty>"))
}

func TestDumpBVH(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, DumpBVH(&buf, NewBVHIndex(threeModules(t))))
	out := buf.String()
	assert.Contains(t, out, "[BVH] root: nodes=3 leaves=2 surfaces=3")
	assert.Equal(t, 2, strings.Count(out, "LEAF"))
	assert.Contains(t, out, "\tLEAF  surfaces=m1,m2")
}

package layernav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneFile = "../../scenes/layer.yaml"

func TestRot3DegRadians(t *testing.T) {
	r := Rot3Deg{XY: 90, XZ: 180, YZ: -45}.Radians()
	assert.InDelta(t, 1.5707963267948966, r.XY, 1e-12)
	assert.InDelta(t, 3.141592653589793, r.XZ, 1e-12)
	assert.InDelta(t, -0.7853981633974483, r.YZ, 1e-12)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
layer:
  representation: {name: rep}
queries:
  - name: q
    direction: {z: 1}
`))
	require.NoError(t, err)
	assert.Equal(t, DefaultLayerName, cfg.Layer.Name)
	assert.Equal(t, "grid", cfg.Layer.Index)
	assert.Equal(t, "plane", cfg.Layer.Representation.Type)
	assert.Equal(t, "along", cfg.Queries[0].NavDir)
	assert.Equal(t, DefaultProbeTrials, cfg.Probe.Trials)
	assert.Equal(t, DefaultProbeSpread, cfg.Probe.Spread)
	assert.False(t, cfg.Queries[0].Relaxed)
}

func TestParseConfigValidation(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want string
	}{
		"bad type": {`
layer:
  representation: {name: rep, type: cone}
`, "Type"},
		"missing name": {`
layer:
  representation: {type: plane}
`, "Name"},
		"bad nav dir": {`
layer:
  representation: {name: rep}
queries:
  - {name: q, direction: {z: 1}, navDir: sideways}
`, "NavDir"},
		"grid without axes": {`
layer:
  representation: {name: rep}
  sensitive:
    - {name: s, halfX: 1, halfY: 1}
`, "grid index needs at least one axis"},
		"unknown probe query": {`
layer:
  representation: {name: rep}
probe: {query: nope}
`, `unknown query "nope"`},
		"bad id": {`
layer:
  representation: {name: rep, id: not-a-uuid}
`, "ID"},
		"unnamed query": {`
layer:
  representation: {name: rep}
queries:
  - {direction: {z: 1}}
`, "Queries[0].Name"},
		"duplicate query": {`
layer:
  representation: {name: rep}
queries:
  - {name: q, direction: {z: 1}}
  - {name: p, direction: {z: 1}}
  - {name: q, direction: {z: -1}}
`, `duplicate query name "q"`},
		"malformed": {"layer: [", "decoding config"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(c.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestLoadConfigScene(t *testing.T) {
	cfg, err := LoadConfig(sceneFile)
	require.NoError(t, err)

	l, byName, err := cfg.Layer.Build()
	require.NoError(t, err)
	assert.Equal(t, "pixel-0", l.Name())
	assert.Equal(t, 2, l.SensitiveCount())
	assert.Equal(t, 2, l.ApproachCount())
	assert.Len(t, byName, 7)

	arr, ok := l.SurfaceArray().(*SurfaceArray)
	require.True(t, ok)
	assert.Len(t, arr.AllObjects(), 3)

	m1 := byName["module-1"].AssociatedDetectorElement()
	require.NotNil(t, m1)
	assert.Equal(t, uint64(101), m1.Identifier())
	require.Len(t, m1.BinMembers(), 1)
	assert.Equal(t, "module-1-back", m1.BinMembers()[0].Surface().Name())
	assert.Len(t, m1.Neighbours(), 2)
	assert.False(t, hasMaterial(byName["module-2"]))
	assert.True(t, hasMaterial(byName["rep"]))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSurfaceCfgBuild(t *testing.T) {
	id := "6f1c2b4e-3f55-4a8e-9d1c-7b2a1e0c9d33"
	s, err := SurfaceCfg{Name: "c", ID: id, Type: "cylinder", Radius: 2, HalfZ: 3, Center: Vec3Cfg{Z: 1}}.Build()
	require.NoError(t, err)
	assert.Equal(t, SurfaceCylinder, s.Type())
	assert.Equal(t, id, s.ID().String())
	assert.Equal(t, v(0, 0, 1), s.Center())

	s, err = SurfaceCfg{Name: "d", Type: "disc", RMin: 1, RMax: 2}.Build()
	require.NoError(t, err)
	assert.Equal(t, SurfaceDisc, s.Type())

	s, err = SurfaceCfg{Name: "p", Type: "plane", RotDeg: Rot3Deg{YZ: 90}}.Build()
	require.NoError(t, err)
	_, unbounded := s.(*PlaneSurface).Bounds().(InfiniteBounds)
	assert.True(t, unbounded)
	assert.True(t, vecAlmostEq(s.(*PlaneSurface).Normal(), v(0, -1, 0)))

	_, err = SurfaceCfg{Name: "bad", Type: "disc", RMin: 2, RMax: 1}.Build()
	assert.ErrorContains(t, err, `surface "bad"`)
	_, err = SurfaceCfg{Name: "bad", Type: "plane", Material: MaterialCfg{Thickness: 1}}.Build()
	assert.Error(t, err)
}

func TestLayerCfgBuildErrors(t *testing.T) {
	dup := LayerCfg{
		Name:           "dup",
		Representation: SurfaceCfg{Name: "x", Type: "plane"},
		Approach:       []SurfaceCfg{{Name: "x", Type: "plane"}},
	}
	_, _, err := dup.Build()
	assert.ErrorContains(t, err, `duplicate surface name "x"`)

	outside := LayerCfg{
		Name:           "outside",
		Index:          "grid",
		Representation: SurfaceCfg{Name: "rep", Type: "plane"},
		Sensitive:      []SurfaceCfg{{Name: "far", Type: "plane", Center: Vec3Cfg{X: 50}, HalfX: 1, HalfY: 1}},
		Grid:           GridCfg{Axes: []AxisCfg{{Value: "x", Min: -3, Max: 3, Bins: 3}}},
	}
	_, _, err = outside.Build()
	assert.ErrorContains(t, err, "outside the grid")
}

func TestLayerCfgBuildBVH(t *testing.T) {
	lc := LayerCfg{
		Name:           "bvh",
		Index:          "bvh",
		Representation: SurfaceCfg{Name: "rep", Type: "plane"},
		Sensitive: []SurfaceCfg{
			{Name: "a", Type: "plane", Center: Vec3Cfg{X: -1}, HalfX: 0.4, HalfY: 0.4},
			{Name: "b", Type: "plane", Center: Vec3Cfg{X: 1}, HalfX: 0.4, HalfY: 0.4},
		},
	}
	l, byName, err := lc.Build()
	require.NoError(t, err)
	idx, ok := l.SurfaceArray().(*BVHIndex)
	require.True(t, ok)
	assert.Equal(t, byName["b"], idx.ObjectAt(v(1.1, 0, 0)))
	assert.Nil(t, l.ApproachDescriptor())
}

func TestLayerCfgBuildWithoutSensitive(t *testing.T) {
	l, _, err := LayerCfg{Name: "bare", Representation: SurfaceCfg{Name: "rep", Type: "plane"}}.Build()
	require.NoError(t, err)
	assert.Nil(t, l.SurfaceArray())
	q := straight(v(0, 0, -5))
	q.CollectPassive = true
	assert.Empty(t, l.CompatibleSurfaces(q))
}

func TestQueryCfgBuild(t *testing.T) {
	rep := zPlane(t, "rep", v(0, 0, 0), 0, 0)
	byName := map[string]Surface{"rep": rep}

	q, err := QueryCfg{
		Name: "q", Direction: Vec3Cfg{Z: 1}, NavDir: "opposite", Relaxed: true,
		CollectPassive: true, SearchMode: 3, End: "rep", Reference: "rep",
	}.Build(byName)
	require.NoError(t, err)
	assert.Equal(t, Opposite, q.NavDir)
	assert.Equal(t, BoundaryRelaxed, q.BoundaryCheck)
	assert.Equal(t, 3, q.SearchMode)
	assert.Equal(t, Surface(rep), q.EndSurface)
	assert.Equal(t, Surface(rep), q.ReferenceSurface)
	assert.Nil(t, q.StartSurface)

	_, err = QueryCfg{Name: "q", Direction: Vec3Cfg{Z: 1}, Start: "a", End: "b"}.Build(byName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown start surface "a"`)
	assert.Contains(t, err.Error(), `unknown end surface "b"`)

	_, err = QueryCfg{Name: "zero"}.Build(byName)
	assert.ErrorContains(t, err, "direction must be non-zero")
}

func TestParseConfigFromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layer:\n  representation: {name: rep, type: disc, rMax: 4}\n"), 0o600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	l, _, err := cfg.Layer.Build()
	require.NoError(t, err)
	assert.Equal(t, SurfaceDisc, l.SurfaceRepresentation().Type())
}

package layernav

import (
	"math"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

type Vec3Cfg struct {
	X Real `yaml:"x"`
	Y Real `yaml:"y"`
	Z Real `yaml:"z"`
}

func (v Vec3Cfg) Vec() r3.Vec { return vec(v.X, v.Y, v.Z) }

// Rotation in degrees (friendlier than radians).
type Rot3Deg struct {
	XY Real `yaml:"xy"`
	XZ Real `yaml:"xz"`
	YZ Real `yaml:"yz"`
}

func (r Rot3Deg) Radians() Rot3 {
	const k = math.Pi / 180
	return Rot3{XY: r.XY * k, XZ: r.XZ * k, YZ: r.YZ * k}
}

// MaterialCfg: a zero thickness means the surface carries no material.
type MaterialCfg struct {
	Thickness Real `yaml:"thickness" validate:"gte=0"`
	X0        Real `yaml:"x0" validate:"gte=0"`
	L0        Real `yaml:"l0" validate:"gte=0"`
	A         Real `yaml:"a" validate:"gte=0"`
	Z         Real `yaml:"z" validate:"gte=0"`
	Rho       Real `yaml:"rho" validate:"gte=0"`
}

func (m MaterialCfg) IsZero() bool { return m.Thickness == 0 }

func (m MaterialCfg) Build() (SurfaceMaterial, error) {
	if m.IsZero() {
		return nil, nil
	}
	return NewHomogeneousMaterial(MaterialProperties{
		Thickness: m.Thickness, X0: m.X0, L0: m.L0, A: m.A, Z: m.Z, Rho: m.Rho,
	})
}

type SurfaceCfg struct {
	Name   string  `yaml:"name" validate:"required"`
	ID     string  `yaml:"id,omitempty" validate:"omitempty,uuid"`
	Type   string  `yaml:"type" default:"plane" validate:"oneof=plane disc cylinder"`
	Center Vec3Cfg `yaml:"center"`
	RotDeg Rot3Deg `yaml:"rotDeg"`

	// plane: both zero means unbounded
	HalfX Real `yaml:"halfX,omitempty" validate:"gte=0"`
	HalfY Real `yaml:"halfY,omitempty" validate:"gte=0"`
	// disc
	RMin Real `yaml:"rMin,omitempty" validate:"gte=0"`
	RMax Real `yaml:"rMax,omitempty" validate:"gte=0"`
	// cylinder
	Radius Real `yaml:"radius,omitempty" validate:"gte=0"`
	HalfZ  Real `yaml:"halfZ,omitempty" validate:"gte=0"`

	Material MaterialCfg `yaml:"material,omitempty"`

	// sensitive surfaces only
	Identifier uint64       `yaml:"identifier,omitempty"`
	Thickness  Real         `yaml:"thickness,omitempty" validate:"gte=0"`
	BinMembers []SurfaceCfg `yaml:"binMembers,omitempty" validate:"dive"`
}

// Build validates and constructs the runtime surface, without a detector element.
func (c SurfaceCfg) Build() (Surface, error) {
	tr := NewTransform3(c.Center.Vec(), c.RotDeg.Radians())
	var (
		s   Surface
		err error
	)
	switch c.Type {
	case "disc":
		var b *RadialBounds
		if b, err = NewRadialBounds(c.RMin, c.RMax); err == nil {
			s, err = NewDiscSurface(c.Name, tr, b)
		}
	case "cylinder":
		var b *CylinderBounds
		if b, err = NewCylinderBounds(c.Radius, c.HalfZ); err == nil {
			s, err = NewCylinderSurface(c.Name, tr, b)
		}
	default:
		var b Bounds = InfiniteBounds{}
		if c.HalfX != 0 || c.HalfY != 0 {
			b, err = NewRectangleBounds(c.HalfX, c.HalfY)
		}
		if err == nil {
			s, err = NewPlaneSurface(c.Name, tr, b)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "surface %q", c.Name)
	}
	if c.ID != "" {
		id, perr := uuid.Parse(c.ID)
		if perr != nil {
			return nil, errors.Wrapf(perr, "surface %q id", c.Name)
		}
		s.base().id = id
	}
	mat, err := c.Material.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "surface %q", c.Name)
	}
	s.base().SetAssociatedMaterial(mat)
	return s, nil
}

// buildSensitive constructs the surface with its detector element and the
// bin members attached to that element.
func (c SurfaceCfg) buildSensitive(byName map[string]Surface) (Surface, error) {
	s, err := c.Build()
	if err != nil {
		return nil, err
	}
	de, err := NewDetectorElement(c.Identifier, s, c.Thickness, nil)
	if err != nil {
		return nil, err
	}
	var members []*DetectorElement
	for _, mc := range c.BinMembers {
		ms, err := mc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "bin member of %q", c.Name)
		}
		mde, err := NewDetectorElement(mc.Identifier, ms, mc.Thickness, nil)
		if err != nil {
			return nil, err
		}
		if err := register(byName, ms); err != nil {
			return nil, err
		}
		members = append(members, mde)
	}
	de.SetBinMembers(members)
	return s, register(byName, s)
}

func register(byName map[string]Surface, s Surface) error {
	if _, dup := byName[s.Name()]; dup {
		return errors.Errorf("duplicate surface name %q", s.Name())
	}
	byName[s.Name()] = s
	return nil
}

type AxisCfg struct {
	Value  string `yaml:"value" validate:"oneof=x y z r phi"`
	Min    Real   `yaml:"min"`
	Max    Real   `yaml:"max"`
	Bins   int    `yaml:"bins" validate:"gt=0"`
	Closed bool   `yaml:"closed,omitempty"`
}

func (a AxisCfg) Build() (GridAxis, error) {
	wrap := AxisOpen
	if a.Closed {
		wrap = AxisClosed
	}
	ax, err := NewEquidistantAxis(a.Min, a.Max, a.Bins, wrap)
	if err != nil {
		return GridAxis{}, errors.Wrapf(err, "axis %s", a.Value)
	}
	return GridAxis{EquidistantAxis: ax, Value: binValueOf(a.Value)}, nil
}

func binValueOf(s string) BinValue {
	switch s {
	case "x":
		return BinX
	case "y":
		return BinY
	case "z":
		return BinZ
	case "r":
		return BinR
	default:
		return BinPhi
	}
}

type GridCfg struct {
	Axes []AxisCfg `yaml:"axes" validate:"max=3,dive"`
}

type LayerCfg struct {
	Name           string       `yaml:"name" default:"layer"`
	Index          string       `yaml:"index" default:"grid" validate:"oneof=grid bvh"`
	Representation SurfaceCfg   `yaml:"representation"`
	Sensitive      []SurfaceCfg `yaml:"sensitive,omitempty" validate:"dive"`
	Approach       []SurfaceCfg `yaml:"approach,omitempty" validate:"dive"`
	Grid           GridCfg      `yaml:"grid,omitempty"`
}

// Build constructs the layer and returns every surface it created by name.
func (lc LayerCfg) Build() (*Layer, map[string]Surface, error) {
	byName := make(map[string]Surface)
	rep, err := lc.Representation.Build()
	if err != nil {
		return nil, nil, errors.Wrap(err, "representation")
	}
	if err := register(byName, rep); err != nil {
		return nil, nil, err
	}

	var approach *ApproachDescriptor
	if len(lc.Approach) > 0 {
		surfaces := make([]Surface, 0, len(lc.Approach))
		for _, ac := range lc.Approach {
			s, err := ac.Build()
			if err != nil {
				return nil, nil, errors.Wrap(err, "approach")
			}
			if err := register(byName, s); err != nil {
				return nil, nil, err
			}
			surfaces = append(surfaces, s)
		}
		approach = NewApproachDescriptor(surfaces...)
	}

	var index SurfaceIndex
	if len(lc.Sensitive) > 0 {
		surfaces := make([]Surface, 0, len(lc.Sensitive))
		for _, sc := range lc.Sensitive {
			s, err := sc.buildSensitive(byName)
			if err != nil {
				return nil, nil, errors.Wrap(err, "sensitive")
			}
			surfaces = append(surfaces, s)
		}
		if lc.Index == "bvh" || ForceBVH {
			index = NewBVHIndex(surfaces)
		} else {
			axes := make([]GridAxis, 0, len(lc.Grid.Axes))
			for _, ac := range lc.Grid.Axes {
				ax, err := ac.Build()
				if err != nil {
					return nil, nil, err
				}
				axes = append(axes, ax)
			}
			grid, err := NewSurfaceGrid(axes...)
			if err != nil {
				return nil, nil, err
			}
			arr, err := NewSurfaceArray(grid, surfaces)
			if err != nil {
				return nil, nil, err
			}
			index = arr
		}
	}

	layer, err := NewLayer(lc.Name, rep, index, approach)
	if err != nil {
		return nil, nil, err
	}
	return layer, byName, nil
}

type QueryCfg struct {
	Name             string  `yaml:"name" validate:"required"`
	Position         Vec3Cfg `yaml:"position"`
	Direction        Vec3Cfg `yaml:"direction"`
	NavDir           string  `yaml:"navDir" default:"along" validate:"oneof=along opposite any"`
	Relaxed          bool    `yaml:"relaxed,omitempty"`
	CollectSensitive bool    `yaml:"collectSensitive,omitempty"`
	CollectMaterial  bool    `yaml:"collectMaterial,omitempty"`
	CollectPassive   bool    `yaml:"collectPassive,omitempty"`
	SearchMode       int     `yaml:"searchMode,omitempty"`
	Start            string  `yaml:"start,omitempty"`
	End              string  `yaml:"end,omitempty"`
	Reference        string  `yaml:"reference,omitempty"`
}

// Build resolves the surface names of the query against the layer surfaces.
func (qc QueryCfg) Build(byName map[string]Surface) (CompatibilityQuery, error) {
	q := CompatibilityQuery{
		Position:         qc.Position.Vec(),
		Direction:        qc.Direction.Vec(),
		NavDir:           navDirOf(qc.NavDir),
		CollectSensitive: qc.CollectSensitive,
		CollectMaterial:  qc.CollectMaterial,
		CollectPassive:   qc.CollectPassive,
		SearchMode:       qc.SearchMode,
	}
	if qc.Relaxed {
		q.BoundaryCheck = BoundaryRelaxed
	}
	if r3.Norm(q.Direction) == 0 {
		return q, errors.Errorf("query %q: direction must be non-zero", qc.Name)
	}
	var err error
	if qc.Start != "" {
		if q.StartSurface = byName[qc.Start]; q.StartSurface == nil {
			err = multierr.Append(err, errors.Errorf("query %q: unknown start surface %q", qc.Name, qc.Start))
		}
	}
	if qc.End != "" {
		if q.EndSurface = byName[qc.End]; q.EndSurface == nil {
			err = multierr.Append(err, errors.Errorf("query %q: unknown end surface %q", qc.Name, qc.End))
		}
	}
	if qc.Reference != "" {
		if q.ReferenceSurface = byName[qc.Reference]; q.ReferenceSurface == nil {
			err = multierr.Append(err, errors.Errorf("query %q: unknown reference surface %q", qc.Name, qc.Reference))
		}
	}
	return q, err
}

func navDirOf(s string) NavDirection {
	switch s {
	case "opposite":
		return Opposite
	case "any":
		return Any
	default:
		return Along
	}
}

// ProbeCfg configures the acceptance estimate; an empty Query disables it.
type ProbeCfg struct {
	Query  string `yaml:"query,omitempty"`
	Trials int    `yaml:"trials" default:"10000" validate:"gt=0"`
	Spread Real   `yaml:"spread" default:"1" validate:"gte=0"`
	Seed   int64  `yaml:"seed,omitempty"`
}

type Config struct {
	Layer   LayerCfg   `yaml:"layer"`
	Queries []QueryCfg `yaml:"queries" validate:"dive"`
	Probe   ProbeCfg   `yaml:"probe,omitempty"`
}

var validate = validator.New()

// Validate runs the struct tag rules and the cross-field checks, reporting every failure.
func (c *Config) Validate() error {
	var err error
	if verr := validate.Struct(c); verr != nil {
		err = multierr.Append(err, verr)
	}
	if len(c.Layer.Sensitive) > 0 && c.Layer.Index == "grid" && !ForceBVH && len(c.Layer.Grid.Axes) == 0 {
		err = multierr.Append(err, errors.New("layer: grid index needs at least one axis"))
	}
	seen := make(map[string]bool, len(c.Queries))
	for _, q := range c.Queries {
		if q.Name != "" && seen[q.Name] {
			err = multierr.Append(err, errors.Errorf("queries: duplicate query name %q", q.Name))
		}
		seen[q.Name] = true
	}
	if c.Probe.Query != "" {
		if !seen[c.Probe.Query] {
			err = multierr.Append(err, errors.Errorf("probe: unknown query %q", c.Probe.Query))
		}
	}
	return err
}

// ParseConfig decodes YAML, applies defaults and validates.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "applying defaults")
	}
	for i := range cfg.Queries {
		if err := defaults.Set(&cfg.Queries[i]); err != nil {
			return nil, errors.Wrap(err, "applying query defaults")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	DebugLog("Loaded config", zapConfig(path, cfg)...)
	return cfg, nil
}

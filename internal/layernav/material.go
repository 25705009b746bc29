package layernav

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// MaterialProperties of a thin slab: thickness, radiation length X0,
// nuclear interaction length L0, A, Z and density Rho.
type MaterialProperties struct {
	Thickness Real
	X0        Real
	L0        Real
	A         Real
	Z         Real
	Rho       Real
}

func (p MaterialProperties) ThicknessInX0() Real { return p.Thickness / p.X0 }
func (p MaterialProperties) ThicknessInL0() Real { return p.Thickness / p.L0 }

func (p MaterialProperties) validate() error {
	var err error
	if !(p.Thickness > 0) {
		err = multierr.Append(err, errors.Errorf("material thickness must be > 0, got %.6g", p.Thickness))
	}
	if !(p.X0 > 0) {
		err = multierr.Append(err, errors.Errorf("radiation length X0 must be > 0, got %.6g", p.X0))
	}
	if !(p.L0 > 0) {
		err = multierr.Append(err, errors.Errorf("interaction length L0 must be > 0, got %.6g", p.L0))
	}
	if p.A < 0 || p.Z < 0 || p.Rho < 0 {
		err = multierr.Append(err, errors.Errorf("A, Z and Rho must be >= 0, got (%.6g, %.6g, %.6g)", p.A, p.Z, p.Rho))
	}
	return err
}

// SurfaceMaterial marks a surface as material-bearing. The search only
// tests for its presence.
type SurfaceMaterial interface {
	Properties() MaterialProperties
}

// HomogeneousMaterial carries the same properties over the whole surface.
type HomogeneousMaterial struct {
	props MaterialProperties
}

func NewHomogeneousMaterial(p MaterialProperties) (*HomogeneousMaterial, error) {
	if err := p.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid material")
	}
	return &HomogeneousMaterial{props: p}, nil
}

func (m *HomogeneousMaterial) Properties() MaterialProperties { return m.props }

// materialOrNil turns a typed nil pointer into an untyped nil so presence
// checks see no material.
func materialOrNil(m SurfaceMaterial) SurfaceMaterial {
	if m == nil {
		return nil
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return m
}

package layernav

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// CompatibilityEstimator is accepted by CompatibleSurfaces but not consulted yet.
type CompatibilityEstimator interface {
	Compatibility(s Surface, pos, dir r3.Vec) Real
}

// CompatibilityQuery carries the track state and the collection switches of a search.
type CompatibilityQuery struct {
	Position r3.Vec
	// Direction is the momentum direction; it is normalized internally and
	// negated when NavDir is Opposite.
	Direction     r3.Vec
	NavDir        NavDirection
	BoundaryCheck BoundaryCheck

	CollectSensitive bool
	CollectMaterial  bool
	CollectPassive   bool
	SearchMode       int

	StartSurface Surface
	EndSurface   Surface
	// ReferenceSurface is the surface the track parameters are expressed on.
	// When nil, the representation surface is tested geometrically instead.
	ReferenceSurface Surface
	Estimator        CompatibilityEstimator
}

// Layer is a thin shell hosting an optional index of sensitive surfaces,
// optional approach surfaces and exactly one representation surface.
type Layer struct {
	name           string
	surfaceArray   SurfaceIndex
	approach       *ApproachDescriptor
	representation Surface

	// material-bearing surface counts, cached at construction
	nSensitive int
	nApproach  int
}

// NewLayer assembles a layer. index and approach may be nil.
func NewLayer(name string, representation Surface, index SurfaceIndex, approach *ApproachDescriptor) (*Layer, error) {
	if representation == nil {
		return nil, errors.Errorf("layer %q: representation surface must not be nil", name)
	}
	l := &Layer{
		name:           name,
		surfaceArray:   index,
		approach:       approach,
		representation: representation,
	}
	if index != nil {
		for _, s := range index.AllObjects() {
			if s != nil && hasMaterial(s) {
				l.nSensitive++
			}
		}
	}
	for _, s := range approach.ContainedSurfaces() {
		if hasMaterial(s) {
			l.nApproach++
		}
	}
	DebugLog("Created layer",
		zap.String("layer", name),
		zap.Int("materialSensitive", l.nSensitive),
		zap.Int("materialApproach", l.nApproach),
	)
	return l, nil
}

func (l *Layer) Name() string                            { return l.name }
func (l *Layer) SurfaceRepresentation() Surface          { return l.representation }
func (l *Layer) SurfaceArray() SurfaceIndex              { return l.surfaceArray }
func (l *Layer) ApproachDescriptor() *ApproachDescriptor { return l.approach }
func (l *Layer) SensitiveCount() int                     { return l.nSensitive }
func (l *Layer) ApproachCount() int                      { return l.nApproach }

// IsOnLayer reports whether pos lies on the representation surface.
func (l *Layer) IsOnLayer(pos r3.Vec, bc BoundaryCheck) bool {
	return l.representation.IsOnSurface(pos, bc)
}

// CompatibleSurfaces returns the surfaces of the layer the track may cross,
// ordered by ascending signed path length. It never fails: degenerate or
// unreachable configurations give an empty result.
func (l *Layer) CompatibleSurfaces(q CompatibilityQuery) []SurfaceIntersection {
	if l.surfaceArray == nil && l.approach == nil {
		DebugLog("layer has no sensitive or approach structure", zap.String("layer", l.name))
		l.record(QueryFastExit, q, 0, math.Inf(1))
		return nil
	}

	intent := IntentFromMode(q.SearchMode)
	bc := q.BoundaryCheck
	if intent.Relaxed() {
		bc = BoundaryRelaxed
	}

	pos := q.Position
	dir := unit(q.Direction)
	if q.NavDir == Opposite {
		dir = r3.Scale(-1, dir)
	}
	forceDir := q.NavDir != Any

	ceiling := math.Inf(1)
	if q.EndSurface != nil {
		end := q.EndSurface.Intersect(pos, dir, false, BoundaryRelaxed)
		if !end.Valid || end.PathLength <= 0 {
			DebugLog("end surface not reachable ahead of the track",
				zap.String("layer", l.name),
				zap.String("end", surfaceName(q.EndSurface)),
				zap.Bool("valid", end.Valid),
				zap.Float64("pathLength", end.PathLength),
			)
			l.record(QueryUnreachable, q, 0, ceiling)
			return nil
		}
		ceiling = end.PathLength
	}

	c := &collector{
		pos:      pos,
		dir:      dir,
		forceDir: forceDir,
		bc:       bc,
		ceiling:  ceiling,
		start:    q.StartSurface,
		end:      q.EndSurface,
		seen:     make(map[Surface]struct{}),
	}

	// approach surfaces
	if l.approach != nil && (q.CollectPassive || (q.CollectMaterial && l.nApproach > 1)) {
		for _, s := range l.approach.ContainedSurfaces() {
			if c.vetoed(s) {
				continue
			}
			if q.CollectPassive || hasMaterial(s) {
				c.test(s)
			}
		}
	}

	// sensitive surfaces
	if l.surfaceArray != nil && (q.CollectPassive || q.CollectSensitive || (q.CollectMaterial && l.nSensitive > 1)) {
		collectPS := q.CollectPassive || q.CollectSensitive
		for _, s := range l.sensitiveCandidates(pos, intent) {
			if c.vetoed(s) {
				continue
			}
			if collectPS || hasMaterial(s) {
				c.test(s)
			}
		}
	}

	// representation surface
	if rep := l.representation; !c.vetoed(rep) && !l.onRepresentation(q, bc) &&
		(q.CollectPassive || (q.CollectMaterial && hasMaterial(rep))) {
		c.test(rep)
	}

	sortIntersections(c.out)
	category := QueryFound
	if len(c.out) == 0 {
		category = QueryEmpty
	}
	l.record(category, q, len(c.out), ceiling)
	DebugLog("compatible surfaces",
		zap.String("layer", l.name),
		zap.Stringer("intent", intent),
		zap.Stringer("boundaryCheck", bc),
		zap.Int("results", len(c.out)),
	)
	return c.out
}

// sensitiveCandidates gathers the sensitive-side candidates in visiting order.
// Exhaustive: for every indexed surface its bin members, then the surface.
// Local: the surface at pos and its neighbours, each followed by its bin members.
func (l *Layer) sensitiveCandidates(pos r3.Vec, intent SearchIntent) []Surface {
	if !intent.Local() {
		all := l.surfaceArray.AllObjects()
		out := make([]Surface, 0, len(all))
		for _, s := range all {
			if s == nil {
				continue
			}
			if de := s.AssociatedDetectorElement(); de != nil {
				out = appendElementSurfaces(out, de.BinMembers())
			}
			out = append(out, s)
		}
		return out
	}

	s := l.surfaceArray.ObjectAt(pos)
	if s == nil {
		return nil
	}
	de := s.AssociatedDetectorElement()
	if de == nil {
		return []Surface{s}
	}
	elements := make([]*DetectorElement, 0, 1+len(de.Neighbours()))
	elements = append(elements, de)
	elements = append(elements, de.Neighbours()...)

	var out []Surface
	for _, e := range elements {
		if e == nil || e.Surface() == nil {
			continue
		}
		out = append(out, e.Surface())
		out = appendElementSurfaces(out, e.BinMembers())
	}
	return out
}

func appendElementSurfaces(out []Surface, elements []*DetectorElement) []Surface {
	for _, e := range elements {
		if e != nil && e.Surface() != nil {
			out = append(out, e.Surface())
		}
	}
	return out
}

// onRepresentation reports whether the track already sits on the representation surface.
func (l *Layer) onRepresentation(q CompatibilityQuery, bc BoundaryCheck) bool {
	if q.ReferenceSurface != nil {
		return q.ReferenceSurface == l.representation
	}
	return l.representation.IsOnSurface(q.Position, bc)
}

func (l *Layer) record(cat Category, q CompatibilityQuery, results int, ceiling Real) {
	if Debug {
		logQuery(l.name, cat, q.Position, q.Direction, results, ceiling)
	}
}

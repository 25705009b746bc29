package layernav

import "go.uber.org/zap"

var (
	Debug    = false // set to true for verbose debug output
	ForceBVH = false // set to true to index sensitive surfaces with a BVH regardless of the config
	Logger   = zap.NewNop()
	// Compile time checks to ensure that the surface and index interfaces are implemented
	_ Surface         = (*PlaneSurface)(nil)
	_ Surface         = (*DiscSurface)(nil)
	_ Surface         = (*CylinderSurface)(nil)
	_ SurfaceIndex    = (*SurfaceArray)(nil)
	_ SurfaceIndex    = (*BVHIndex)(nil)
	_ SurfaceMaterial = (*HomogeneousMaterial)(nil)
	_ Bounds          = (*RectangleBounds)(nil)
	_ Bounds          = (*RadialBounds)(nil)
	_ Bounds          = (*CylinderBounds)(nil)
	_ Bounds          = InfiniteBounds{}
)

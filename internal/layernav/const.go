package layernav

const (
	// geometric tolerances
	parallelEps        = 1e-12
	onSurfaceTolerance = 1e-6
	boundsTolerance    = 1e-9
	// half-size used for the extent of unbounded shapes
	infiniteExtent = 1e9
	// padding added to leaf boxes so thin surfaces remain addressable
	bvhPadding = 1e-6

	BVHMaxLeafSize      = 2
	DefaultProbeTrials  = 10_000
	DefaultProbeSpread  = 1.0
	DefaultConfigPath   = "scenes/layer.yaml"
	DefaultLayerName    = "layer"
	maxGridDimensions   = 3
	goldenRatioSeedMask = 0x9e3779b97f4a7c15
)

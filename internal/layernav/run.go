package layernav

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func Run(cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	return run(os.Stdout, cfg)
}

// run builds the layer of cfg, executes every query and writes the ordered
// results to w.
func run(w io.Writer, cfg *Config) error {
	if ForceBVH {
		DebugLogOnce("BVH index forced")
	}
	layer, byName, err := cfg.Layer.Build()
	if err != nil {
		return errors.Wrap(err, "building layer")
	}

	queries := make(map[string]CompatibilityQuery, len(cfg.Queries))
	start := time.Now()
	for i, qc := range cfg.Queries {
		q, err := qc.Build(byName)
		if err != nil {
			return errors.Wrapf(err, "query #%d", i)
		}
		queries[qc.Name] = q
		res := layer.CompatibleSurfaces(q)
		fmt.Fprintf(w, "query %q: %d compatible surface(s)\n", qc.Name, len(res))
		for _, r := range res {
			fmt.Fprintf(w, "\t%-16s s=%-12.6g %-8s at %s\n", r.Surface.Name(), r.PathLength, r.Direction, fmtVec(r.Position))
		}
	}
	DebugLog("queries done", zap.Int("queries", len(cfg.Queries)), zap.Duration("elapsed", time.Since(start)))

	if cfg.Probe.Query != "" {
		q := queries[cfg.Probe.Query]
		acc := EstimateAcceptance(layer, q, cfg.Probe.Trials, cfg.Probe.Spread, cfg.Probe.Seed)
		fmt.Fprintf(w, "acceptance of %q over %d trials (spread %.3g): %.4f\n", cfg.Probe.Query, cfg.Probe.Trials, cfg.Probe.Spread, acc)
	}

	if Debug {
		if idx, ok := layer.SurfaceArray().(*BVHIndex); ok {
			DumpBVH(w, idx)
		}
		queryStats()
	}
	return nil
}

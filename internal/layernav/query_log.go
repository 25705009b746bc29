package layernav

import (
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

type Category uint8

const (
	QueryFastExit    Category = iota // layer without index and approach surfaces
	QueryUnreachable                 // end surface not ahead of the track
	QueryEmpty                       // search ran, nothing compatible
	QueryFound                       // at least one compatible surface
)

func (c Category) String() string {
	switch c {
	case QueryFastExit:
		return "fast_exit"
	case QueryUnreachable:
		return "unreachable"
	case QueryEmpty:
		return "empty"
	default:
		return "found"
	}
}

type QueryLog struct {
	Layer     string
	Category  Category
	Position  r3.Vec
	Direction r3.Vec
	Results   int  // number of compatible surfaces returned
	Ceiling   Real // path length limit in effect
}

type QueryLogCache struct {
	mu      sync.Mutex
	queries map[Category][]QueryLog
}

var cache = &QueryLogCache{
	queries: make(map[Category][]QueryLog),
}

func logQuery(layer string, category Category, position, direction r3.Vec, results int, ceiling Real) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.queries[category] = append(cache.queries[category], QueryLog{
		Layer:     layer,
		Category:  category,
		Position:  position,
		Direction: direction,
		Results:   results,
		Ceiling:   ceiling,
	})
}

// QueryStats returns how many searches ended in each category (debug mode only).
func QueryStats() map[Category]int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	out := make(map[Category]int, len(cache.queries))
	for k, qs := range cache.queries {
		out[k] = len(qs)
	}
	return out
}

func resetQueryLog() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.queries = make(map[Category][]QueryLog)
}

func queryStats() {
	for k, n := range QueryStats() {
		Logger.Info("query outcome", zap.Stringer("category", k), zap.Int("count", n))
	}
}

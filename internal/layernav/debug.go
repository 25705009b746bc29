package layernav

import (
	"sync"

	"go.uber.org/zap"
)

// SetDebug toggles debug output. It must be called before any search runs.
func SetDebug(on bool) {
	Debug = on
	if !on {
		Logger = zap.NewNop()
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		Logger = zap.NewNop()
		return
	}
	Logger = l
}

func DebugLog(msg string, fields ...zap.Field) {
	if !Debug {
		return
	}
	Logger.Debug(msg, fields...)
}

var once sync.Once

func DebugLogOnce(msg string, fields ...zap.Field) {
	once.Do(func() {
		DebugLog(msg, fields...)
	})
}

func zapSurface(s Surface) []zap.Field {
	return []zap.Field{
		zap.String("surface", s.Name()),
		zap.Stringer("type", s.Type()),
		zap.String("center", fmtVec(s.Center())),
	}
}

func zapConfig(path string, cfg *Config) []zap.Field {
	return []zap.Field{
		zap.String("path", path),
		zap.String("layer", cfg.Layer.Name),
		zap.String("index", cfg.Layer.Index),
		zap.Int("sensitive", len(cfg.Layer.Sensitive)),
		zap.Int("approach", len(cfg.Layer.Approach)),
		zap.Int("queries", len(cfg.Queries)),
	}
}

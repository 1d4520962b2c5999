package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig is read from the environment, never from the service config,
// so logging works before config loading (and while reporting its errors).
type LoggerConfig struct {
	Level      string // debug|info|warn|error
	Format     string // json|console
	OutputFile string // stdout, stderr or a file path
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE. Level and
// format are case-insensitive.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format:     strings.ToLower(envOr("LOG_FORMAT", "json")),
		OutputFile: envOr("LOG_OUTPUT_FILE", "stdout"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// levelAliases covers spellings zapcore.ParseLevel does not know.
var levelAliases = map[string]string{
	"warning": "warn",
	"err":     "error",
}

// ToZapLevel parses Level with zap's own parser. Unknown levels fall back to
// info rather than failing startup.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if alias, ok := levelAliases[name]; ok {
		name = alias
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Console reports whether the human-readable console encoder was asked for.
// "text" is accepted as a synonym.
func (c *LoggerConfig) Console() bool {
	return c.Format == "console" || c.Format == "text"
}

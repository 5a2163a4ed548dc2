package iconik

import (
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LogLevelEnv names the environment variable consulted by NewConsoleLogger
// when no explicit level is given.
const LogLevelEnv = "ICONIK_LOG_LEVEL"

// NewConsoleLogger builds a logger suitable for passing to WithLogger. It
// writes human-readable output to stderr, colourised when stderr is a
// terminal, at the given level ("debug", "info", "warn", "error"). An
// empty level falls back to ICONIK_LOG_LEVEL, then to "info".
func NewConsoleLogger(level string) zerolog.Logger {
	if level == "" {
		level = os.Getenv(LogLevelEnv)
	}

	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger().Level(lvl)
}

package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger writing to w. Unknown levels fall back to warn.
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(lvl).With().
		Timestamp().
		Logger()
	if err != nil {
		logger.Warn().Str("level", level).Msg("unknown log level, using warn")
	}
	return logger
}

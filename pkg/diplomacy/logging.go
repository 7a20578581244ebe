package diplomacy

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide structured logger. It defaults to a no-op
// sink so importing this package never writes anything on its own;
// SetLogger opts a process in. cmd/adjudicate calls SetLogger with a
// console writer configured the way a development build would want.
var Logger zerolog.Logger = zerolog.Nop()

// SetLogger replaces the package logger. Safe to call once during process
// startup; Resolve and the retreat/build phases read Logger on every call,
// so swapping it mid-turn is not goroutine-safe and not expected.
func SetLogger(l zerolog.Logger) {
	Logger = l
}

// NewDevelopmentLogger returns a human-readable console logger at the given
// level, the configuration cmd/adjudicate installs by default.
func NewDevelopmentLogger(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

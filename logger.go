package match

import (
	"log/slog"
	"os"
)

// logger writes to stderr so it never interleaves with book output on stdout.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// SetLogger allows setting a custom logger
func SetLogger(l *slog.Logger) {
	logger = l
}

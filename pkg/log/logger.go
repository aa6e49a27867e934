package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

const logFileName = "lyla.log"

// NewContextWithLogger installs a console logger writing to out and returns a
// context carrying it plus a flush function that must run before exit.
// Calling flush more than once is safe.
func NewContextWithLogger(ctx context.Context, out io.Writer, debug bool) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Use a diode (ring buffer) for non-blocking logging
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger Dropped %d messages\n", missed)
	})

	output := zerolog.ConsoleWriter{
		Out:        wr,
		NoColor:    out != os.Stderr && out != os.Stdout,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(2).
		Logger()

	log.Logger = logger

	return log.With().Logger().WithContext(ctx), sync.OnceFunc(func() {
		wr.Close()
	})
}

// NewContextWithFileLogger is NewContextWithLogger writing to lyla.log inside
// dir. Falls back to discarding output when the file cannot be opened.
func NewContextWithFileLogger(ctx context.Context, dir string, debug bool) (context.Context, func()) {
	var out io.Writer = io.Discard
	var file *os.File

	if err := os.MkdirAll(dir, 0755); err == nil {
		f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			file = f
			out = f
		}
	}

	ctx, flush := NewContextWithLogger(ctx, out, debug)
	return ctx, sync.OnceFunc(func() {
		flush()
		if file != nil {
			file.Close()
		}
	})
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

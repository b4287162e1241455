package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// Path of the log file. Empty keeps logging on stderr.
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Setup points the standard logger at a rotating file so diagnostics stay
// out of the conversation. The returned closer flushes and closes the file.
func Setup(opts Options) (io.Closer, error) {
	if opts.Path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, errors.Wrap(err, "ensure log dir")
	}
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

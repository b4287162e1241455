package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// FileTranscript keeps entries newline-joined in a plain text file.
type FileTranscript struct {
	path string
}

func NewFileTranscript(path string) *FileTranscript {
	return &FileTranscript{path: path}
}

func (t *FileTranscript) Path() string { return t.path }

func (t *FileTranscript) Save(entries []string) (err error) {
	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "ensure transcript dir")
		}
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open transcript")
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close transcript")
		}
	}(f)
	if _, err := f.WriteString(strings.Join(entries, "\n")); err != nil {
		return errors.Wrap(err, "write transcript")
	}
	return nil
}

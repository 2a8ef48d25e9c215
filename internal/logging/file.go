package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	logDirPerm  = 0o755
	logFilePerm = 0o600
	logFileName = "ctxtree.log"
)

// FileConfig controls where log output goes besides (or instead of) stderr.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	WriteToStderr bool
}

// NewWithFile creates a logger that appends to LogDir/ctxtree.log when file
// logging is enabled. The returned cleanup closes the file and is never nil.
// With both outputs disabled the logger discards everything, which keeps
// interactive TUIs free of log noise.
func NewWithFile(cfg Config, fileCfg FileConfig) (logger zerolog.Logger, cleanup func(), err error) {
	cleanup = func() {}

	var writers []io.Writer
	if fileCfg.WriteToStderr {
		writers = append(writers, os.Stderr)
	}

	if fileCfg.Enabled {
		if fileCfg.LogDir == "" {
			return zerolog.Nop(), cleanup, fmt.Errorf("file logging enabled without a log directory")
		}
		if err := os.MkdirAll(fileCfg.LogDir, logDirPerm); err != nil {
			return zerolog.Nop(), cleanup, fmt.Errorf("create log dir: %w", err)
		}
		path := filepath.Join(fileCfg.LogDir, logFileName)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
		if err != nil {
			return zerolog.Nop(), cleanup, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
		cleanup = func() {
			if closeErr := file.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
			}
		}
	}

	switch len(writers) {
	case 0:
		return zerolog.Nop(), cleanup, nil
	case 1:
		return NewWithWriter(cfg, writers[0]), cleanup, nil
	default:
		return NewWithWriter(cfg, io.MultiWriter(writers...)), cleanup, nil
	}
}

package server

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configurationFileMode = 0o644
	configurationDirMode  = 0o755
	tempFilePattern       = ".calcd-*.toml.tmp"
)

type Writer interface {
	Write(configuration Configuration) error
}

type defaultWriter struct {
	path string
}

func newDefaultWriter(path string) Writer {
	return &defaultWriter{path: path}
}

// Write replaces the file atomically through a temp file in the same directory.
func (w *defaultWriter) Write(configuration Configuration) error {
	if err := os.MkdirAll(filepath.Dir(w.path), configurationDirMode); err != nil {
		return fmt.Errorf("create configuration directory: %w", err)
	}

	data, err := toml.Marshal(toSchema(configuration))
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(w.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp configuration file: %w", err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp configuration file: %w", err)
	}
	if err := tempFile.Chmod(configurationFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp configuration file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp configuration file: %w", err)
	}
	if err := os.Rename(tempName, w.path); err != nil {
		return fmt.Errorf("replace configuration file: %w", err)
	}
	cleanup = false
	return nil
}

package server

import (
	"os"
	"path/filepath"

	"calcd/infrastructure/PAL/configuration"
)

type resolver struct {
	path string
}

// NewServerResolver resolves to path, or to the system-wide location when path is empty.
func NewServerResolver(path string) configuration.Resolver {
	return &resolver{path: path}
}

func (r resolver) Resolve() (string, error) {
	if r.path != "" {
		return filepath.Abs(r.path)
	}
	return filepath.Join(string(os.PathSeparator), "etc", "calcd", "calcd.toml"), nil
}

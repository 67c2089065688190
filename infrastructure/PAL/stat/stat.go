package stat

import (
	"errors"
	"os"
)

type Stat interface {
	Stat(name string) (os.FileInfo, error)
}

type DefaultStat struct {
}

func NewDefaultStat() Stat {
	return &DefaultStat{}
}

func (d DefaultStat) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Exists reports whether name exists. Errors other than os.ErrNotExist are returned as is.
func Exists(s Stat, name string) (bool, error) {
	_, err := s.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

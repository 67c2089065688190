package server

import (
	"errors"
	"fmt"
	"strings"

	"calcd/infrastructure/PAL/configuration"
	"calcd/infrastructure/PAL/stat"

	"github.com/spf13/viper"
)

const (
	configType = "toml"
	envPrefix  = "CALCD"
)

var ErrConfigurationExists = errors.New("configuration file already exists")

type ConfigurationManager interface {
	// Configuration reads and validates the configuration, writing the default file first
	// when none exists. Environment variables override file values.
	Configuration() (*Configuration, error)
	// WriteDefault writes the default configuration and returns its path.
	WriteDefault(overwrite bool) (string, error)
}

type Manager struct {
	resolver configuration.Resolver
	viper    *viper.Viper
	stat     stat.Stat
}

func NewManager(resolver configuration.Resolver, v *viper.Viper, fs stat.Stat) ConfigurationManager {
	if v == nil {
		v = viper.New()
	}
	return &Manager{
		resolver: resolver,
		viper:    v,
		stat:     fs,
	}
}

func (m *Manager) Configuration() (*Configuration, error) {
	path, pathErr := m.resolver.Resolve()
	if pathErr != nil {
		return nil, fmt.Errorf("failed to resolve configuration path: %w", pathErr)
	}

	exists, statErr := stat.Exists(m.stat, path)
	if statErr != nil {
		return nil, statErr
	}
	if !exists {
		if writeErr := newDefaultWriter(path).Write(*NewDefaultConfiguration()); writeErr != nil {
			return nil, fmt.Errorf("could not write default configuration: %w", writeErr)
		}
	}

	setDefaults(m.viper)
	m.viper.SetConfigFile(path)
	m.viper.SetConfigType(configType)
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}

	var file fileSchema
	if err := m.viper.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode configuration %s: %w", path, err)
	}

	conf, err := file.toConfiguration()
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (m *Manager) WriteDefault(overwrite bool) (string, error) {
	path, pathErr := m.resolver.Resolve()
	if pathErr != nil {
		return "", fmt.Errorf("failed to resolve configuration path: %w", pathErr)
	}
	if !overwrite {
		exists, statErr := stat.Exists(m.stat, path)
		if statErr != nil {
			return path, statErr
		}
		if exists {
			return path, fmt.Errorf("%w: %s", ErrConfigurationExists, path)
		}
	}
	if err := newDefaultWriter(path).Write(*NewDefaultConfiguration()); err != nil {
		return path, err
	}
	return path, nil
}

package server

import (
	"errors"
	"fmt"
	"time"

	"calcd/infrastructure/quiz"
	"calcd/infrastructure/settings"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type SessionConfiguration struct {
	Capacity      int
	Timeout       time.Duration
	SweepInterval time.Duration
}

type StreamConfiguration struct {
	Timeout time.Duration
}

// SocketConfiguration tunes the UDP socket. Zero keeps the OS default.
type SocketConfiguration struct {
	ReadBuffer  int
	WriteBuffer int
	TOS         int
}

type LogConfiguration struct {
	Level string
}

type Configuration struct {
	UDPSettings settings.Settings
	TCPSettings settings.Settings
	WSSettings  settings.Settings
	Session     SessionConfiguration
	Stream      StreamConfiguration
	Socket      SocketConfiguration
	Grading     quiz.GradingMode
	Log         LogConfiguration
	// Seed of the task generator. Zero seeds from the clock.
	Seed uint64
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		UDPSettings: settings.Settings{Protocol: settings.UDP, Enabled: true, Host: "0.0.0.0", Port: 5000},
		TCPSettings: settings.Settings{Protocol: settings.TCP, Enabled: false, Host: "0.0.0.0", Port: 5001},
		WSSettings:  settings.Settings{Protocol: settings.WS, Enabled: false, Host: "0.0.0.0", Port: 5002, Path: "/quiz"},
		Session: SessionConfiguration{
			Capacity:      100,
			Timeout:       10 * time.Second,
			SweepInterval: time.Second,
		},
		Stream:  StreamConfiguration{Timeout: 5 * time.Second},
		Grading: quiz.GradeStored,
		Log:     LogConfiguration{Level: "info"},
	}
}

// AllSettings returns all protocol settings regardless of enabled state.
func (c Configuration) AllSettings() []settings.Settings {
	return []settings.Settings{c.UDPSettings, c.TCPSettings, c.WSSettings}
}

// EnabledSettings returns only the settings for enabled protocols.
func (c Configuration) EnabledSettings() []settings.Settings {
	var result []settings.Settings
	for _, s := range c.AllSettings() {
		if s.Enabled {
			result = append(result, s)
		}
	}
	return result
}

func (c Configuration) Validate() error {
	enabled := c.EnabledSettings()
	if len(enabled) == 0 {
		return fmt.Errorf("%w: no transport is enabled", ErrInvalidConfiguration)
	}

	ports := make(map[int]settings.Protocol, len(enabled))
	for _, s := range enabled {
		if _, err := s.Socket(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, s.Protocol, err)
		}
		if other, taken := ports[s.Port]; taken {
			return fmt.Errorf("%w: %s and %s both use port %d", ErrInvalidConfiguration, other, s.Protocol, s.Port)
		}
		ports[s.Port] = s.Protocol
	}
	if c.WSSettings.Enabled && (c.WSSettings.Path == "" || c.WSSettings.Path[0] != '/') {
		return fmt.Errorf("%w: ws path %q must start with '/'", ErrInvalidConfiguration, c.WSSettings.Path)
	}

	if c.Session.Capacity < 1 {
		return fmt.Errorf("%w: session capacity must be at least 1, got %d", ErrInvalidConfiguration, c.Session.Capacity)
	}
	if c.Session.Timeout <= 0 {
		return fmt.Errorf("%w: session timeout must be positive, got %s", ErrInvalidConfiguration, c.Session.Timeout)
	}
	if c.Session.SweepInterval <= 0 || c.Session.SweepInterval > time.Second {
		return fmt.Errorf("%w: sweep interval must be in (0s, 1s], got %s", ErrInvalidConfiguration, c.Session.SweepInterval)
	}
	if c.Stream.Timeout <= 0 {
		return fmt.Errorf("%w: stream timeout must be positive, got %s", ErrInvalidConfiguration, c.Stream.Timeout)
	}
	if c.Socket.ReadBuffer < 0 || c.Socket.WriteBuffer < 0 {
		return fmt.Errorf("%w: socket buffers must not be negative", ErrInvalidConfiguration)
	}
	if c.Socket.TOS < 0 || c.Socket.TOS > 255 {
		return fmt.Errorf("%w: socket tos must be in 0..255, got %d", ErrInvalidConfiguration, c.Socket.TOS)
	}
	if _, err := quiz.ParseGradingMode(string(c.Grading)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

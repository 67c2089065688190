package server

import (
	"fmt"
	"time"

	"calcd/infrastructure/quiz"
	"calcd/infrastructure/settings"

	"github.com/spf13/viper"
)

// fileSchema is the on-disk TOML layout. Durations are kept as strings such as "10s".
type fileSchema struct {
	Grading string         `toml:"grading" mapstructure:"grading" comment:"stored: grade with the issued task; echoed: grade with the operands echoed in the reply"`
	Seed    uint64         `toml:"seed" mapstructure:"seed" comment:"task generator seed, 0 seeds from the clock"`
	UDP     endpointSchema `toml:"udp" mapstructure:"udp"`
	TCP     endpointSchema `toml:"tcp" mapstructure:"tcp"`
	WS      endpointSchema `toml:"ws" mapstructure:"ws"`
	Session sessionSchema  `toml:"session" mapstructure:"session"`
	Stream  streamSchema   `toml:"stream" mapstructure:"stream"`
	Socket  socketSchema   `toml:"socket" mapstructure:"socket"`
	Log     logSchema      `toml:"log" mapstructure:"log"`
}

type endpointSchema struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Host    string `toml:"host" mapstructure:"host"`
	Port    int    `toml:"port" mapstructure:"port"`
	Path    string `toml:"path,omitempty" mapstructure:"path"`
}

type sessionSchema struct {
	Capacity      int    `toml:"capacity" mapstructure:"capacity"`
	Timeout       string `toml:"timeout" mapstructure:"timeout"`
	SweepInterval string `toml:"sweep_interval" mapstructure:"sweep_interval"`
}

type streamSchema struct {
	Timeout string `toml:"timeout" mapstructure:"timeout"`
}

type socketSchema struct {
	ReadBuffer  int `toml:"read_buffer" mapstructure:"read_buffer"`
	WriteBuffer int `toml:"write_buffer" mapstructure:"write_buffer"`
	TOS         int `toml:"tos" mapstructure:"tos"`
}

type logSchema struct {
	Level string `toml:"level" mapstructure:"level"`
}

func toSchema(c Configuration) fileSchema {
	return fileSchema{
		Grading: string(c.Grading),
		Seed:    c.Seed,
		UDP:     toEndpointSchema(c.UDPSettings),
		TCP:     toEndpointSchema(c.TCPSettings),
		WS:      toEndpointSchema(c.WSSettings),
		Session: sessionSchema{
			Capacity:      c.Session.Capacity,
			Timeout:       c.Session.Timeout.String(),
			SweepInterval: c.Session.SweepInterval.String(),
		},
		Stream: streamSchema{Timeout: c.Stream.Timeout.String()},
		Socket: socketSchema{
			ReadBuffer:  c.Socket.ReadBuffer,
			WriteBuffer: c.Socket.WriteBuffer,
			TOS:         c.Socket.TOS,
		},
		Log: logSchema{Level: c.Log.Level},
	}
}

func toEndpointSchema(s settings.Settings) endpointSchema {
	return endpointSchema{
		Enabled: s.Enabled,
		Host:    s.Host,
		Port:    s.Port,
		Path:    s.Path,
	}
}

func (f fileSchema) toConfiguration() (*Configuration, error) {
	sessionTimeout, err := parseDuration("session.timeout", f.Session.Timeout)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := parseDuration("session.sweep_interval", f.Session.SweepInterval)
	if err != nil {
		return nil, err
	}
	streamTimeout, err := parseDuration("stream.timeout", f.Stream.Timeout)
	if err != nil {
		return nil, err
	}
	grading, err := quiz.ParseGradingMode(f.Grading)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return &Configuration{
		UDPSettings: f.UDP.toSettings(settings.UDP),
		TCPSettings: f.TCP.toSettings(settings.TCP),
		WSSettings:  f.WS.toSettings(settings.WS),
		Session: SessionConfiguration{
			Capacity:      f.Session.Capacity,
			Timeout:       sessionTimeout,
			SweepInterval: sweepInterval,
		},
		Stream: StreamConfiguration{Timeout: streamTimeout},
		Socket: SocketConfiguration{
			ReadBuffer:  f.Socket.ReadBuffer,
			WriteBuffer: f.Socket.WriteBuffer,
			TOS:         f.Socket.TOS,
		},
		Grading: grading,
		Log:     LogConfiguration{Level: f.Log.Level},
		Seed:    f.Seed,
	}, nil
}

func (e endpointSchema) toSettings(protocol settings.Protocol) settings.Settings {
	return settings.Settings{
		Protocol: protocol,
		Enabled:  e.Enabled,
		Host:     e.Host,
		Port:     e.Port,
		Path:     e.Path,
	}
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, key, err)
	}
	return d, nil
}

// setDefaults registers every key, which also makes each one overridable from the environment.
func setDefaults(v *viper.Viper) {
	d := toSchema(*NewDefaultConfiguration())
	v.SetDefault("grading", d.Grading)
	v.SetDefault("seed", d.Seed)
	for prefix, e := range map[string]endpointSchema{"udp": d.UDP, "tcp": d.TCP, "ws": d.WS} {
		v.SetDefault(prefix+".enabled", e.Enabled)
		v.SetDefault(prefix+".host", e.Host)
		v.SetDefault(prefix+".port", e.Port)
		v.SetDefault(prefix+".path", e.Path)
	}
	v.SetDefault("session.capacity", d.Session.Capacity)
	v.SetDefault("session.timeout", d.Session.Timeout)
	v.SetDefault("session.sweep_interval", d.Session.SweepInterval)
	v.SetDefault("stream.timeout", d.Stream.Timeout)
	v.SetDefault("socket.read_buffer", d.Socket.ReadBuffer)
	v.SetDefault("socket.write_buffer", d.Socket.WriteBuffer)
	v.SetDefault("socket.tos", d.Socket.TOS)
	v.SetDefault("log.level", d.Log.Level)
}

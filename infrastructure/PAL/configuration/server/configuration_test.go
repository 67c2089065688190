package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfiguration_IsValid(t *testing.T) {
	c := NewDefaultConfiguration()
	require.NoError(t, c.Validate())

	enabled := c.EnabledSettings()
	require.Len(t, enabled, 1)
	assert.Equal(t, 5000, enabled[0].Port)
	assert.Len(t, c.AllSettings(), 3)
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{"no transport", func(c *Configuration) { c.UDPSettings.Enabled = false }},
		{"port zero", func(c *Configuration) { c.UDPSettings.Port = 0 }},
		{"port too large", func(c *Configuration) { c.UDPSettings.Port = 65536 }},
		{"bad host", func(c *Configuration) { c.UDPSettings.Host = "localhost.invalid" }},
		{"duplicate port", func(c *Configuration) {
			c.TCPSettings.Enabled = true
			c.TCPSettings.Port = c.UDPSettings.Port
		}},
		{"ws path", func(c *Configuration) {
			c.WSSettings.Enabled = true
			c.WSSettings.Path = "quiz"
		}},
		{"capacity", func(c *Configuration) { c.Session.Capacity = 0 }},
		{"session timeout", func(c *Configuration) { c.Session.Timeout = 0 }},
		{"sweep zero", func(c *Configuration) { c.Session.SweepInterval = 0 }},
		{"sweep too slow", func(c *Configuration) { c.Session.SweepInterval = 2 * time.Second }},
		{"stream timeout", func(c *Configuration) { c.Stream.Timeout = -time.Second }},
		{"negative buffer", func(c *Configuration) { c.Socket.ReadBuffer = -1 }},
		{"tos range", func(c *Configuration) { c.Socket.TOS = 256 }},
		{"grading", func(c *Configuration) { c.Grading = "lenient" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfiguration()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestConfiguration_Validate_DisabledTransportIsNotChecked(t *testing.T) {
	c := NewDefaultConfiguration()
	c.TCPSettings.Port = c.UDPSettings.Port
	c.WSSettings.Path = ""
	assert.NoError(t, c.Validate())
}

func TestConfiguration_SchemaRoundTrip(t *testing.T) {
	c := NewDefaultConfiguration()
	c.Session.Timeout = 1500 * time.Millisecond
	c.Seed = 7

	back, err := toSchema(*c).toConfiguration()
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestFileSchema_RejectsBadDuration(t *testing.T) {
	f := toSchema(*NewDefaultConfiguration())
	f.Session.Timeout = "ten seconds"
	_, err := f.toConfiguration()
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servolink-protocol/servolink-go/pkg/net"
	"github.com/servolink-protocol/servolink-go/pkg/servo"
)

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, uint8(DefaultNode), c.Node)
	assert.Equal(t, DefaultStatusPoll, c.StatusPoll)
	assert.Equal(t, DefaultEmergencyCapacity, c.EmergencyCapacity)
	assert.Equal(t, "native", c.Units.Velocity)
}

func TestParseFull(t *testing.T) {
	c, err := Parse([]byte(`
dictionary: /etc/servolink/dict.xml
node: 5
status_poll: 50ms
emergency_capacity: 32
max_subscribers: 8
units:
  torque: rated
  position: deg
  velocity: rpm
  acceleration: rev/s2
log:
  path: /var/log/servolink.slog
`))
	require.NoError(t, err)

	assert.Equal(t, "/etc/servolink/dict.xml", c.Dictionary)
	assert.Equal(t, uint8(5), c.Node)
	assert.Equal(t, 50*time.Millisecond, c.StatusPoll)
	assert.Equal(t, 32, c.EmergencyCapacity)
	assert.Equal(t, 8, c.MaxSubscribers)
	assert.Equal(t, "rpm", c.Units.Velocity)
	assert.Equal(t, "/var/log/servolink.slog", c.Log.Path)
}

func TestParseUnknownUnits(t *testing.T) {
	_, err := Parse([]byte("units:\n  velocity: furlongs\n"))
	assert.ErrorIs(t, err, ErrInvalidUnits)
}

func TestParseInvalidPoll(t *testing.T) {
	_, err := Parse([]byte("status_poll: -1s\n"))
	assert.ErrorIs(t, err, ErrInvalidPoll)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("node: [oops\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servolink.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node: 3\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), c.Node)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyUnits(t *testing.T) {
	c, err := Parse([]byte("units:\n  velocity: rpm\n  position: rad\n"))
	require.NoError(t, err)

	lo := net.NewLoopback(nil)
	defer lo.Close()

	s, err := servo.New(lo, c.Node, c.ServoOptions()...)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, c.ApplyUnits(s))
	assert.Equal(t, servo.VelocityRPM, s.UnitsVelocity())
	assert.Equal(t, servo.PositionRad, s.UnitsPosition())
	assert.Equal(t, servo.TorqueNative, s.UnitsTorque())
}

// Package config loads servolink configuration files.
//
// Configuration is YAML. All fields are optional; Load fills defaults and
// validates the result, so an empty file yields a usable configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/servolink-protocol/servolink-go/pkg/servo"
)

// Configuration errors.
var (
	ErrInvalidUnits = errors.New("unknown units name")
	ErrInvalidPoll  = errors.New("status poll must be positive")
)

// Defaults.
const (
	DefaultNode              = 1
	DefaultStatusPoll        = 100 * time.Millisecond
	DefaultEmergencyCapacity = 16
)

// Config is the servolink configuration.
type Config struct {
	// Dictionary is the path to the register dictionary XML. Empty means
	// no dictionary; only predefined registers are available.
	Dictionary string `yaml:"dictionary"`

	// Node is the drive node id.
	Node uint8 `yaml:"node"`

	// StatusPoll is the monitor poll interval.
	StatusPoll time.Duration `yaml:"status_poll"`

	// EmergencyCapacity is the emergency ring buffer capacity.
	EmergencyCapacity int `yaml:"emergency_capacity"`

	// MaxSubscribers caps the subscriber registries. Zero means unbounded.
	MaxSubscribers int `yaml:"max_subscribers"`

	// Units selects the physical units used by scaled register access.
	Units UnitsConfig `yaml:"units"`

	// Log is the protocol log configuration.
	Log LogConfig `yaml:"log"`
}

// UnitsConfig selects physical units by name.
type UnitsConfig struct {
	Torque       string `yaml:"torque"`
	Position     string `yaml:"position"`
	Velocity     string `yaml:"velocity"`
	Acceleration string `yaml:"acceleration"`
}

// LogConfig configures protocol logging.
type LogConfig struct {
	// Path is the .slog file to append protocol events to. Empty disables
	// logging.
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Node:              DefaultNode,
		StatusPoll:        DefaultStatusPoll,
		EmergencyCapacity: DefaultEmergencyCapacity,
		Units: UnitsConfig{
			Torque:       "native",
			Position:     "native",
			Velocity:     "native",
			Acceleration: "native",
		},
	}
}

// Load reads a YAML configuration file, fills defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes, fills defaults and
// validates.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.StatusPoll <= 0 {
		return ErrInvalidPoll
	}
	if _, err := parseTorqueUnits(c.Units.Torque); err != nil {
		return err
	}
	if _, err := parsePositionUnits(c.Units.Position); err != nil {
		return err
	}
	if _, err := parseVelocityUnits(c.Units.Velocity); err != nil {
		return err
	}
	if _, err := parseAccelerationUnits(c.Units.Acceleration); err != nil {
		return err
	}
	return nil
}

// ServoOptions converts the configuration into servo handle options.
func (c *Config) ServoOptions() []servo.Option {
	opts := []servo.Option{
		servo.WithStatusPoll(c.StatusPoll),
		servo.WithEmergencyCapacity(c.EmergencyCapacity),
		servo.WithMaxSubscribers(c.MaxSubscribers),
	}
	if c.Dictionary != "" {
		opts = append(opts, servo.WithDictionary(c.Dictionary))
	}
	return opts
}

// ApplyUnits applies the configured units to a servo handle. Validate has
// already rejected unknown names, so errors here mean the configuration was
// mutated after validation.
func (c *Config) ApplyUnits(s *servo.Servo) error {
	torque, err := parseTorqueUnits(c.Units.Torque)
	if err != nil {
		return err
	}
	pos, err := parsePositionUnits(c.Units.Position)
	if err != nil {
		return err
	}
	vel, err := parseVelocityUnits(c.Units.Velocity)
	if err != nil {
		return err
	}
	acc, err := parseAccelerationUnits(c.Units.Acceleration)
	if err != nil {
		return err
	}

	s.SetUnitsTorque(torque)
	s.SetUnitsPosition(pos)
	s.SetUnitsVelocity(vel)
	s.SetUnitsAcceleration(acc)
	return nil
}

func parseTorqueUnits(name string) (servo.TorqueUnits, error) {
	switch name {
	case "", "native":
		return servo.TorqueNative, nil
	case "rated":
		return servo.TorqueRated, nil
	default:
		return 0, fmt.Errorf("%w: torque %q", ErrInvalidUnits, name)
	}
}

func parsePositionUnits(name string) (servo.PositionUnits, error) {
	switch name {
	case "", "native":
		return servo.PositionNative, nil
	case "rev":
		return servo.PositionRev, nil
	case "rad":
		return servo.PositionRad, nil
	case "deg":
		return servo.PositionDeg, nil
	default:
		return 0, fmt.Errorf("%w: position %q", ErrInvalidUnits, name)
	}
}

func parseVelocityUnits(name string) (servo.VelocityUnits, error) {
	switch name {
	case "", "native":
		return servo.VelocityNative, nil
	case "rev/s":
		return servo.VelocityRevS, nil
	case "rad/s":
		return servo.VelocityRadS, nil
	case "deg/s":
		return servo.VelocityDegS, nil
	case "rpm":
		return servo.VelocityRPM, nil
	default:
		return 0, fmt.Errorf("%w: velocity %q", ErrInvalidUnits, name)
	}
}

func parseAccelerationUnits(name string) (servo.AccelerationUnits, error) {
	switch name {
	case "", "native":
		return servo.AccelerationNative, nil
	case "rev/s2":
		return servo.AccelerationRevS2, nil
	case "rad/s2":
		return servo.AccelerationRadS2, nil
	case "deg/s2":
		return servo.AccelerationDegS2, nil
	default:
		return 0, fmt.Errorf("%w: acceleration %q", ErrInvalidUnits, name)
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/field"
	"github.com/san-kum/holosim/internal/force"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 1e-3
	DefaultDuration      = 10.0
	DefaultMass          = 0.1
	DefaultSnapshotEvery = 1000
	DefaultIntegrator    = "symplectic"
	DefaultLogLevel      = "info"
)

type Config struct {
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Duration   float64       `yaml:"duration"`
	Mass       float64       `yaml:"mass"`
	Snapshot   int           `yaml:"snapshot_every"`
	InitState  InitState     `yaml:"init_state"`
	Field      FieldConfig   `yaml:"field"`
	Force      ForceConfig   `yaml:"force"`
	Logging    LoggingConfig `yaml:"logging"`
}

type InitState struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	VZ float64 `yaml:"vz"`
}

type FieldConfig struct {
	Wavelength float64 `yaml:"wavelength"`
	WaveSpeed  float64 `yaml:"wave_speed"`
}

type ForceConfig struct {
	Scale    float64 `yaml:"scale"`
	Coupling float64 `yaml:"coupling"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	TraceForce bool   `yaml:"trace_force"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Mass:       DefaultMass,
		Snapshot:   DefaultSnapshotEvery,
		Field: FieldConfig{
			Wavelength: field.DefaultWavelength,
			WaveSpeed:  field.DefaultWaveSpeed,
		},
		Force: ForceConfig{
			Scale:    force.DefaultScale,
			Coupling: force.DefaultCoupling,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load overlays the YAML file at path onto DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path onto base. Keys absent from the
// file keep their value in base.
func LoadInto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := dynamo.ValidateConfig(c.SimConfig()); err != nil {
		return err
	}
	if !(c.Field.Wavelength > 0) {
		return fmt.Errorf("%w: wavelength must be positive, got %g", dynamo.ErrParameterBounds, c.Field.Wavelength)
	}
	return nil
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		Mass:          c.Mass,
		SnapshotEvery: c.Snapshot,
		ValidateState: true,
		InitialPos:    dynamo.Vec3{X: c.InitState.X, Y: c.InitState.Y, Z: c.InitState.Z},
		InitialVel:    dynamo.Vec3{X: c.InitState.VX, Y: c.InitState.VY, Z: c.InitState.VZ},
	}
}

func (c *Config) FieldEvaluator() *field.Evaluator {
	return field.New(c.Field.Wavelength, c.Field.WaveSpeed)
}

func (c *Config) ForceModel() *force.Model {
	return force.New(c.FieldEvaluator(), c.Force.Scale, c.Force.Coupling)
}

package config

import (
	"fmt"
	"strings"

	"github.com/seiskit/seiskit/logger"
	"github.com/seiskit/seiskit/realtime"
	"github.com/seiskit/seiskit/signal"
	"github.com/seiskit/seiskit/validation"
)

// ProcessConfig declares one transform of the pipeline by predefined name,
// with the options forwarded to every invocation.
type ProcessConfig struct {
	Name    string         `yaml:"name" mapstructure:"name" validate:"required"`
	Options map[string]any `yaml:"options" mapstructure:"options"`
}

// StreamConfig declares a realtime stream: retention bound, continuity
// policy, transform pipeline and logging.
type StreamConfig struct {
	// MaxLength bounds the retained series in seconds; 0 means unbounded.
	MaxLength float64 `yaml:"max_length" mapstructure:"max_length" validate:"gte=0"`
	// StrictContinuity turns gaps and overlaps into hard append failures.
	StrictContinuity bool            `yaml:"strict_continuity" mapstructure:"strict_continuity"`
	Processes        []ProcessConfig `yaml:"processes" mapstructure:"processes" validate:"dive"`
	Logging          logger.Config   `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields with working defaults.
func (c *StreamConfig) ApplyDefaults() {
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = "seiskit"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration, resolving every declared process name
// so a typo fails at startup instead of on the first append.
func (c *StreamConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	for i, p := range c.Processes {
		field := fmt.Sprintf("processes[%d].name", i)
		if strings.TrimSpace(p.Name) == "" {
			v.AddError(field, "is required")
			continue
		}
		if _, _, _, err := signal.Lookup(p.Name); err != nil {
			v.AddError(field, err.Error())
		}
	}
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
	return v.Validate()
}

// BuildStream constructs a stream with the configured retention bound and
// registers the configured pipeline in declaration order. Extra options
// are applied after the configured ones.
func (c *StreamConfig) BuildStream(opts ...realtime.Option) (*realtime.Stream, error) {
	sopts := make([]realtime.Option, 0, len(opts)+1)
	if c.MaxLength > 0 {
		sopts = append(sopts, realtime.WithMaxLength(c.MaxLength))
	}
	sopts = append(sopts, opts...)

	s, err := realtime.New(sopts...)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Processes {
		if _, err := s.RegisterProcess(p.Name, signal.Options(p.Options)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AppendOptions translates the continuity policy into per-call append
// options.
func (c *StreamConfig) AppendOptions() []realtime.AppendOption {
	if c.StrictContinuity {
		return []realtime.AppendOption{realtime.WithStrictContinuity()}
	}
	return nil
}

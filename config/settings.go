package config

import (
	"fmt"

	"github.com/ruwler/ruwler-go/httpclient"
	"github.com/ruwler/ruwler-go/logger"
)

// Settings is everything an application embedding the client configures.
// Client options live at the top level, the other sections under their
// own keys.
type Settings struct {
	Client    httpclient.Config
	Logging   logger.Config
	Telemetry Telemetry
}

// Telemetry configures OTLP export. Export is off when Endpoint is empty.
type Telemetry struct {
	Endpoint    string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure    bool    `yaml:"insecure" mapstructure:"insecure"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Enabled reports whether an OTLP endpoint is configured.
func (t Telemetry) Enabled() bool { return t.Endpoint != "" }

// ApplyDefaults fills zero values in every section.
func (s *Settings) ApplyDefaults() {
	s.Client.ApplyDefaults()
	s.Logging.ApplyDefaults()
	if s.Telemetry.ServiceName == "" {
		s.Telemetry.ServiceName = "ruwler"
	}
	if s.Telemetry.SampleRate == 0 {
		s.Telemetry.SampleRate = 1.0
	}
}

// Validate checks every section. Client errors are returned unwrapped so
// their type survives.
func (s *Settings) Validate() error {
	if err := s.Client.Validate(); err != nil {
		return err
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if s.Telemetry.SampleRate < 0 || s.Telemetry.SampleRate > 1 {
		return fmt.Errorf("config.telemetry.sample_rate must be between 0 and 1 (got: %v)", s.Telemetry.SampleRate)
	}
	return nil
}

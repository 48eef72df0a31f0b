package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jsphweid/miditok/constants"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel string       `yaml:"log_level"`
	Codec    CodecConfig  `yaml:"codec"`
	Server   ServerConfig `yaml:"server"`
	Watch    WatchConfig  `yaml:"watch"`
}

func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if err := c.Codec.Validate(); err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// CodecConfig controls encoding resolution and where decoded files go.
type CodecConfig struct {
	Timebase int    `yaml:"timebase"`
	Output   string `yaml:"output"`

	// used by encode-dir
	Concurrency int `yaml:"concurrency"`
}

func (c *CodecConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timebase, validation.Required, validation.Min(1), validation.Max(constants.MaxTimebase)),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.Concurrency, validation.Min(1)),
	)
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// upper bound for request bodies, in bytes
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxBodyBytes, validation.Required, validation.Min(int64(1))),
	)
}

type WatchConfig struct {
	Dir      string        `yaml:"dir"`
	Debounce time.Duration `yaml:"debounce"`
}

func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: logrus.InfoLevel.String(),
		Codec: CodecConfig{
			Timebase:    constants.GetTimebase(),
			Output:      constants.GetOutputPath(),
			Concurrency: 4,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   32 << 20,
		},
		Watch: WatchConfig{
			Dir:      ".",
			Debounce: 500 * time.Millisecond,
		},
	}
}

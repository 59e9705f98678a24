package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/Astemirdum/library-circulation/pkg/kafka"
	"github.com/Astemirdum/library-circulation/pkg/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type Mode string

const (
	// ModeDemo runs the scripted circulation scenario once and exits.
	ModeDemo Mode = "demo"
	// ModeServer serves the HTTP API until interrupted.
	ModeServer Mode = "server"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CIRCULATION_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"CIRCULATION_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration
}

type LoanPolicy struct {
	FinePerDay float64 `envconfig:"CIRCULATION_FINE_PER_DAY"`
}

type Config struct {
	Mode   Mode       `envconfig:"CIRCULATION_MODE"`
	Server HTTPServer `yaml:"server"`
	Loan   LoanPolicy
	Kafka  kafka.Config
	Log    logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		c, err := load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = c
	})

	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Mode: ModeDemo,
		Server: HTTPServer{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Loan: LoanPolicy{FinePerDay: model.DefaultFinePerDay},
		Log:  logger.Log{LogLevel: zapcore.InfoLevel},
	}
}

// load applies defaults, then options, then the environment.
func load(ops ...Option) (*Config, error) {
	c := defaultConfig()
	for _, op := range ops {
		op(c)
	}
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "envconfig.Process")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeDemo, ModeServer:
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if c.Loan.FinePerDay < 0 {
		return errors.Errorf("negative fine per day %v", c.Loan.FinePerDay)
	}
	return nil
}

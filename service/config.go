// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package service

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tochemey/goakt/v4/log"
)

// Config defines the service configuration
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	ActorSystemName string        `env:"SYSTEM_NAME" envDefault:"accounts"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AskTimeout      time.Duration `env:"ASK_TIMEOUT" envDefault:"5s"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9092"`
	TracingEnabled  bool          `env:"TRACING_ENABLED" envDefault:"false"`
	TraceURL        string        `env:"TRACE_URL" envDefault:"localhost:4317"`
	TraceProtocol   string        `env:"TRACE_PROTOCOL" envDefault:"grpc"`
	RemotingHost    string        `env:"REMOTING_HOST" envDefault:"127.0.0.1"`
	RemotingPort    int           `env:"REMOTING_PORT" envDefault:"0"`
}

// GetConfig returns the configuration. The given dotenv files are loaded first
// when they exist; variables already set in the environment win.
func GetConfig(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	opts := env.Options{RequiredIfNoDef: true, UseFieldNameByDefault: false}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that env cannot check by itself
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AskTimeout <= 0 {
		return fmt.Errorf("invalid ask timeout %s", c.AskTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.TraceProtocol {
	case "grpc", "http":
	default:
		return fmt.Errorf("invalid trace protocol %q", c.TraceProtocol)
	}
	if c.RemotingPort < 0 {
		return fmt.Errorf("invalid remoting port %d", c.RemotingPort)
	}
	return nil
}

// Level returns the log level named by LogLevel
func (c *Config) Level() (log.Level, error) {
	switch c.LogLevel {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarningLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InvalidLevel, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
}

//
//  Copyright 2026 The JCFS authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package jcfs

import (
	"io"

	"github.com/charmbracelet/log"
)

// DecodePolicy selects how text decoding treats ill-formed UTF-8 input.
type DecodePolicy uint8

const (
	// DecodeReport fails with ErrMalformedInput on ill-formed input.
	DecodeReport DecodePolicy = iota

	// DecodeIgnore silently drops ill-formed byte sequences.
	DecodeIgnore
)

// String returns the name of the decode policy.
func (dp DecodePolicy) String() string {
	if dp == DecodeIgnore {
		return "IGNORE"
	}

	return "REPORT"
}

// Config regroups the settings shared by the components of one file
// manager: the kind table, the default text decoding policy and the logger.
// Configurations are built explicitly and passed down instead of living in
// process wide registries, so several independent configurations can
// coexist in one test binary.
type Config struct {
	kinds  KindTable
	logger *log.Logger
	decode DecodePolicy
}

// ConfigOption defines the option function used for initializing Config.
type ConfigOption func(*Config)

// NewConfig returns a configuration with the default kind table, the
// REPORT decode policy and a discarding logger, modified by the given
// options.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{
		kinds:  DefaultKindTable(),
		logger: log.New(io.Discard),
		decode: DecodeReport,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Kinds returns the extension table used for kind inference and binary
// name derivation.
func (c *Config) Kinds() KindTable {
	return c.kinds
}

// Logger returns the logger best-effort failures are reported to.
func (c *Config) Logger() *log.Logger {
	return c.logger
}

// DecodePolicy returns the default text decoding policy.
func (c *Config) DecodePolicy() DecodePolicy {
	return c.decode
}

// WithLogger returns an option function which sets the logger.
func WithLogger(logger *log.Logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithKindTable returns an option function which sets the kind table.
func WithKindTable(kinds KindTable) ConfigOption {
	return func(c *Config) {
		c.kinds = kinds
	}
}

// WithDecodePolicy returns an option function which sets the default text
// decoding policy.
func WithDecodePolicy(policy DecodePolicy) ConfigOption {
	return func(c *Config) {
		c.decode = policy
	}
}

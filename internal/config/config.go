// Package config holds the run configuration for a mergesort invocation
// and the parsing/validation rules for the CLI inputs of spec §6.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hpcsort/mergesort/internal/errs"
)

// Config is the External Interfaces configuration surface of spec §6.
// Field tags are validated with go-playground/validator.
type Config struct {
	// ArraySize is N, the number of records generated on rank 0.
	ArraySize int `validate:"gt=0" mapstructure:"array_size"`

	// PayloadSize is the number of payload bytes per record.
	PayloadSize int `validate:"gt=0" mapstructure:"payload_size"`

	// BaseCaseSize is B, the leaf Sort range length. 0 means "derive from P".
	BaseCaseSize int `validate:"gte=0" mapstructure:"base_case_size"`

	// Workers is P, the per-node worker count.
	Workers int `validate:"gt=0" mapstructure:"workers"`

	// Seed is the deterministic generator seed.
	Seed int64 `mapstructure:"seed"`
}

// defaultConfig centralizes default values, mirroring spec §6's defaults
// table: array size 10240, payload size 1024, base-case 0 (derive), 8
// workers per node.
func defaultConfig() Config {
	return Config{
		ArraySize:    10240,
		PayloadSize:  1024,
		BaseCaseSize: 0,
		Workers:      8,
		Seed:         42,
	}
}

// Default returns a Config populated with spec §6's documented defaults.
func Default() Config {
	return defaultConfig()
}

var validate = validator.New()

// Validate checks c's invariants and returns a ConfigurationError (spec
// §7) describing the first violation found.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errs.ConfigurationError("%v", err)
	}
	return nil
}

// ParseSize parses a positive integer that may carry a K or M suffix
// (case-insensitive), per spec §6's "array size ... accepts K/M suffix".
// Multipliers are decimal (K=1000, M=1,000,000), matching the original
// command-line parser this repo is grounded on (cmdline_merge_parser.hpp),
// not the binary 1024/1048576 convention.
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errs.ConfigurationError("empty size value")
	}

	multiplier := 1
	suffix := s[len(s)-1]
	switch suffix {
	case 'k', 'K':
		multiplier = 1000
		s = s[:len(s)-1]
	case 'm', 'M':
		multiplier = 1000000
		s = s[:len(s)-1]
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.ConfigurationError("invalid size %q: %v", s, err)
	}
	if n <= 0 {
		return 0, errs.ConfigurationError("size must be positive, got %d", n)
	}
	return n * multiplier, nil
}

// DerivedBaseCase returns the effective base-case size: b if non-zero,
// otherwise ceil(n/p) per spec §4.3.3.
func DerivedBaseCase(b, n, p int) (int, error) {
	if b > 0 {
		return b, nil
	}
	if p <= 0 {
		return 0, errs.ConfigurationError("worker count must be positive to derive base-case size, got %d", p)
	}
	return (n + p - 1) / p, nil
}

func (c Config) String() string {
	return fmt.Sprintf("Config{ArraySize:%d PayloadSize:%d BaseCaseSize:%d Workers:%d Seed:%d}",
		c.ArraySize, c.PayloadSize, c.BaseCaseSize, c.Workers, c.Seed)
}

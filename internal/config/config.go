// Copyright 2025 The editdist Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// editdist.Option.
package config

// ColorConfig collects the formatting functions used to color unified diff output. Each field
// wraps one line, without its trailing newline. Nil fields leave the line unformatted.
type ColorConfig struct {
	HunkHeader func(a ...any) string
	Match      func(a ...any) string
	Delete     func(a ...any) string
	Insert     func(a ...any) string
}

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// Substitution enables substitution edges in the edit graph. When false (the default), the
	// engines never generate or emit substitutions.
	Substitution bool

	// MaxCost caps the minimum-cost search when HasMaxCost is set. When the cap trips, the
	// engines return a deterministic upper bound instead of continuing to search, or fail when
	// MaxCostError is also set.
	MaxCost      int
	HasMaxCost   bool
	MaxCostError bool

	// Colors, if non-nil, enables colored unified diff output in textdiff.
	Colors *ColorConfig
}

// Default is the default configuration.
var Default = Config{
	Context: 3,
}

// Flag describes a single config entry. This is used to detect options being set on functions
// that don't support them.
type Flag int

const (
	Context Flag = 1 << iota
	Substitution
	MaxCost
	MaxCostError
	Colors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "editdist.Context"
	case Substitution:
		return "editdist.Substitution"
	case MaxCost:
		return "editdist.MaxCost"
	case MaxCostError:
		return "editdist.MaxCostError"
	case Colors:
		return "color.Colors"
	default:
		panic("never reached")
	}
}

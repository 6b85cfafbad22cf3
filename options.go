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

package editdist

import "editdist.dev/editdist/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Substitution enables or disables substitution edits. The default is disabled: an element can
// only be replaced by a deletion plus an insertion, which together cost 2.
func Substitution(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Substitution = enabled
		return config.Substitution
	}
}

// MaxCost caps the minimum-cost search at limit. When the cheapest remaining path provably
// exceeds the cap, the search stops and a deterministic upper bound is returned instead of the
// true distance; with [MaxCostError] the call fails instead. A cap at least as large as the true
// distance never changes the result.
func MaxCost(limit int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCost = limit
		cfg.HasMaxCost = true
		return config.MaxCost
	}
}

// MaxCostError makes a tripped [MaxCost] cap an error: the call fails with [ErrMaxCostExceeded]
// and produces no script.
func MaxCostError() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxCostError = true
		return config.MaxCostError
	}
}

// Context sets the number of matches to include as a prefix and postfix for hunks returned by
// the textdiff package. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

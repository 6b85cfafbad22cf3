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

const optionsAllowed = config.Substitution | config.MaxCost | config.MaxCostError

// Distance returns the minimum number of edits that transform x into y.
//
// Without options this is the unit-cost edit distance without substitutions, computed by Myers'
// algorithm in O(ND) time and O(D) space. With [Substitution] it is the Levenshtein distance,
// computed by the general engine. [MaxCost] caps the search.
//
// For non-unit costs or a custom emitter use [Align].
func Distance[T comparable](x, y []T, opts ...Option) (int, error) {
	cfg := config.FromOptions(opts, optionsAllowed)
	return Align(x, y, params[T](cfg))
}

// DistanceFunc is like [Distance] but compares elements using the provided equality predicate.
func DistanceFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) (int, error) {
	cfg := config.FromOptions(opts, optionsAllowed)
	return AlignFunc(x, y, eq, params[T](cfg))
}

// Script returns the edits that transform x into y. The edits are in order: replaying them on x
// yields y, and their costs sum to the edit distance.
func Script[T comparable](x, y []T, opts ...Option) ([]Edit[T, int], error) {
	cfg := config.FromOptions(opts, optionsAllowed)
	var rec Recorder[T, int]
	p := params[T](cfg)
	p.Script = &rec
	if _, err := Align(x, y, p); err != nil {
		return nil, err
	}
	return rec.Edits, nil
}

// ScriptFunc is like [Script] but compares elements using the provided equality predicate.
func ScriptFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) ([]Edit[T, int], error) {
	cfg := config.FromOptions(opts, optionsAllowed)
	var rec Recorder[T, int]
	p := params[T](cfg)
	p.Script = &rec
	if _, err := AlignFunc(x, y, eq, p); err != nil {
		return nil, err
	}
	return rec.Edits, nil
}

func params[T any](cfg config.Config) Params[T, int] {
	p := Params[T, int]{
		Substitution: cfg.Substitution,
		MaxCostError: cfg.MaxCostError,
	}
	if cfg.HasMaxCost {
		p.MaxCost = Cap(cfg.MaxCost)
	}
	return p
}

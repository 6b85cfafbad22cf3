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

import (
	"errors"

	"editdist.dev/editdist/internal/dijkstra"
	"editdist.dev/editdist/internal/edits"
	"editdist.dev/editdist/internal/myers"
)

// Number constrains the cost types the engines can accumulate and compare.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Costs bundles the three cost callbacks of an alignment. The zero value means unit costs (every
// insertion, deletion and substitution costs 1) and is recognized at dispatch time: unit-cost
// alignments without substitutions run on Myers' algorithm instead of the general search.
//
// Costs and equality are independent: two elements the equality predicate considers equal always
// align for free, whatever Substitute would return for them.
type Costs[T any, C Number] struct {
	Insert     func(y T) C    // cost of inserting y from the right slice
	Delete     func(x T) C    // cost of deleting x from the left slice
	Substitute func(x, y T) C // cost of replacing x with y; unused while substitutions are disabled
}

func (c Costs[T, C]) unit() bool {
	return c.Insert == nil && c.Delete == nil && c.Substitute == nil
}

// Emitter is the sink for edit scripts. The engines call it in order, corresponding to a
// left-to-right walk of both inputs: replaying the calls on the left slice yields the right one,
// and the emitted costs sum to the returned distance. Substitution is only called when
// substitutions are enabled.
type Emitter[T any, C Number] interface {
	Equality(x, y T)
	Insertion(y T, cost C)
	Deletion(x T, cost C)
	Substitution(x, y T, cost C)
}

// Params collects the optional parameters of [Align] and [AlignFunc]. The zero value computes
// the plain unit-cost edit distance.
type Params[T any, C Number] struct {
	// Cost provides the cost callbacks. The zero value means unit costs.
	Cost Costs[T, C]

	// Script, if non-nil, additionally receives the edit script.
	Script Emitter[T, C]

	// Substitution enables substitution edges. Off by default; while off, no Substitute
	// callback is invoked and no substitution is emitted.
	Substitution bool

	// MaxCost, if non-nil, caps the minimum-cost search. When the cheapest remaining path
	// provably exceeds the cap, the engines stop and return a deterministic upper bound
	// computed by a linear completion — or fail with [ErrMaxCostExceeded] when MaxCostError is
	// set, in which case no script is emitted.
	MaxCost      *C
	MaxCostError bool
}

// Cap returns a pointer to limit, for use as [Params].MaxCost.
func Cap[C Number](limit C) *C { return &limit }

var (
	// ErrMaxCostExceeded reports that the minimum edit cost provably exceeds Params.MaxCost. It
	// is returned only when Params.MaxCostError is set.
	ErrMaxCostExceeded = errors.New("editdist: maximum edit cost exceeded")

	// ErrNegativeCost reports that a cost callback returned a negative cost. Detection is best
	// effort: the callback must have been invoked during the search.
	ErrNegativeCost = errors.New("editdist: cost callback returned a negative cost")
)

// Align computes the minimum-cost edit distance between x and y under p, comparing elements with
// ==. If p.Script is set, the edit script achieving the distance is emitted as well.
func Align[T comparable, C Number](x, y []T, p Params[T, C]) (C, error) {
	if p.Cost.unit() && !p.Substitution && p.Script != nil {
		// Unit cost, no substitutions, script requested: Myers with the unique-element
		// preprocessing that only works for comparable types.
		flags, exceeded := myers.Diff(x, y, limitOf(p))
		return finishUnit(x, y, flags, exceeded, p)
	}
	return AlignFunc(x, y, func(a, b T) bool { return a == b }, p)
}

// AlignFunc computes the minimum-cost edit distance between x and y under p, comparing elements
// with eq. If p.Script is set, the edit script achieving the distance is emitted as well.
func AlignFunc[T any, C Number](x, y []T, eq func(a, b T) bool, p Params[T, C]) (C, error) {
	if p.Cost.unit() && !p.Substitution {
		if p.Script == nil {
			d, exceeded := myers.Distance(x, y, eq, limitOf(p))
			if exceeded && p.MaxCostError {
				return 0, ErrMaxCostExceeded
			}
			return C(d), nil
		}
		flags, exceeded := myers.DiffFunc(x, y, eq, limitOf(p))
		return finishUnit(x, y, flags, exceeded, p)
	}
	return general(x, y, eq, p)
}

func limitOf[T any, C Number](p Params[T, C]) myers.Limit {
	if p.MaxCost == nil {
		return myers.Limit{}
	}
	return myers.Limit{Max: int(*p.MaxCost), Valid: true}
}

func finishUnit[T any, C Number](x, y []T, flags []edits.Flag, exceeded bool, p Params[T, C]) (C, error) {
	if exceeded && p.MaxCostError {
		return 0, ErrMaxCostExceeded
	}
	d := emitFlags(x, y, flags, p.Script)
	return C(d), nil
}

// emitFlags walks the flags vector left to right, feeds the emitter and returns the number of
// edits, which for unit costs is the distance.
func emitFlags[T any, C Number](x, y []T, flags []edits.Flag, em Emitter[T, C]) int {
	d := 0
	for s, t := 0, 0; s < len(x) || t < len(y); {
		// Handle one case per iteration so that consecutive deletions followed by insertions
		// are grouped by operation instead of being interleaved.
		switch {
		case flags[s]&edits.Delete != 0:
			em.Deletion(x[s], 1)
			s++
			d++
		case flags[t]&edits.Insert != 0:
			em.Insertion(y[t], 1)
			t++
			d++
		default:
			em.Equality(x[s], y[t])
			s++
			t++
		}
	}
	return d
}

// general runs the Dijkstra engine for everything the Myers engines can't handle: non-unit
// costs, substitutions, or both.
func general[T any, C Number](x, y []T, eq func(a, b T) bool, p Params[T, C]) (C, error) {
	ins, del, sub := p.Cost.Insert, p.Cost.Delete, p.Cost.Substitute
	if ins == nil {
		ins = func(T) C { return 1 }
	}
	if del == nil {
		del = func(T) C { return 1 }
	}
	if sub == nil {
		sub = func(T, T) C { return 1 }
	}

	var neg bool
	fn := dijkstra.Funcs[T, C]{
		Ins: func(v T) C {
			c := ins(v)
			if c < 0 {
				neg = true
			}
			return c
		},
		Del: func(v T) C {
			c := del(v)
			if c < 0 {
				neg = true
			}
			return c
		},
		Sub: func(a, b T) C {
			c := sub(a, b)
			if c < 0 {
				neg = true
			}
			return c
		},
	}

	var lim dijkstra.Limit[C]
	if p.MaxCost != nil {
		lim = dijkstra.Limit[C]{Max: *p.MaxCost, Valid: true}
	}
	var em dijkstra.Emitter[T, C]
	if p.Script != nil {
		em = p.Script
	}

	d, exceeded := dijkstra.Search(x, y, eq, fn, p.Substitution, em, lim, p.MaxCostError)
	if neg {
		return 0, ErrNegativeCost
	}
	if exceeded && p.MaxCostError {
		return 0, ErrMaxCostExceeded
	}
	return d, nil
}

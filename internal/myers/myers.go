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

package myers

import (
	"math"

	"editdist.dev/editdist/internal/edits"
)

// Limit is an optional cap on the edit distance the engines will search for. When the cap trips,
// the engines record an upper-bound set of edits instead of an optimal one.
type Limit struct {
	Max   int
	Valid bool
}

// Diff compares the contents of x and y and returns the edit flags necessary to convert from one
// to the other, plus whether the cost cap tripped.
func Diff[T comparable](x, y []T, lim Limit) ([]edits.Flag, bool) {
	if lim.Valid {
		// The cap counts every edit, so all of them have to go through the search; the
		// unique-element reduction below would take its edits off the books.
		return DiffFunc(x, y, func(a, b T) bool { return a == b }, lim)
	}

	flags := edits.Make(len(x), len(y))

	smin, tmin := 0, 0
	smax, tmax := len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	// Handle trivial cases without doing anything extra.
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			flags[s] |= edits.Delete
		}
		return flags, false
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			flags[t] |= edits.Insert
		}
		return flags, false
	case smin == smax && tmin == tmax:
		return flags, false
	}

	// First reduce the problem size by skipping all elements that are unique to x or y. Those are
	// always deletions or insertions respectively. This optimization dramatically reduces the
	// time it takes to compute very large diffs, because in practice those diffs will have many
	// elements unique to x or y.
	//
	// While we're at it, also assign a unique ID to every non-unique element to use for
	// comparisons during the application of Myers algorithm:
	//
	//  - scan x and assign a negative id to every unique element in x
	//  - scan y and change the sign of every element that also appears in y
	unique := make(map[T]int, smax-smin)
	for s := smin; s < smax; s++ {
		if unique[x[s]] == 0 {
			unique[x[s]] = -(len(unique) + 1)
		}
	}
	ny := 0
	for t := tmin; t < tmax; t++ {
		if id := unique[y[t]]; id < 0 {
			// not unique
			unique[y[t]] = -id
			ny++
		} else if id > 0 {
			// not unique
			ny++
		}
	}
	nx := 0
	for s := smin; s < smax; s++ {
		if unique[x[s]] > 0 {
			nx++
		}
	}
	// Use the information about the unique elements to generate a subset of non-unique elements
	// to apply Myers algorithm on. If an id is > 0, the element appears in both x and y, if it is
	// <= 0 it only appears in either x or y.
	buf := make([]int, 2*(nx+ny))
	var x0, y0, xidx, yidx []int
	x0, buf = buf[:0:nx], buf[nx:]
	y0, buf = buf[:0:ny], buf[ny:]
	xidx, buf = buf[:0:nx], buf[nx:]
	yidx, buf = buf[:0:ny], buf[ny:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}
	for s := smin; s < smax; s++ {
		if id := unique[x[s]]; id > 0 {
			xidx = append(xidx, s)
			x0 = append(x0, id)
		} else {
			// Unique to x, always a deletion.
			flags[s] |= edits.Delete
		}
	}
	for t := tmin; t < tmax; t++ {
		if id := unique[y[t]]; id > 0 {
			yidx = append(yidx, t)
			y0 = append(y0, id)
		} else {
			// Unique to y, always an insertion.
			flags[t] |= edits.Insert
		}
	}

	// Perform Myers algorithm on the unique IDs.
	eq := func(a, b int) bool { return a == b }
	var m myers[int]
	m.xidx, m.yidx = xidx, yidx
	m.flags = flags
	smin0, smax0, tmin0, tmax0 := m.init(x0, y0, eq)
	m.compare(smin0, smax0, tmin0, tmax0, eq)

	return flags, false
}

// DiffFunc compares the contents of x and y using the provided equality predicate and returns the
// edit flags necessary to convert from one to the other, plus whether the cost cap tripped.
//
// Note that this function has generally worse performance than [Diff] for diffs with many changes.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, lim Limit) ([]edits.Flag, bool) {
	flags := edits.Make(len(x), len(y))

	smin, tmin := 0, 0
	smax, tmax := len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	// Handle trivial cases without doing anything extra. Their edit count is exact, so the cap
	// trips only when that count lies above it.
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			flags[s] |= edits.Delete
		}
		return flags, lim.Valid && smax-smin > lim.Max
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			flags[t] |= edits.Insert
		}
		return flags, lim.Valid && tmax-tmin > lim.Max
	case smin == smax && tmin == tmax:
		return flags, false
	}

	var m myers[T]
	m.flags = flags
	m.limit = lim
	smin, smax, tmin, tmax = m.init(x, y, eq)
	m.compare(smin, smax, tmin, tmax, eq)
	return m.flags, m.exceeded
}

type myers[T any] struct {
	// Inputs to compare.
	x, y []T

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k] where v0 = N+M+1 is the offset that
	// translates k in [-(N+M), N+M] to k0 = v0+k in [1, 2*(N+M)+1], leaving one border cell on
	// either side. The endpoints only store the s-coordinate since t = s - k.
	vf, vb []int
	v0     int

	// Optional cap on the number of edits.
	limit    Limit
	exceeded bool

	// Mapping of s, t indices to the location in the flags vector.
	xidx, yidx []int

	// Result vector.
	flags []edits.Flag
}

func (m *myers[T]) init(x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	N, M := smax-smin, tmax-tmin
	diagonals := N + M
	vlen := 2*diagonals + 3    // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen) // allocate space for vf and vb with a single allocation

	m.x = x
	m.y = y
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1 // +1 for the middle point

	if m.xidx == nil || m.yidx == nil {
		idx := make([]int, max(len(x), len(y)))
		for i := range idx {
			idx[i] = i
		}
		m.xidx = idx[:len(x)]
		m.yidx = idx[:len(y)]
	}

	if m.flags == nil {
		m.flags = edits.Make(len(x), len(y))
	}
	return
}

// compare finds an optimal d-path from (smin, tmin) to (smax, tmax) and records its edits in the
// flags vector.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix.
func (m *myers[T]) compare(smin, smax, tmin, tmax int, eq func(x, y T) bool) {
	if smin == smax {
		// x is empty, therefore everything in tmin to tmax is an insertion.
		for t := tmin; t < tmax; t++ {
			m.flags[m.yidx[t]] |= edits.Insert
		}
	} else if tmin == tmax {
		// y is empty, therefore everything in smin to smax is a deletion.
		for s := smin; s < smax; s++ {
			m.flags[m.xidx[s]] |= edits.Delete
		}
	} else {
		// Use split to divide the input into three pieces:
		//
		//   (1) A, possibly empty, rect (smin, tmin) to (s0, t0)
		//   (2) A, possibly empty, sequence of diagonals (matches) (s0, t0) to (s1, t1), or, if
		//       the cost cap tripped, an unresolved rect that is resolved by a linear scan
		//   (3) A, possibly empty, rect (s1, t1) to (smax, tmax)
		//
		// (1) and (3) will not have a common suffix or a common prefix, so we can use them
		// directly as inputs to compare.
		s0, s1, t0, t1, lin, ok := m.split(smin, smax, tmin, tmax, eq)
		if !ok || (lin && (s0 == smax && t0 == tmax || s1 == smin && t1 == tmin)) {
			// The cap tripped without a usable partial path, or with one that wouldn't shrink
			// the problem. Resolve the whole rect linearly.
			m.linear(smin, smax, tmin, tmax, eq)
			return
		}

		// Recurse into (1) and (3).
		m.compare(smin, s0, tmin, t0, eq)
		if lin {
			m.linear(s0, s1, t0, t1, eq)
		}
		m.compare(s1, smax, t1, tmax, eq)
	}
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of an
// optimal path from (smin, tmin) to (smax, tmax).
//
// When the cost cap trips, split instead returns the best partial result with lin set: the middle
// piece is then an unresolved rect rather than a sequence of diagonals. ok is false if there is
// no usable partial result at all.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and
// they may not both be empty.
func (m *myers[T]) split(smin, smax, tmin, tmax int, eq func(x, y T) bool) (r0, r1, q0, q1 int, lin, ok bool) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k. Since t = s - k, we can determine the min and max for k using: k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// In contrast to the paper, we're going to number all diagonals with consistent k's by
	// centering the forwards and backwards searches around different midpoints. This way, we
	// don't need to convert k's when checking for overlap and it improves readability.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// We know from Corollary 1 that the optimal diff length is going to be odd or even as (N-M)
	// is odd or even. We're going to use this below to decide on when to check for path overlaps.
	odd := (N-M)%2 != 0

	// Since we can assume that split is not called with a common prefix or suffix, we know that
	// x != y, therefore there is no 0-path and we can start at d=1, which allows us to omit
	// special handling of d==0 in the hot k-loops below.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax
	for d := 1; ; d++ {
		// Each loop iteration, we're trying to find a d-path by first searching forwards and then
		// searching backwards. If the two paths overlap, we have found a d-path, if not we're
		// going to continue searching.

		// Forwards iteration.
		//
		// First determine which diagonals k to search. Originally, we would search k = [fmid-d,
		// fmid+d] in steps of 2, but that would lead us to move outside the edit grid and would
		// require more memory, more work, and special handling for s and t coordinates outside x
		// and y.
		//
		// Additionally, we're also initializing the v-array such that we can avoid a special case
		// in the k-loop below (for that we allocated an extra two elements up front): It lets us
		// handle the top and left hand border with the same logic as any other value.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		// The k-loop searches for the furthest reaching d-path in diagonal k.
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0 // k as an index into vf

			// According to Lemma 2 there are two possible furthest reaching d-paths: one
			// extending the furthest reaching (d-1)-path on diagonal k-1 with a horizontal edge,
			// one extending the one on diagonal k+1 with a vertical edge; either followed by the
			// longest possible sequence of diagonals.
			var s int
			if vf[k0-1] < vf[k0+1] {
				// Vertical edge, implied by t = s - k.
				s = vf[k0+1]
			} else {
				// Horizontal edge, also taken when vf[k0-1] == vf[k0+1]. Handling that case here
				// prioritizes deletions over insertions.
				s = vf[k0-1] + 1
			}
			t := s - k

			// Then follow the diagonals as long as possible.
			s0, t0 := s, t
			for s < smax && t < tmax && eq(x[s], y[t]) {
				s++
				t++
			}

			// Then store the endpoint of the furthest reaching d-path.
			vf[k0] = s

			// Potentially, check for an overlap with a backwards d-path. We're done when we found
			// it.
			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return s0, s, t0, t, false, true
			}
		}

		// Backwards iteration.
		//
		// This is mostly analogous to the forward iteration.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			s0, t0 := s, t
			for s > smin && t > tmin && eq(x[s-1], y[t-1]) {
				s--
				t--
			}

			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, s0, t, t0, false, true
			}
		}

		// Cost cap: after iteration d the cheapest still-possible path costs 2d+1 (odd) or 2d+2
		// (even). When that exceeds the cap, stop searching and split at the best partial path
		// found so far; the unresolved rect is completed by a linear scan in compare.
		if m.limit.Valid {
			next := 2*d + 2
			if odd {
				next = 2*d + 1
			}
			if next > m.limit.Max {
				return m.bail(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax)
			}
		}
	}
}

// bail selects the best partial path from the current v-arrays: a forward and a backward endpoint
// sharing a diagonal when available, else the better of the furthest reaching forward and
// backward endpoints. The returned middle piece is the rect left unresolved by the partial paths.
func (m *myers[T]) bail(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (r0, r1, q0, q1 int, lin, ok bool) {
	m.exceeded = true
	vf, vb, v0 := m.vf, m.vb, m.v0

	// Bidirectional: a forward and a backward endpoint on one diagonal with the forward one not
	// past the backward one leaves only the span between them unresolved. Requires both sweeps
	// to cover diagonals of the same parity.
	if (fmin-bmin)%2 == 0 {
		bestw := math.MinInt
		var bs0, bs1, bk int
		for k := max(fmin, bmin); k <= min(fmax, bmax); k += 2 {
			k0 := k + v0
			sf, sb := vf[k0], vb[k0]
			if sf < smin || sf > smax || sf-k < tmin || sf-k > tmax {
				continue
			}
			if sb < smin || sb > smax || sb-k < tmin || sb-k > tmax {
				continue
			}
			if sf > sb {
				continue
			}
			w := (sf + (sf - k) - smin - tmin) + (smax + tmax - sb - (sb - k))
			if w > bestw {
				bestw, bs0, bs1, bk = w, sf, sb, k
			}
		}
		if bestw > math.MinInt {
			return bs0, bs1, bs0 - bk, bs1 - bk, true, true
		}
	}

	// Find the endpoint of the furthest reaching forward d-path that maximizes s+t.
	fbest, fbestk := math.MinInt, 0
	for k := fmin; k <= fmax; k += 2 {
		k0 := k + v0
		s := vf[k0]
		t := s - k
		if smin <= s && s <= smax && tmin <= t && t <= tmax && fbest < s+t {
			fbest = s + t
			fbestk = k
		}
	}

	// Find the endpoint of the furthest reaching backward d-path that minimizes s+t.
	bbest, bbestk := math.MaxInt, 0
	for k := bmin; k <= bmax; k += 2 {
		k0 := k + v0
		s := vb[k0]
		t := s - k
		if smin <= s && s <= smax && tmin <= t && t <= tmax && s+t < bbest {
			bbest = s + t
			bbestk = k
		}
	}

	// Use the better of the two d-paths.
	switch {
	case fbest > math.MinInt && (bbest == math.MaxInt || fbest-(smin+tmin) >= (smax+tmax)-bbest):
		s := vf[fbestk+v0]
		return s, smax, s - fbestk, tmax, true, true
	case bbest < math.MaxInt:
		s := vb[bbestk+v0]
		return smin, s, tmin, s - bbestk, true, true
	default:
		return 0, 0, 0, 0, false, false
	}
}

// linear resolves a rect by pairing elements along the diagonal: equal pairs match, unequal
// pairs become a deletion plus an insertion, and the overhang becomes a run of deletions or
// insertions. This is the deterministic upper-bound completion used when the cost cap trips.
func (m *myers[T]) linear(smin, smax, tmin, tmax int, eq func(x, y T) bool) {
	s, t := smin, tmin
	for s < smax && t < tmax {
		if !eq(m.x[s], m.y[t]) {
			m.flags[m.xidx[s]] |= edits.Delete
			m.flags[m.yidx[t]] |= edits.Insert
		}
		s++
		t++
	}
	for ; s < smax; s++ {
		m.flags[m.xidx[s]] |= edits.Delete
	}
	for ; t < tmax; t++ {
		m.flags[m.yidx[t]] |= edits.Insert
	}
}

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

import "math"

// Distance returns the edit distance between x and y using the bidirectional variant of Myers'
// algorithm with O(D) working memory: forward and backward sweeps advance in lockstep and the
// distance is known as soon as they meet, without materializing any edits.
//
// The second result reports whether the cost cap tripped; in that case the returned distance is
// a deterministic upper bound.
func Distance[T any](x, y []T, eq func(a, b T) bool, lim Limit) (int, bool) {
	n, m := len(x), len(y)

	// Strip common prefix and suffix.
	eqb := 0
	for eqb < n && eqb < m && eq(x[eqb], y[eqb]) {
		eqb++
	}
	eqe := 0
	for eqe < n-eqb && eqe < m-eqb && eq(x[n-1-eqe], y[m-1-eqe]) {
		eqe++
	}
	s1 := x[eqb : n-eqe]
	s2 := y[eqb : m-eqe]
	L1, L2 := len(s1), len(s2)

	// Either or both stripped strings are empty: the distance is exact, and the cap trips when
	// the distance lies above it.
	if L1 == 0 {
		return L2, lim.Valid && L2 > lim.Max
	}
	if L2 == 0 {
		return L1, lim.Valid && L1 > lim.Max
	}

	delta := L1 - L2
	deltaEven := delta%2 == 0

	// The v-array stores the forward endpoints in v[foff+k] for k in [-r, r] and the backward
	// endpoints in v[roff+k] for k in [delta-r, delta+r]. It is grown by 1.5x whenever d reaches
	// the capacity radius r, keeping the memory bound at O(D).
	r := 10
	v := make([]int, 2+4*r)
	foff := r
	roff := 3*r + 1 - delta

	// Seeds such that the d=0 iteration needs no special casing.
	v[foff+1] = 0
	v[roff+delta-1] = L1

	for d := 0; ; d++ {
		// Advance the forward-path diagonals.
		for k := -d; k <= d; k += 2 {
			var j1 int
			if k == -d || (k != d && v[foff+k-1] < v[foff+k+1]) {
				j1 = v[foff+k+1]
			} else {
				j1 = v[foff+k-1] + 1
			}
			j2 := j1 - k
			for j1 < L1 && j2 < L2 && eq(s1[j1], s2[j2]) {
				j1++
				j2++
			}
			v[foff+k] = j1
			// With an odd delta, only a forward path can complete an odd-length path; check
			// whether it met or crossed the backward path on this diagonal.
			if !deltaEven && k-delta >= -(d-1) && k-delta <= d-1 && j1 >= v[roff+k] {
				return 2*d - 1, false
			}
		}

		// Advance the backward-path diagonals.
		for k := delta - d; k <= delta+d; k += 2 {
			var j1 int
			if k == delta+d || (k != delta-d && v[roff+k-1] < v[roff+k+1]) {
				j1 = v[roff+k-1]
			} else {
				j1 = v[roff+k+1] - 1
			}
			j2 := j1 - k
			for j1 > 0 && j2 > 0 && eq(s1[j1-1], s2[j2-1]) {
				j1--
				j2--
			}
			v[roff+k] = j1
			if deltaEven && k >= -d && k <= d && v[foff+k] >= j1 {
				return 2 * d, false
			}
		}

		// Cost cap: after iteration d the cheapest still-possible distance is 2d+1 (odd delta)
		// or 2d+2 (even delta).
		if lim.Valid {
			next := 2*d + 1
			if deltaEven {
				next = 2*d + 2
			}
			if next > lim.Max {
				return distanceBail(s1, s2, eq, v, foff, roff, delta, d), true
			}
		}

		// Grow the v-array as needed.
		if d >= r {
			rp := r + r>>1
			nv := make([]int, 2+4*rp)
			nfoff := rp
			nroff := 3*rp + 1 - delta
			for k := -d; k <= d; k++ {
				nv[nfoff+k] = v[foff+k]
			}
			for k := delta - d; k <= delta+d; k++ {
				nv[nroff+k] = v[roff+k]
			}
			v, r, foff, roff = nv, rp, nfoff, nroff
		}
	}
}

// distanceBail computes an upper bound on the distance from the best partial paths in the
// v-array: the forward and backward endpoints sharing a diagonal with the largest combined
// progress when available, else the better of the furthest reaching forward and backward
// endpoints; the rectangle they leave unresolved is completed by a linear scan counting 2 for an
// unequal pair and 1 for each overhang element.
func distanceBail[T any](s1, s2 []T, eq func(a, b T) bool, v []int, foff, roff, delta, d int) int {
	L1, L2 := len(s1), len(s2)

	// The unresolved span and the cost already spent reaching it.
	b1, b2, e1, e2, c := 0, 0, L1, L2, 0

	found := false
	if delta%2 == 0 {
		// Forward endpoints hold diagonals of parity d, backward ones of parity d+delta; a
		// shared diagonal requires an even delta. The guard below keeps us from reading cells no
		// sweep has written.
		bestw := math.MinInt
		for k := max(-d, delta-d); k <= min(d, delta+d); k += 2 {
			jf, jr := v[foff+k], v[roff+k]
			if jf < 0 || jf > L1 || jf-k < 0 || jf-k > L2 {
				continue
			}
			if jr < 0 || jr > L1 || jr-k < 0 || jr-k > L2 {
				continue
			}
			if jf > jr {
				continue
			}
			w := (jf + (jf - k)) + (L1 - jr + L2 - (jr - k))
			if w > bestw {
				bestw = w
				b1, b2, e1, e2, c = jf, jf-k, jr, jr-k, 2*d
				found = true
			}
		}
	}
	if !found {
		fw, fk := math.MinInt, 0
		for k := -d; k <= d; k += 2 {
			j1 := v[foff+k]
			j2 := j1 - k
			if j1 < 0 || j1 > L1 || j2 < 0 || j2 > L2 {
				continue
			}
			if j1+j2 > fw {
				fw, fk = j1+j2, k
			}
		}
		rw, rk := math.MinInt, 0
		for k := delta - d; k <= delta+d; k += 2 {
			j1 := v[roff+k]
			j2 := j1 - k
			if j1 < 0 || j1 > L1 || j2 < 0 || j2 > L2 {
				continue
			}
			if (L1-j1)+(L2-j2) > rw {
				rw, rk = (L1-j1)+(L2-j2), k
			}
		}
		switch {
		case fw > math.MinInt && fw >= rw:
			b1, b2, e1, e2, c = v[foff+fk], v[foff+fk]-fk, L1, L2, d
		case rw > math.MinInt:
			b1, b2, e1, e2, c = 0, 0, v[roff+rk], v[roff+rk]-rk, d
		}
	}

	// Linear completion of the unresolved rectangle.
	j1, j2 := b1, b2
	for j1 < e1 && j2 < e2 {
		if !eq(s1[j1], s2[j2]) {
			c += 2
		}
		j1++
		j2++
	}
	c += (e1 - j1) + (e2 - j2)
	return c
}

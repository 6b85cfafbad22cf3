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

// Package myers contains an implementation of Myers' algorithm for the unit-cost case without
// substitutions.
//
// Two variants are provided: [Distance] computes only the edit distance using the bidirectional
// sweep from section 4b of the paper with O(D) working memory, and [Diff]/[DiffFunc] recover the
// full set of edits using the linear space refinement from section 4.2.
//
// # Myers Algorithm
//
// The algorithm is a graph search on the graph modelling all possible edits that transform x to y.
// For simplicity, let's say that T is the []byte representation of string and the inputs are x =
// "ABCABBA" and y = "CBABAC". Then we can represent all possible edits from x to y with the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// Every vertex (intersections in the graph above) corresponds to a state. The top left (0,0)
// corresponds to x and bottom right (7,6) to y.
//
// Every edge represents an edit. A step to the right represents a deletion of an element (e.g.
// moving from (0,0) to (1,0) deletes the first "A") and a step down represents an insertion (e.g.
// moving from (0,0) to (0,1) inserts a "C"). When both elements are identical, we also have
// diagonal edges representing a match.
//
// The idea behind Myers' algorithm is to find an optimal diff (fewest insertions and deletions) by
// finding a minimum-cost path from the top left (i.e. x) to the bottom right (i.e. y) where
// horizontal and vertical edges have a cost of 1 and diagonal edges have a cost of 0.
//
// We're going to use s and t for the horizontal and vertical coordinates and k for diagonals. The
// k=0 diagonal is the diagonal starting in (0, 0).
//
// Let a D-path be a path that has exactly D non-diagonal edges. A 0-path consists of only diagonal
// edges. By induction, it follows that a D-path must consist of a (D-1)-path plus a non-diagonal
// edge plus a possibly empty sequence of diagonal edges.
//
// Lemma 1: A D-path must end on diagonal k in {-D, -D+2, ..., D-2, D}.
//
// Corollary 1: A D-path ends on odd diagonals when D is odd and on even diagonals when D is even.
//
// Lemma 2: A furthest reaching D-path on diagonal k can without loss of generality be decomposed
// into a furthest reaching (D-1)-path on diagonal k-1, followed by a horizontal edge, followed by
// the longest possible sequence of diagonal edges, or into a furthest reaching (D-1)-path on
// diagonal k+1, followed by a vertical edge, followed by the longest possible sequence of diagonal
// edges.
//
// The lemma provides a greedy algorithm to compute the distance with O(D) memory by keeping only
// the furthest reaching endpoint per diagonal. To also recover the edits in linear space, a
// second search is run backwards from (N,M) and the point where the two searches meet (the middle
// snake) splits the problem into two halves that are solved recursively.
//
// Lemma 3: There is a D-path from (0,0) to (N,M) if and only if there is a ⌈D/2⌉-path from (0,0)
// to some point (s,t) and a ⌊D/2⌋-path from some point (s',t') to (N,M) such that:
//
//   - (feasibility)  s'+t' >= ⌈D/2⌉ and s+t <= N+M-⌊D/2⌋, and
//   - (overlap)      s-t = s'-t' and s >= s'
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// # Max-cost cap
//
// Both variants accept an optional cap on the distance. After the sweeps for iteration d, the
// cheapest still-possible outcome is 2d+1 (odd delta) or 2d+2 (even delta); when that exceeds the
// cap the search stops at the furthest reaching partial paths and the remaining rectangle is
// completed by a linear scan that pairs elements along the diagonal. The result is a
// deterministic upper bound on the true distance; it equals the true distance whenever the cap
// doesn't trip.
package myers

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

// Package dijkstra implements the general minimum-cost edit distance engine as a single source
// shortest path search over the implicit edit graph.
//
// The graph's vertices are position pairs (i, j) into the two inputs. From an interior vertex
// three edges leave: an insertion to (i, j+1), a deletion to (i+1, j), and a diagonal to
// (i+1, j+1) that is free for equal elements and costs a substitution otherwise (when
// substitutions are enabled; without them the unequal diagonal is absent). The edit distance is
// the cost of the cheapest path from (0, 0) to (len(x), len(y)).
//
// In contrast to the Myers engines this search supports arbitrary non-negative, possibly
// asymmetric cost functions, but visits O(L1*L2) vertices in the worst case. Runs of equal
// elements are compressed: the search slides along the diagonal for free and generates candidate
// edges only at the end of the run, which keeps the visited set small for similar inputs.
package dijkstra

import "container/heap"

// Number constrains the cost types the engine can accumulate and compare.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Funcs bundles the cost callbacks. All three must be non-nil; Sub is never called when
// substitutions are disabled.
type Funcs[T any, C Number] struct {
	Ins func(T) C
	Del func(T) C
	Sub func(T, T) C
}

// Emitter receives the edit script of the cheapest path in order, from the start of the inputs
// to their end.
type Emitter[T any, C Number] interface {
	Equality(x, y T)
	Insertion(y T, cost C)
	Deletion(x T, cost C)
	Substitution(x, y T, cost C)
}

// Limit is an optional cap on the cost the search will explore.
type Limit[C Number] struct {
	Max   C
	Valid bool
}

// Edge kinds recorded per path node for the traceback.
const (
	opStart int8 = iota
	opMatch      // equal diagonal step
	opSub        // substitution diagonal step
	opSubPair    // substitution decomposed into deletion+insertion (the cheaper of the two)
	opDel
	opIns
)

// node is a path head in the search. Nodes live in an arena and reference their predecessor by
// arena index, so the best path can be traced back with a simple index chase.
type node[C Number] struct {
	i, j int32
	cost C
	prev int32
	op   int8
}

type search[T any, C Number] struct {
	x, y []T
	eq   func(a, b T) bool
	cost Funcs[T, C]
	sub  bool

	arena   []node[C]
	visited map[uint64]int32
	pq      []int32
}

func (s *search[T, C]) Len() int { return len(s.pq) }

func (s *search[T, C]) Less(a, b int) bool {
	na, nb := &s.arena[s.pq[a]], &s.arena[s.pq[b]]
	if na.cost != nb.cost {
		return na.cost < nb.cost
	}
	// Prefer nodes further along; this keeps equal-cost exploration moving towards the end.
	return na.i+na.j > nb.i+nb.j
}

func (s *search[T, C]) Swap(a, b int) { s.pq[a], s.pq[b] = s.pq[b], s.pq[a] }

func (s *search[T, C]) Push(v any) { s.pq = append(s.pq, v.(int32)) }

func (s *search[T, C]) Pop() any {
	old := s.pq
	n := len(old)
	v := old[n-1]
	s.pq = old[:n-1]
	return v
}

func key(i, j int32) uint64 {
	return uint64(uint32(i))<<32 | uint64(uint32(j))
}

// construct admits a path head for (i, j) with accumulated cost c: if a head for the same
// position with an equal or lower cost exists the new head is rejected and -1 is returned,
// otherwise the head is allocated and replaces the previous one in the visited map.
func (s *search[T, C]) construct(i, j int, c C, prev int32, op int8) int32 {
	k := key(int32(i), int32(j))
	if idx, ok := s.visited[k]; ok && s.arena[idx].cost <= c {
		return -1
	}
	idx := int32(len(s.arena))
	s.arena = append(s.arena, node[C]{i: int32(i), j: int32(j), cost: c, prev: prev, op: op})
	s.visited[k] = idx
	return idx
}

// Search runs the shortest path search and returns the edit distance. When em is non-nil the
// edit script of the found path is emitted. The second result reports whether the max-cost cap
// tripped; in that case the returned distance is a deterministic upper bound, or, when strict is
// set, zero with no emitter output.
func Search[T any, C Number](x, y []T, eq func(a, b T) bool, cost Funcs[T, C], sub bool, em Emitter[T, C], lim Limit[C], strict bool) (C, bool) {
	s := &search[T, C]{
		x: x, y: y, eq: eq, cost: cost, sub: sub,
		arena:   make([]node[C], 0, 64),
		visited: make(map[uint64]int32, 64),
	}
	n, m := len(x), len(y)

	start := s.construct(0, 0, 0, -1, opStart)
	heap.Push(s, start)

	// best tracks the pareto-best finalized node as the resume point for the max-cost fallback:
	// the node with the most combined progress, ties broken towards the diagonal through the
	// end of both inputs.
	best := start

	for {
		h := heap.Pop(s).(int32)
		hn := s.arena[h]
		if s.visited[key(hn.i, hn.j)] != h {
			// A cheaper head for this position was admitted after this one was pushed.
			continue
		}

		if lim.Valid && hn.cost > lim.Max {
			if strict {
				return 0, true
			}
			return s.bail(best, em, n, m), true
		}

		if bn := &s.arena[best]; hn.i+hn.j > bn.i+bn.j ||
			hn.i+hn.j == bn.i+bn.j && diagDist(hn.i, hn.j, n, m) < diagDist(bn.i, bn.j, n, m) {
			best = h
		}

		i, j := int(hn.i), int(hn.j)
		switch {
		case i == n && j == m:
			// Reached the end of both inputs: hn.cost is the distance.
			if em != nil {
				s.emit(h, em)
			}
			return hn.cost, false

		case i == n:
			// x is exhausted, only insertions remain.
			if t := s.construct(i, j+1, hn.cost+cost.Ins(y[j]), h, opIns); t >= 0 {
				heap.Push(s, t)
			}

		case j == m:
			// y is exhausted, only deletions remain.
			if t := s.construct(i+1, j, hn.cost+cost.Del(x[i]), h, opDel); t >= 0 {
				heap.Push(s, t)
			}

		default:
			// Interior of both inputs. Slide along the diagonal while elements are equal and
			// generate the candidate edges only at the end of the run; the run itself is free
			// and needs no intermediate heads.
			for {
				eqv := s.eq(x[i], y[j])
				if !eqv || i+1 == n || j+1 == m {
					if eqv {
						if t := s.construct(i+1, j+1, hn.cost, h, opMatch); t >= 0 {
							heap.Push(s, t)
						}
					} else if sub {
						sc := cost.Sub(x[i], y[j])
						if dc := cost.Del(x[i]) + cost.Ins(y[j]); em != nil && dc < sc {
							// In script mode a substitution more expensive than deleting and
							// inserting is emitted as the decomposition; ties keep the
							// substitution.
							if t := s.construct(i+1, j+1, hn.cost+dc, h, opSubPair); t >= 0 {
								heap.Push(s, t)
							}
						} else if t := s.construct(i+1, j+1, hn.cost+sc, h, opSub); t >= 0 {
							heap.Push(s, t)
						}
					}
					if t := s.construct(i, j+1, hn.cost+cost.Ins(y[j]), h, opIns); t >= 0 {
						heap.Push(s, t)
					}
					if t := s.construct(i+1, j, hn.cost+cost.Del(x[i]), h, opDel); t >= 0 {
						heap.Push(s, t)
					}
					break
				}
				i++
				j++
			}
		}
	}
}

func diagDist(i, j int32, n, m int) int32 {
	d := (i - j) - int32(n-m)
	if d < 0 {
		return -d
	}
	return d
}

// bail resumes from the pareto-best node and completes the alignment with a deterministic linear
// scan, considering equality, substitution (when enabled) and deletion+insertion at each step.
// The result is an upper bound on the true distance.
func (s *search[T, C]) bail(best int32, em Emitter[T, C], n, m int) C {
	if em != nil {
		s.emit(best, em)
	}
	bn := s.arena[best]
	i, j := int(bn.i), int(bn.j)
	c := bn.cost
	for {
		switch {
		case i == n && j == m:
			return c

		case i == n:
			ic := s.cost.Ins(s.y[j])
			c += ic
			if em != nil {
				em.Insertion(s.y[j], ic)
			}
			j++

		case j == m:
			dc := s.cost.Del(s.x[i])
			c += dc
			if em != nil {
				em.Deletion(s.x[i], dc)
			}
			i++

		case s.eq(s.x[i], s.y[j]):
			if em != nil {
				em.Equality(s.x[i], s.y[j])
			}
			i++
			j++

		default:
			dc := s.cost.Del(s.x[i])
			ic := s.cost.Ins(s.y[j])
			if s.sub {
				if sc := s.cost.Sub(s.x[i], s.y[j]); sc <= dc+ic {
					c += sc
					if em != nil {
						em.Substitution(s.x[i], s.y[j], sc)
					}
					i++
					j++
					continue
				}
			}
			c += dc + ic
			if em != nil {
				em.Deletion(s.x[i], dc)
				em.Insertion(s.y[j], ic)
			}
			i++
			j++
		}
	}
}

// emit replays the path from the start node to leaf on the emitter. Each node's edge is preceded
// by the run of equal elements its predecessor slid across.
func (s *search[T, C]) emit(leaf int32, em Emitter[T, C]) {
	var chain []int32
	for at := leaf; at >= 0; at = s.arena[at].prev {
		chain = append(chain, at)
	}
	for c := len(chain) - 2; c >= 0; c-- { // chain[len-1] is the start node
		nn := s.arena[chain[c]]
		hn := s.arena[nn.prev]

		// Position of the edge's source; everything between the predecessor and it is an equal
		// run.
		var ei, ej int
		switch nn.op {
		case opIns:
			ei, ej = int(nn.i), int(nn.j)-1
		case opDel:
			ei, ej = int(nn.i)-1, int(nn.j)
		default:
			ei, ej = int(nn.i)-1, int(nn.j)-1
		}
		for i, j := int(hn.i), int(hn.j); i < ei; i, j = i+1, j+1 {
			em.Equality(s.x[i], s.y[j])
		}

		switch nn.op {
		case opMatch:
			em.Equality(s.x[ei], s.y[ej])
		case opSub:
			em.Substitution(s.x[ei], s.y[ej], nn.cost-hn.cost)
		case opSubPair:
			em.Deletion(s.x[ei], s.cost.Del(s.x[ei]))
			em.Insertion(s.y[ej], s.cost.Ins(s.y[ej]))
		case opDel:
			em.Deletion(s.x[ei], nn.cost-hn.cost)
		case opIns:
			em.Insertion(s.y[ej], nn.cost-hn.cost)
		}
	}
}

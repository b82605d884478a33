package matching

import "container/heap"

// pairing is one forced or forbidden (row, col) constraint on a subproblem.
type pairing struct{ row, col int }

// subproblem is one node of Murty's search tree: a restricted assignment
// problem carrying the constraints inherited from its ancestors, plus its
// own solved optimum (spec §4.8: "restricted problems ... forced pairs and
// free (forbidden) pairs").
type subproblem struct {
	forced    []pairing
	forbidden []pairing
	perm      []int
	cost      float64
	ok        bool
	index     int // heap bookkeeping
}

// buildMatrix applies a subproblem's constraints to a copy of the base
// cost matrix: a forbidden pair's cell is blocked; a forced pair blocks
// every other cell in its row and column (spec §4.8: "each forced pair
// (a, b) is enforced by marking row a and column b infinity then restoring
// (a, b)").
func buildMatrix(base [][]float64, s *subproblem) [][]float64 {
	n := len(base)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append([]float64(nil), base[i]...)
	}
	for _, f := range s.forbidden {
		m[f.row][f.col] = infCost
	}
	for _, f := range s.forced {
		for c := 0; c < n; c++ {
			if c != f.col {
				m[f.row][c] = infCost
			}
		}
		for r := 0; r < n; r++ {
			if r != f.row {
				m[r][f.col] = infCost
			}
		}
		m[f.row][f.col] = base[f.row][f.col]
	}
	return m
}

func solveSubproblem(base [][]float64, forced, forbidden []pairing) *subproblem {
	m := buildMatrix(base, &subproblem{forced: forced, forbidden: forbidden})
	perm, cost, ok := MinCostPerfectMatching(m)
	return &subproblem{forced: forced, forbidden: forbidden, perm: perm, cost: cost, ok: ok}
}

// forcedRows reports which rows already have a forced assignment.
func (s *subproblem) forcedRows() map[int]bool {
	out := make(map[int]bool, len(s.forced))
	for _, f := range s.forced {
		out[f.row] = true
	}
	return out
}

// KBest iterates successively-worse perfect matchings of an N×N cost
// matrix via Murty's algorithm (spec §4.8), cheapest first.
type KBest struct {
	base [][]float64
	pq   subproblemQueue
}

// NewKBest prepares the k-best search, solving the unconstrained optimum
// as the first candidate (spec: "init: push the unconstrained optimum").
func NewKBest(cost [][]float64) *KBest {
	k := &KBest{base: cost}
	if len(cost) == 0 {
		return k
	}
	root := solveSubproblem(cost, nil, nil)
	heap.Init(&k.pq)
	heap.Push(&k.pq, root)
	return k
}

// Next returns the next-best perfect matching, its total cost, and whether
// it is feasible (no forced/forbidden edge forced an infCost pairing). ok2
// is false once the search is exhausted (spec §4.8's "next").
func (k *KBest) Next() (perm []int, cost float64, feasible bool, ok2 bool) {
	if k.pq.Len() == 0 {
		return nil, 0, false, false
	}
	top := heap.Pop(&k.pq).(*subproblem)

	// An infeasible subproblem holds no finite-cost matching, so none of its
	// children can either: report it as a leaf and do not partition it.
	if !top.ok {
		return append([]int(nil), top.perm...), top.cost, false, true
	}

	n := len(k.base)
	forcedAlready := top.forcedRows()
	var freeRows []int
	for r := 0; r < n; r++ {
		if !forcedAlready[r] {
			freeRows = append(freeRows, r)
		}
	}

	// Partition: for i = 0..len(freeRows)-2, forbid the i-th free row's
	// pairing while forcing every free row before it (spec §4.8).
	for i := 0; i < len(freeRows)-1; i++ {
		childForced := append([]pairing(nil), top.forced...)
		for j := 0; j < i; j++ {
			r := freeRows[j]
			childForced = append(childForced, pairing{row: r, col: top.perm[r]})
		}
		childForbidden := append([]pairing(nil), top.forbidden...)
		childForbidden = append(childForbidden, pairing{row: freeRows[i], col: top.perm[freeRows[i]]})

		child := solveSubproblem(k.base, childForced, childForbidden)
		heap.Push(&k.pq, child)
	}

	return append([]int(nil), top.perm...), top.cost, top.ok, true
}

// subproblemQueue is a min-heap of subproblems ordered by total cost, so
// Next always pops the cheapest remaining candidate (spec §4.8: the
// "max-cost priority queue" selects the current best, i.e. the
// lowest-cost restricted problem, each round). Modeled on the
// container/heap pattern used for the teacher's A* pathfinding queue.
type subproblemQueue []*subproblem

func (q subproblemQueue) Len() int           { return len(q) }
func (q subproblemQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q subproblemQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *subproblemQueue) Push(x interface{}) {
	n := len(*q)
	item := x.(*subproblem)
	item.index = n
	*q = append(*q, item)
}

func (q *subproblemQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

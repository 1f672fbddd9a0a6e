package solver

import (
	"fmt"
	"sort"
)

type branchBoundSolver struct{}

// New creates a Solver based on depth-first branch and bound.
func New() Solver {
	return &branchBoundSolver{}
}

func (s *branchBoundSolver) Solve(items []Item, capacities []float64, rules []SynergyRule) (*Solution, error) {
	if err := validateInput(items, capacities); err != nil {
		return nil, err
	}

	state := newSearchState(items, capacities, rules)
	state.search(0)

	return state.aggregate(items), nil
}

// validateInput rejects configurations the search cannot run on. The ratio
// and bound computations divide by weight, so non-positive weights are
// refused up front rather than detected mid-search.
func validateInput(items []Item, capacities []float64) error {
	if len(capacities) == 0 {
		return ErrNoContainers
	}
	for i, capacity := range capacities {
		if capacity <= 0 {
			return fmt.Errorf("container %d: %w", i, ErrInvalidCapacity)
		}
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Weight <= 0 || item.Value <= 0 {
			return fmt.Errorf("item %q: %w", item.Name, ErrInvalidItem)
		}
		if _, dup := seen[item.Name]; dup {
			return fmt.Errorf("item %q: %w", item.Name, ErrDuplicateItemName)
		}
		seen[item.Name] = struct{}{}
	}
	return nil
}

// searchState carries all mutable data of one solve call. Container weights,
// the assignment vector, and the accumulated base value are mutated in place
// and restored on backtrack; sibling branches never observe each other's
// partial state. Nothing survives past the solve call.
type searchState struct {
	items      []Item // sorted descending by value/weight ratio
	origIndex  []int  // sorted position -> index into the caller's slice
	capacities []float64
	rules      []SynergyRule
	slack      float64

	used       []float64 // per-container accumulated weight
	assignment []int     // per sorted position: container index or Unassigned
	baseValue  float64

	bestAssignment []int
	bestValue      float64
}

func newSearchState(items []Item, capacities []float64, rules []SynergyRule) *searchState {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps the caller's order among ratio ties, which keeps
	// repeated solves on identical input deterministic.
	sort.SliceStable(order, func(a, b int) bool {
		ra := items[order[a]].Value / items[order[a]].Weight
		rb := items[order[b]].Value / items[order[b]].Weight
		return ra > rb
	})

	sorted := make([]Item, len(items))
	for pos, orig := range order {
		sorted[pos] = items[orig]
	}

	state := &searchState{
		items:          sorted,
		origIndex:      order,
		capacities:     capacities,
		rules:          rules,
		slack:          synergySlack(rules),
		used:           make([]float64, len(capacities)),
		assignment:     make([]int, len(items)),
		bestAssignment: make([]int, len(items)),
		bestValue:      0,
	}
	// The all-unassigned assignment is always feasible, so it seeds the
	// incumbent: a solve where nothing fits still yields a complete result.
	for i := range state.assignment {
		state.assignment[i] = Unassigned
		state.bestAssignment[i] = Unassigned
	}
	return state
}

// search explores assign/skip decisions for the item at cursor. cursor ==
// len(items) is a leaf.
func (st *searchState) search(cursor int) {
	if cursor == len(st.items) {
		if total := st.leafValue(); total > st.bestValue {
			copy(st.bestAssignment, st.assignment)
			st.bestValue = total
		}
		return
	}

	var pooled float64
	for i, capacity := range st.capacities {
		if free := capacity - st.used[i]; free > 0 {
			pooled += free
		}
	}

	// Optimistic total for every completion below this node: value committed
	// so far plus the fractional relaxation of the suffix plus the synergy
	// slack. Exact <= comparison, no epsilon, so pruning is reproducible.
	optimistic := st.baseValue + fractionalBound(st.items, cursor, pooled) + st.slack
	if optimistic <= st.bestValue {
		return
	}

	item := st.items[cursor]
	for _, ci := range st.eligibleContainers(item.Weight) {
		st.used[ci] += item.Weight
		st.assignment[cursor] = ci
		st.baseValue += item.Value
		st.search(cursor + 1)
		st.baseValue -= item.Value
		st.assignment[cursor] = Unassigned
		st.used[ci] -= item.Weight
	}

	// Leaving the item out only pays off when the optimistic total without
	// its value still beats the incumbent.
	if optimistic-item.Value > st.bestValue {
		st.search(cursor + 1)
	}
}

// eligibleContainers lists the containers that can take weight, ordered by
// descending remaining capacity (ascending index on ties). Spreading load
// across the roomiest containers first surfaces feasible deep branches
// earlier, which tightens the incumbent and strengthens later pruning.
func (st *searchState) eligibleContainers(weight float64) []int {
	eligible := make([]int, 0, len(st.capacities))
	for i := range st.capacities {
		if st.capacities[i]-st.used[i] >= weight {
			eligible = append(eligible, i)
		}
	}
	sort.SliceStable(eligible, func(a, b int) bool {
		ra := st.capacities[eligible[a]] - st.used[eligible[a]]
		rb := st.capacities[eligible[b]] - st.used[eligible[b]]
		return ra > rb
	})
	return eligible
}

// leafValue scores the complete assignment at a leaf: per container, the sum
// of assigned item values plus the container's synergy bonus.
func (st *searchState) leafValue() float64 {
	var total float64
	names := make([]string, 0, len(st.items))
	for ci := range st.capacities {
		names = names[:0]
		var base float64
		for pos, assigned := range st.assignment {
			if assigned == ci {
				base += st.items[pos].Value
				names = append(names, st.items[pos].Name)
			}
		}
		total += base + synergyBonus(st.rules, names)
	}
	return total
}

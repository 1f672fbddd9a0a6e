package solver

import "math/big"

// Unassigned marks an item that was left out of every container.
const Unassigned = -1

// Item is a candidate for placement. Name is the key synergy rules match on
// and must be unique within a single solve call. Category is descriptive only.
type Item struct {
	ID       int
	Name     string
	Weight   float64
	Value    float64
	Category string
}

// SynergyRule awards Bonus once per container when every listed name is
// present in that container.
type SynergyRule struct {
	Names []string
	Bonus float64
}

// ContainerResult describes one container of a finished solution.
// TotalValue includes the synergy bonuses earned by the container's items.
type ContainerResult struct {
	Items       []Item
	TotalWeight float64
	TotalValue  float64
	Capacity    float64
}

// Solution is the aggregated outcome of a solve call. Assignment maps each
// item of the caller's original item order to a container index or Unassigned;
// it is the only datum downstream display encoders need. UniverseCount is the
// raw size of the assignment space, (containers+1)^items.
type Solution struct {
	Containers    []ContainerResult
	TotalValue    float64
	Assignment    []int
	UniverseCount *big.Int
}

// Solver describes the behaviour required from a packing solver.
// The rule set is an explicit argument so concurrent solves with different
// rules never interfere.
type Solver interface {
	Solve(items []Item, capacities []float64, rules []SynergyRule) (*Solution, error)
}

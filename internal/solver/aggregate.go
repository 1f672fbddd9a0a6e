package solver

import "math/big"

// aggregate turns the best assignment found by the search into the structured
// Solution. The total is recomputed from the per-container sums rather than
// copied from the incumbent, so the returned value is verified against the
// assignment it describes.
func (st *searchState) aggregate(originalItems []Item) *Solution {
	assignment := make([]int, len(originalItems))
	for i := range assignment {
		assignment[i] = Unassigned
	}
	for pos, ci := range st.bestAssignment {
		assignment[st.origIndex[pos]] = ci
	}

	containers := make([]ContainerResult, len(st.capacities))
	for ci, capacity := range st.capacities {
		containers[ci] = ContainerResult{Items: []Item{}, Capacity: capacity}
	}
	for idx, item := range originalItems {
		ci := assignment[idx]
		if ci == Unassigned {
			continue
		}
		containers[ci].Items = append(containers[ci].Items, item)
		containers[ci].TotalWeight += item.Weight
		containers[ci].TotalValue += item.Value
	}

	var total float64
	for ci := range containers {
		names := make([]string, len(containers[ci].Items))
		for i, item := range containers[ci].Items {
			names[i] = item.Name
		}
		containers[ci].TotalValue += synergyBonus(st.rules, names)
		total += containers[ci].TotalValue
	}

	return &Solution{
		Containers:    containers,
		TotalValue:    total,
		Assignment:    assignment,
		UniverseCount: universeCount(len(st.capacities), len(originalItems)),
	}
}

// universeCount is (containers+1)^items, the raw number of assignment
// combinations the search space holds. Purely informational; it overflows
// int64 quickly, hence the big integer.
func universeCount(containers, items int) *big.Int {
	base := big.NewInt(int64(containers) + 1)
	exp := big.NewInt(int64(items))
	return new(big.Int).Exp(base, exp, nil)
}

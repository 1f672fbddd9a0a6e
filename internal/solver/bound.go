package solver

// synergySlackFactor scales the sum of all rule bonuses into the slack term
// added to every bound. The fractional relaxation cannot foresee bonuses, so
// the engine grants this fixed allowance instead. It is a heuristic carried
// over from the accepted behaviour of the engine, not a proven bound.
const synergySlackFactor = 0.3

// fractionalBound computes the fractional-relaxation upper bound on the base
// value achievable from the suffix items[cursor:] inside a single pooled
// capacity. Items must already be sorted by descending value/weight ratio.
// The relaxation drops both the per-container separation and the integrality
// of the item that does not fully fit, so it never underestimates.
func fractionalBound(items []Item, cursor int, pooled float64) float64 {
	var bound float64
	remaining := pooled
	for i := cursor; i < len(items); i++ {
		item := items[i]
		if item.Weight <= remaining {
			bound += item.Value
			remaining -= item.Weight
			continue
		}
		if remaining > 0 {
			bound += item.Value * remaining / item.Weight
		}
		break
	}
	return bound
}

// synergySlack is the constant allowance added on top of fractionalBound.
func synergySlack(rules []SynergyRule) float64 {
	return synergySlackFactor * totalBonus(rules)
}

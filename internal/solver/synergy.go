package solver

// synergyBonus sums the bonus of every rule whose required names all appear
// in names. A rule fires at most once per evaluation; independent rules may
// both fire for the same container. Rules without names never fire.
func synergyBonus(rules []SynergyRule, names []string) float64 {
	if len(rules) == 0 || len(names) == 0 {
		return 0
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	var bonus float64
	for _, rule := range rules {
		if len(rule.Names) == 0 {
			continue
		}
		satisfied := true
		for _, required := range rule.Names {
			if _, ok := present[required]; !ok {
				satisfied = false
				break
			}
		}
		if satisfied {
			bonus += rule.Bonus
		}
	}
	return bonus
}

// totalBonus is the sum of every rule's bonus, the ceiling on synergy value
// a single container could ever earn.
func totalBonus(rules []SynergyRule) float64 {
	var sum float64
	for _, rule := range rules {
		sum += rule.Bonus
	}
	return sum
}

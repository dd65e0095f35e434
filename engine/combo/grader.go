package combo

// Grader holds the weights of the combined combo score. Weights are
// loaded from strategy files; the zero value scores every combo as 0.
type Grader struct {
	Name string

	ReusePenalty     float64
	LimbBonus        float64
	FirstUseBonus    float64
	RepeatBonus      float64
	SynergyBonus     float64
	VenomBonus       float64
	FinalStanceBonus float64

	// FinalStance earns FinalStanceBonus when HasFinal is set.
	FinalStance Stance
	HasFinal    bool

	// Used counts how often each attack has been used this fight.
	Used map[string]int
}

// Score is the weighted sum over c divided by its balance time in seconds.
func (g *Grader) Score(c Combo) float64 {
	if g == nil || c.Balance <= 0 || c.Len() == 0 {
		return 0
	}
	var sum float64
	seen := make(map[string]int, c.Len())
	for i, a := range c.Attacks {
		seen[a.Name]++
		if seen[a.Name] > 1 {
			sum -= g.ReusePenalty
		}
		if a.Limb != "" {
			sum += g.LimbBonus
		}
		if g.Used[a.Name] == 0 {
			sum += g.FirstUseBonus
		} else {
			sum += g.RepeatBonus
		}
		if a.Favored.Has(c.Forms[i]) {
			sum += g.SynergyBonus
		}
		if a.Venom {
			sum += g.VenomBonus
		}
	}
	if g.HasFinal && c.End == g.FinalStance {
		sum += g.FinalStanceBonus
	}
	return sum / seconds(c.Balance)
}

// Record notes that the attacks in c were used.
func (g *Grader) Record(c Combo) {
	if g.Used == nil {
		g.Used = map[string]int{}
	}
	for _, a := range c.Attacks {
		g.Used[a.Name]++
	}
}

package strategy

import "math"

// DefaultOfferLevels returns the offer grid 0, 10, ..., 100.
func DefaultOfferLevels() []float64 {
	levels := make([]float64, 0, 11)
	for x := 0; x <= 100; x += 10 {
		levels = append(levels, float64(x))
	}
	return levels
}

// levelStats counts how often an offer level was tried and accepted.
type levelStats struct {
	trials  int
	accepts int
}

// acceptRate returns accepts/trials, or prior for an untried level.
func (s levelStats) acceptRate(prior float64) float64 {
	if s.trials == 0 {
		return prior
	}
	return float64(s.accepts) / float64(s.trials)
}

func (s *levelStats) record(accepted bool) {
	s.trials++
	if accepted {
		s.accepts++
	}
}

// offerGrid is a discretised set of offers with per-level counters. It
// remembers which level it proposed last so feedback lands on that level
// even if the engine clamped the offer.
type offerGrid struct {
	levels []float64
	stats  []levelStats
	chosen int
}

func newOfferGrid(levels []float64) offerGrid {
	if len(levels) == 0 {
		levels = DefaultOfferLevels()
	}
	owned := make([]float64, len(levels))
	copy(owned, levels)
	return offerGrid{levels: owned, stats: make([]levelStats, len(owned)), chosen: -1}
}

// best returns the index maximising score; the lowest index wins ties.
func (g *offerGrid) best(score func(i int) float64) int {
	best, bestScore := 0, math.Inf(-1)
	for i := range g.levels {
		if s := score(i); s > bestScore {
			best, bestScore = i, s
		}
	}
	g.chosen = best
	return best
}

// record attributes an outcome to the level last proposed, falling back to
// the level nearest offer when nothing was proposed yet.
func (g *offerGrid) record(accepted bool, offer float64) {
	idx := g.chosen
	if idx < 0 {
		idx = g.nearest(offer)
	}
	g.stats[idx].record(accepted)
	g.chosen = -1
}

func (g *offerGrid) nearest(offer float64) int {
	idx, dist := 0, math.Inf(1)
	for i, level := range g.levels {
		if d := math.Abs(level - offer); d < dist {
			idx, dist = i, d
		}
	}
	return idx
}

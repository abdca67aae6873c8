package statistics

import (
	"sort"

	"github.com/lox/bargainsim/internal/tournament"
)

// MatchupSummary aggregates the trials of one matchup.
type MatchupSummary struct {
	Matchup    tournament.Matchup `json:"matchup" yaml:"matchup"`
	P1Utility  Summary            `json:"p1_utility" yaml:"p1_utility"`
	P2Utility  Summary            `json:"p2_utility" yaml:"p2_utility"`
	Rejections Summary            `json:"rejections" yaml:"rejections"`
}

// ByMatchup groups records by matchup, in the order matchups first appear.
func ByMatchup(records []tournament.TrialRecord) []MatchupSummary {
	type samples struct {
		p1, p2, rejections []float64
	}

	var order []tournament.Matchup
	groups := make(map[tournament.Matchup]*samples)
	for _, r := range records {
		m := r.Matchup()
		g, ok := groups[m]
		if !ok {
			g = &samples{}
			groups[m] = g
			order = append(order, m)
		}
		g.p1 = append(g.p1, r.P1Utility)
		g.p2 = append(g.p2, r.P2Utility)
		g.rejections = append(g.rejections, float64(r.Rejections))
	}

	out := make([]MatchupSummary, 0, len(order))
	for _, m := range order {
		g := groups[m]
		out = append(out, MatchupSummary{
			Matchup:    m,
			P1Utility:  Summarize(g.p1),
			P2Utility:  Summarize(g.p2),
			Rejections: Summarize(g.rejections),
		})
	}
	return out
}

// Standing is one strategy pair's line on the leaderboard.
type Standing struct {
	Rank int             `json:"rank" yaml:"rank"`
	Pair tournament.Pair `json:"pair" yaml:"pair"`
	// Games counts seats played: a pair meeting itself plays twice per trial.
	Games  int `json:"games" yaml:"games"`
	Wins   int `json:"wins" yaml:"wins"`
	Draws  int `json:"draws" yaml:"draws"`
	Losses int `json:"losses" yaml:"losses"`
	// Utility summarises the pair's final utility per game, from either seat.
	Utility Summary `json:"utility" yaml:"utility"`
}

// Leaderboard ranks strategy pairs by mean final utility across both seats.
// Ties are broken by name so the order is stable.
func Leaderboard(records []tournament.TrialRecord) []Standing {
	type tally struct {
		standing Standing
		values   []float64
	}

	byPair := make(map[tournament.Pair]*tally)
	seat := func(p tournament.Pair, own, other float64) {
		t, ok := byPair[p]
		if !ok {
			t = &tally{standing: Standing{Pair: p}}
			byPair[p] = t
		}
		t.standing.Games++
		switch {
		case own > other:
			t.standing.Wins++
		case own < other:
			t.standing.Losses++
		default:
			t.standing.Draws++
		}
		t.values = append(t.values, own)
	}
	for _, r := range records {
		m := r.Matchup()
		seat(m.Player1, r.P1Utility, r.P2Utility)
		seat(m.Player2, r.P2Utility, r.P1Utility)
	}

	out := make([]Standing, 0, len(byPair))
	for _, t := range byPair {
		t.standing.Utility = Summarize(t.values)
		out = append(out, t.standing)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Utility.Mean != out[j].Utility.Mean {
			return out[i].Utility.Mean > out[j].Utility.Mean
		}
		return out[i].Pair.String() < out[j].Pair.String()
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

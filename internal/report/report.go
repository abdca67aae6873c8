package report

import (
	"io"
	"strconv"
	"time"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/statistics"
	"github.com/lox/bargainsim/internal/tournament"
)

// History writes the rounds of a single game.
func History(w io.Writer, f Format, history []game.Round) error {
	s := sheet{headers: []string{
		"Round", "Proposer", "Responder", "Offer", "Outcome",
		"Proposer Δ", "Responder Δ", "P1 Utility", "P2 Utility", "Next p",
	}}
	for _, r := range history {
		outcome := "rejected"
		if r.Accepted {
			outcome = "accepted"
		}
		s.rows = append(s.rows, []string{
			strconv.Itoa(r.Round), r.Proposer, r.Responder, num(r.Offer), outcome,
			num(r.ProposerDelta), num(r.ResponderDelta),
			num(r.Player1Utility), num(r.Player2Utility), num(r.NextSwitchProb),
		})
	}
	if history == nil {
		history = []game.Round{}
	}
	return write(w, f, history, s)
}

// Trials writes one line per tournament game.
func Trials(w io.Writer, f Format, records []tournament.TrialRecord) error {
	s := sheet{headers: []string{
		"P1 Proposer", "P1 Responder", "P2 Proposer", "P2 Responder",
		"Trial", "Seed", "P1 Utility", "P2 Utility", "Rejections",
	}}
	for _, r := range records {
		s.rows = append(s.rows, []string{
			r.P1Proposer, r.P1Responder, r.P2Proposer, r.P2Responder,
			strconv.Itoa(r.Trial), strconv.FormatInt(r.Seed, 10),
			num(r.P1Utility), num(r.P2Utility), strconv.Itoa(r.Rejections),
		})
	}
	if records == nil {
		records = []tournament.TrialRecord{}
	}
	return write(w, f, records, s)
}

// Matchups writes per-matchup utility summaries.
func Matchups(w io.Writer, f Format, summaries []statistics.MatchupSummary) error {
	s := sheet{headers: []string{
		"Player 1", "Player 2", "Trials",
		"P1 Mean", "P1 95% CI", "P2 Mean", "P2 95% CI", "Rejections",
	}}
	for _, m := range summaries {
		s.rows = append(s.rows, []string{
			m.Matchup.Player1.String(), m.Matchup.Player2.String(), strconv.Itoa(m.P1Utility.N),
			num(m.P1Utility.Mean), interval(m.P1Utility),
			num(m.P2Utility.Mean), interval(m.P2Utility),
			num(m.Rejections.Mean),
		})
	}
	if summaries == nil {
		summaries = []statistics.MatchupSummary{}
	}
	return write(w, f, summaries, s)
}

// Leaderboard writes strategy pair standings.
func Leaderboard(w io.Writer, f Format, standings []statistics.Standing) error {
	s := sheet{headers: []string{
		"Rank", "Proposer", "Responder", "Games", "W", "D", "L",
		"Mean", "95% CI", "Median", "StdDev",
	}}
	for _, st := range standings {
		s.rows = append(s.rows, []string{
			strconv.Itoa(st.Rank), st.Pair.Proposer, st.Pair.Responder,
			strconv.Itoa(st.Games), strconv.Itoa(st.Wins), strconv.Itoa(st.Draws), strconv.Itoa(st.Losses),
			num(st.Utility.Mean), interval(st.Utility), num(st.Utility.Median), num(st.Utility.StdDev),
		})
	}
	if standings == nil {
		standings = []statistics.Standing{}
	}
	return write(w, f, standings, s)
}

// Summary is the structured form of a finished tournament.
type Summary struct {
	RunID       string                      `json:"run_id" yaml:"run_id"`
	Started     time.Time                   `json:"started" yaml:"started"`
	Duration    string                      `json:"duration" yaml:"duration"`
	Rounds      int                         `json:"rounds" yaml:"rounds"`
	Trials      int                         `json:"trials" yaml:"trials"`
	Seed        int64                       `json:"seed" yaml:"seed"`
	Game        game.Config                 `json:"game" yaml:"game"`
	Leaderboard []statistics.Standing       `json:"leaderboard" yaml:"leaderboard"`
	Matchups    []statistics.MatchupSummary `json:"matchups" yaml:"matchups"`
}

// Summarize aggregates a tournament result.
func Summarize(res *tournament.Result) Summary {
	return Summary{
		RunID:       res.RunID,
		Started:     res.Started,
		Duration:    res.Duration.String(),
		Rounds:      res.Rounds,
		Trials:      res.Trials,
		Seed:        res.Seed,
		Game:        res.Game,
		Leaderboard: statistics.Leaderboard(res.Records),
		Matchups:    statistics.ByMatchup(res.Records),
	}
}

// Tournament writes a tournament summary. Tables show the leaderboard
// followed by the matchups; CSV, having a single sheet, carries the
// leaderboard only.
func Tournament(w io.Writer, f Format, sum Summary) error {
	switch f {
	case FormatJSON, FormatYAML:
		return write(w, f, sum, sheet{})
	case FormatCSV:
		return Leaderboard(w, f, sum.Leaderboard)
	}
	if err := Leaderboard(w, f, sum.Leaderboard); err != nil {
		return err
	}
	return Matchups(w, f, sum.Matchups)
}

func interval(s statistics.Summary) string {
	return "[" + num(s.CI95Low) + ", " + num(s.CI95High) + "]"
}

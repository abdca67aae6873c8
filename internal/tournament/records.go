package tournament

import (
	"time"

	"github.com/lox/bargainsim/internal/game"
)

// Pair is the proposer and responder strategy one player uses.
type Pair struct {
	Proposer  string `json:"proposer" yaml:"proposer"`
	Responder string `json:"responder" yaml:"responder"`
}

func (p Pair) String() string {
	return p.Proposer + "/" + p.Responder
}

// Pairs returns every proposer/responder combination, proposers varying
// slowest.
func Pairs(proposers []NamedProposer, responders []NamedResponder) []Pair {
	out := make([]Pair, 0, len(proposers)*len(responders))
	for _, p := range proposers {
		for _, r := range responders {
			out = append(out, Pair{Proposer: p.Name, Responder: r.Name})
		}
	}
	return out
}

// Matchup seats one strategy pair as Player 1 and another as Player 2. A
// pair may meet itself.
type Matchup struct {
	Player1 Pair `json:"player1" yaml:"player1"`
	Player2 Pair `json:"player2" yaml:"player2"`
}

func (m Matchup) String() string {
	return m.Player1.String() + " vs " + m.Player2.String()
}

// TrialRecord is the outcome of one tournament game.
type TrialRecord struct {
	P1Proposer  string  `json:"p1_proposer" yaml:"p1_proposer"`
	P1Responder string  `json:"p1_responder" yaml:"p1_responder"`
	P2Proposer  string  `json:"p2_proposer" yaml:"p2_proposer"`
	P2Responder string  `json:"p2_responder" yaml:"p2_responder"`
	Trial       int     `json:"trial" yaml:"trial"`
	Seed        int64   `json:"seed" yaml:"seed"`
	P1Utility   float64 `json:"p1_utility" yaml:"p1_utility"`
	P2Utility   float64 `json:"p2_utility" yaml:"p2_utility"`
	Rejections  int     `json:"rejections" yaml:"rejections"`
}

// Matchup returns the strategy pairs that played the trial.
func (r TrialRecord) Matchup() Matchup {
	return Matchup{
		Player1: Pair{Proposer: r.P1Proposer, Responder: r.P1Responder},
		Player2: Pair{Proposer: r.P2Proposer, Responder: r.P2Responder},
	}
}

// Result is a finished tournament run.
type Result struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Rounds   int           `json:"rounds" yaml:"rounds"`
	Trials   int           `json:"trials" yaml:"trials"`
	Seed     int64         `json:"seed" yaml:"seed"`
	Game     game.Config   `json:"game" yaml:"game"`
	Records  []TrialRecord `json:"records" yaml:"records"`
}

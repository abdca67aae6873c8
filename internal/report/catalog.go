package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/lox/bargainsim/internal/store"
	"github.com/lox/bargainsim/internal/strategy"
)

// Kinds writes the catalogue of built-in strategies.
func Kinds(w io.Writer, f Format, kinds []strategy.KindInfo) error {
	s := sheet{headers: []string{"Role", "Kind", "Description", "Parameters"}}
	for _, k := range kinds {
		s.rows = append(s.rows, []string{
			string(k.Role), string(k.Kind), k.Description, strings.Join(k.Params, " "),
		})
	}
	if kinds == nil {
		kinds = []strategy.KindInfo{}
	}
	return write(w, f, kinds, s)
}

type storedRun struct {
	ID       string  `json:"id" yaml:"id"`
	Started  string  `json:"started" yaml:"started"`
	Duration string  `json:"duration" yaml:"duration"`
	Rounds   int     `json:"rounds" yaml:"rounds"`
	Trials   int     `json:"trials" yaml:"trials"`
	Games    int     `json:"games" yaml:"games"`
	Seed     int64   `json:"seed" yaml:"seed"`
	P        float64 `json:"p" yaml:"p"`
}

// Runs writes a listing of stored tournament runs.
func Runs(w io.Writer, f Format, runs []store.Run) error {
	s := sheet{headers: []string{"Run", "Started", "Duration", "Rounds", "Trials", "Games", "Seed", "p"}}
	out := make([]storedRun, 0, len(runs))
	for _, r := range runs {
		sr := storedRun{
			ID:       r.ID,
			Started:  r.Started.Format("2006-01-02 15:04:05"),
			Duration: r.Duration.String(),
			Rounds:   r.Rounds,
			Trials:   r.Trials,
			Games:    r.Games,
			Seed:     r.Seed,
			P:        r.Game.PBase,
		}
		out = append(out, sr)
		s.rows = append(s.rows, []string{
			sr.ID, sr.Started, sr.Duration,
			strconv.Itoa(sr.Rounds), strconv.Itoa(sr.Trials), strconv.Itoa(sr.Games),
			strconv.FormatInt(sr.Seed, 10), num(sr.P),
		})
	}
	return write(w, f, out, s)
}

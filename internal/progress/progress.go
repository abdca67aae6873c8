// Package progress reports how far a tournament has got, either as a live
// terminal progress bar or as periodic log lines.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Reporter receives progress updates. Update may be called from any
// goroutine; Finish is called once after the last update.
type Reporter interface {
	Update(done, total int)
	Finish()
}

const maxBarWidth = 60

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type updateMsg struct{ done, total int }

type finishMsg struct{}

type model struct {
	title   string
	done    int
	total   int
	bar     progress.Model
	clock   quartz.Clock
	started time.Time
	quit    bool
}

func newModel(title string, total int, clock quartz.Clock) model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	return model{title: title, total: total, bar: bar, clock: clock, started: clock.Now()}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.done, m.total = msg.done, msg.total
	case finishMsg:
		m.quit = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-len(m.title)-24, maxBarWidth)
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
	}
	return m, nil
}

func (m model) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	elapsed := m.clock.Since(m.started).Round(100 * time.Millisecond)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d games · %s", m.done, m.total, elapsed)))
	if m.quit {
		b.WriteString("\n")
	}
	return b.String()
}

// Bar renders a progress bar with bubbletea. It never reads input or
// installs signal handlers, leaving those to the caller.
type Bar struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
	err     error
}

// NewBar starts a progress bar for total games on w.
func NewBar(w io.Writer, title string, total int, clock quartz.Clock) *Bar {
	program := tea.NewProgram(newModel(title, total, clock),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	b := &Bar{program: program, done: make(chan struct{})}
	go func() {
		defer close(b.done)
		_, b.err = program.Run()
	}()
	return b
}

func (b *Bar) Update(done, total int) {
	b.program.Send(updateMsg{done: done, total: total})
}

// Finish draws the final state and waits for the program to exit.
func (b *Bar) Finish() {
	b.once.Do(func() {
		b.program.Send(finishMsg{})
		<-b.done
	})
}

// Err returns the error the program exited with. It is only meaningful after
// Finish.
func (b *Bar) Err() error {
	<-b.done
	return b.err
}

// Log reports progress as info log lines, one per tenth of the work.
type Log struct {
	logger  *log.Logger
	clock   quartz.Clock
	started time.Time

	mu   sync.Mutex
	step int
	done int
}

// NewLog creates a log reporter.
func NewLog(logger *log.Logger, clock quartz.Clock) *Log {
	return &Log{logger: logger, clock: clock, started: clock.Now()}
}

func (l *Log) Update(done, total int) {
	if total <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.done = done
	step := done * 10 / total
	if step <= l.step {
		return
	}
	l.step = step
	l.logger.Info("Tournament progress",
		"games", done,
		"total", total,
		"percent", step*10,
		"elapsed", l.clock.Since(l.started).Round(time.Millisecond))
}

func (l *Log) Finish() {}

// Discard ignores progress.
type Discard struct{}

func (Discard) Update(int, int) {}

func (Discard) Finish() {}

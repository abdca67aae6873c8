package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTracksUpdates(t *testing.T) {
	clock := quartz.NewMock(t)
	var m tea.Model = newModel("Tournament", 10, clock)

	m, cmd := m.Update(updateMsg{done: 3, total: 10})
	assert.Nil(t, cmd)
	clock.Advance(1500 * time.Millisecond)
	assert.Contains(t, m.View(), "3/10 games")
	assert.Contains(t, m.View(), "1.5s")

	m, cmd = m.Update(tea.WindowSizeMsg{Width: 30})
	assert.Nil(t, cmd)
	assert.Equal(t, 10, m.(model).bar.Width, "bar never shrinks below 10 cells")

	m, cmd = m.Update(finishMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, strings.HasSuffix(m.View(), "\n"))
}

func TestModelZeroTotal(t *testing.T) {
	m := newModel("Empty", 0, quartz.NewMock(t))
	assert.Contains(t, m.View(), "0/0 games")
}

func TestBarFinishReturns(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out, "Tournament", 4, quartz.NewMock(t))
	for i := 1; i <= 4; i++ {
		bar.Update(i, 4)
	}
	bar.Finish()
	bar.Finish()
	assert.NoError(t, bar.Err())
	assert.Contains(t, out.String(), "4/4 games")
}

func TestBarReportsProgramError(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out, "Tournament", 4, quartz.NewMock(t))
	bar.program.Kill()
	bar.Finish()
	assert.ErrorIs(t, bar.Err(), tea.ErrProgramKilled)
}

func TestLogReportsEveryTenth(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	l := NewLog(logger, quartz.NewMock(t))

	for i := 1; i <= 100; i++ {
		l.Update(i, 100)
	}
	l.Finish()

	out := buf.String()
	assert.Equal(t, 10, strings.Count(out, "Tournament progress"))
	assert.Contains(t, out, "percent=100")
}

func TestLogSmallTotals(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(log.NewWithOptions(&buf, log.Options{}), quartz.NewMock(t))

	l.Update(1, 3)
	l.Update(2, 3)
	l.Update(3, 3)
	l.Update(0, 0)

	assert.Equal(t, 3, strings.Count(buf.String(), "Tournament progress"))
}

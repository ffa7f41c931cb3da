package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/handrank/poker"
	"github.com/lox/handrank/ranktable"
)

// progressReporter shows table build progress while run executes. cancel
// stops run when the display exits early.
type progressReporter interface {
	Report(p ranktable.Progress)
	Wrap(cancel context.CancelFunc, run func() error) error
	Logger() *log.Logger
}

// newProgressReporter picks a bar or log lines. In auto mode the bar is used
// only when stderr is a color terminal.
func newProgressReporter(mode string, logger *log.Logger, level log.Level) progressReporter {
	switch mode {
	case "bar":
		return newBarReporter(level)
	case "log":
		return &logReporter{logger: logger}
	}
	if termenv.NewOutput(os.Stderr).ColorProfile() == termenv.Ascii {
		return &logReporter{logger: logger}
	}
	return newBarReporter(level)
}

// logReporter logs one line per finished category.
type logReporter struct {
	logger *log.Logger
}

func (r *logReporter) Report(p ranktable.Progress) {
	if p.Done {
		r.logger.Info("Category complete", "type", p.Type, "hands", p.Hands)
	}
}

func (r *logReporter) Wrap(_ context.CancelFunc, run func() error) error {
	return run()
}

func (r *logReporter) Logger() *log.Logger {
	return r.logger
}

// display is the part of tea.Program the bar reporter drives.
type display interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
	Println(args ...any)
}

// barReporter renders a bubbletea progress bar on stderr. Log lines are
// printed above the bar through the program.
type barReporter struct {
	program display
	logger  *log.Logger
}

func newBarReporter(level log.Level) *barReporter {
	p := tea.NewProgram(newProgressModel(), tea.WithOutput(os.Stderr), tea.WithInput(nil))
	return &barReporter{
		program: p,
		logger:  newLogger(programWriter{p}, level),
	}
}

func (r *barReporter) Report(p ranktable.Progress) {
	r.program.Send(progressMsg(p))
}

func (r *barReporter) Wrap(cancel context.CancelFunc, run func() error) error {
	errc := make(chan error, 1)
	go func() {
		errc <- run()
		r.program.Send(doneMsg{})
	}()
	final, err := r.program.Run()
	if err != nil {
		cancel()
		return errors.Join(fmt.Errorf("progress display: %w", err), <-errc)
	}
	if m, ok := final.(*progressModel); !ok || !m.done {
		cancel()
	}
	return <-errc
}

func (r *barReporter) Logger() *log.Logger {
	return r.logger
}

// programWriter forwards log output to tea.Program.Println.
type programWriter struct {
	p display
}

func (w programWriter) Write(b []byte) (int, error) {
	w.p.Println(strings.TrimRight(string(b), "\n"))
	return len(b), nil
}

type (
	progressMsg ranktable.Progress
	doneMsg     struct{}
)

type progressModel struct {
	bar      progress.Model
	hands    map[poker.HandType]int
	finished int
	current  poker.HandType
	done     bool
}

func newProgressModel() *progressModel {
	return &progressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		hands: make(map[poker.HandType]int),
	}
}

func (m *progressModel) Init() tea.Cmd {
	return nil
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.hands[msg.Type] = msg.Hands
		m.current = msg.Type
		if msg.Done {
			m.finished++
		}
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) percent() float64 {
	total := 0
	for _, n := range m.hands {
		total += n
	}
	return float64(total) / float64(ranktable.TotalHands)
}

func (m *progressModel) View() string {
	if m.done {
		return ""
	}
	status := infoStyle.Render(fmt.Sprintf("%d/%d categories", m.finished, poker.NumHandTypes))
	if m.current.Valid() {
		status += " " + handTypeStyle.Render(m.current.String())
	}
	return m.bar.ViewAs(m.percent()) + "  " + status + "\n"
}

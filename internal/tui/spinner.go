package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kanweiwei/cai/internal/utils"
	"github.com/rs/zerolog/log"
)

// Spinner shows progress while a blocking call runs. It is single use.
type Spinner struct {
	program   *tea.Program
	model     spinnerModel
	doneChan  chan struct{}
	startTime time.Time
	isTTY     bool
	out       io.Writer
}

type spinnerModel struct {
	spinner  spinner.Model
	state    string
	duration time.Duration
	text     string
}

func NewSpinner() *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Spinner{
		model: spinnerModel{
			spinner: s,
			state:   "idle",
		},
		doneChan: make(chan struct{}),
		isTTY:    utils.IsTTY(),
		out:      os.Stderr,
	}
}

func (s *Spinner) Start(message string) {
	s.model.state = "running"
	s.model.text = message
	s.startTime = time.Now()

	if !s.isTTY {
		fmt.Fprintf(s.out, "⏺ %s\n", message)
		return
	}

	// no input handling: ctrl+c must reach the process
	s.program = tea.NewProgram(s.model, tea.WithOutput(s.out), tea.WithInput(nil), tea.WithoutSignalHandler())
	go func() {
		if _, err := s.program.Run(); err != nil {
			log.Error().Err(err).Msg("Error running spinner")
		}
		close(s.doneChan)
	}()
}

func (s *Spinner) Stop() {
	if !s.isTTY || s.program == nil {
		return
	}
	s.program.Send(doneMsg{duration: time.Since(s.startTime)})
	<-s.doneChan
	s.program = nil
}

type doneMsg struct {
	duration time.Duration
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.state = "done"
		m.duration = msg.duration
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.state == "done" {
		return fmt.Sprintf("   Done! Took %.2f seconds\n", m.duration.Seconds())
	}
	return fmt.Sprintf("   %s %s\n", m.spinner.View(), m.text)
}

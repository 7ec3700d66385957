package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kanweiwei/cai/internal/utils"
	"github.com/rs/zerolog/log"
)

const (
	listHeight   = 10
	defaultWidth = 60
)

var (
	ErrAborted        = errors.New("selection aborted")
	ErrNotInteractive = errors.New("not an interactive terminal: rerun with --yes to take the first suggestion")
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

type item string

func (i item) FilterValue() string { return string(i) }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

type model struct {
	list     list.Model
	choice   string
	quitting bool
}

func newModel(candidates []string) model {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = item(c)
	}

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Pick a commit message"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(item)
			if ok {
				m.choice = string(i)
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	// the abort notice is logged by the caller
	if m.quitting {
		return ""
	}
	if m.choice != "" {
		return quitTextStyle.Render(m.choice)
	}
	return "\n" + m.list.View()
}

// Selector lets the user pick one commit message.
type Selector struct {
	// AutoSelect takes the first candidate without prompting.
	AutoSelect bool
	Out        io.Writer
}

func NewSelector(autoSelect bool) *Selector {
	return &Selector{AutoSelect: autoSelect, Out: os.Stdout}
}

func (s *Selector) Select(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.New("no candidates to choose from")
	}

	if s.AutoSelect {
		fmt.Fprintln(s.Out, candidates[0])
		return candidates[0], nil
	}

	if !utils.IsTTY() {
		fmt.Fprintln(s.Out, "Suggested commit messages:")
		for i, c := range candidates {
			fmt.Fprintf(s.Out, "%d. %s\n", i+1, c)
		}
		return "", ErrNotInteractive
	}

	p := tea.NewProgram(newModel(candidates))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selection prompt: %w", err)
	}

	m, ok := finalModel.(model)
	if !ok || m.quitting || m.choice == "" {
		return "", ErrAborted
	}
	log.Debug().Str("choice", m.choice).Msg("Commit message selected")
	return m.choice, nil
}

// CopyToClipboard writes content to the system clipboard.
func CopyToClipboard(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

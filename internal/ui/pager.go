package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Pager is a full-screen scrollable view over pre-rendered output.
type Pager struct {
	viewport viewport.Model
	content  string
	title    string
	ready    bool
	width    int
	height   int
}

// NewPager creates a pager; it sizes itself on the first WindowSizeMsg.
func NewPager(title, content string) Pager {
	return Pager{
		title:   title,
		content: strings.TrimRight(content, "\n"),
	}
}

func (m Pager) Init() tea.Cmd { return nil }

func (m Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 1 // status bar
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Home):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, Keys.End):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Pager) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

func (m Pager) statusBar() string {
	title := StatusBarTitle.Render(m.title)
	pct := StatusBarStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))

	var help []string
	for _, b := range Keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return title + pct + " " + DimStyle.Render(strings.Join(help, " · "))
}

// RunPager blocks until the user quits the pager.
func RunPager(title, content string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewPager(title, content),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}

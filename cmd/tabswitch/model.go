package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/daemon"
	"github.com/b/tabswitch/pkg/tabs"
)

const maxTitleWidth = 24

type switchedMsg struct{ tab *tabs.Tab }

type configMsg struct {
	cfg *config.Config
	err error
}

// reloadMsg re-runs discovery, sent on SIGUSR1 like the "r" key.
type reloadMsg struct{}

type model struct {
	app      *app
	theme    colors.Theme
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	status   string
	width    int
	height   int
}

func newModel(a *app) model {
	m := model{
		app:      a,
		theme:    colors.GetTheme(a.cfg.Theme),
		keys:     newKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		width:    80, // updated by WindowSizeMsg
	}
	m.syncViewport()
	return m
}

func waitForSwitch(ch <-chan *tabs.Tab) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return switchedMsg{tab: t}
	}
}

func (m model) Init() tea.Cmd {
	return waitForSwitch(m.app.switches)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.report("key", m.app.sw.Next())
		case key.Matches(msg, m.keys.Prev):
			m.report("key", m.app.sw.Prev())
		case key.Matches(msg, m.keys.Jump):
			m.activate(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Reload):
			m.reload()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.syncViewport()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if i := m.tabAtX(msg.X); i >= 0 {
				m.activate(i)
				m.syncViewport()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		m.syncViewport()

	case switchedMsg:
		m.status = "switched to " + msg.tab.Title
		m.syncViewport()
		return m, waitForSwitch(m.app.switches)

	case configMsg:
		if msg.err != nil {
			m.report("config", fmt.Errorf("config reload failed: %w", msg.err))
			return m, nil
		}
		m.theme = colors.GetTheme(msg.cfg.Theme)
		m.report("config", m.app.applyConfig(msg.cfg))
		m.syncViewport()

	case reloadMsg:
		m.reload()
		m.syncViewport()

	case controlMsg:
		reply := daemon.Dispatch(m.app.sw, msg.req)
		if reply.Type == daemon.MsgError {
			m.app.metrics.RecordError("control")
		}
		m.app.metrics.Sync(m.app.sw)
		msg.reply <- reply
		m.syncViewport()
	}
	return m, nil
}

// activate clicks the trigger of the i-th tab so the switch goes through the
// same path as any other activation source.
func (m *model) activate(i int) {
	list := m.app.sw.Tabs()
	if i < 0 || i >= len(list) {
		return
	}
	if b, ok := list[i].Trigger.(*tabs.Button); ok {
		b.Click()
		return
	}
	m.report("key", m.app.sw.SwitchToIndex(i))
}

func (m *model) reload() {
	err := m.app.sw.Setup()
	m.app.metrics.Sync(m.app.sw)
	if err != nil {
		m.report("setup", err)
		return
	}
	m.status = fmt.Sprintf("%d tabs", m.app.sw.Len())
}

func (m *model) report(source string, err error) {
	if err == nil {
		return
	}
	m.app.metrics.RecordError(source)
	m.app.log.Warn("tab switch failed", zap.String("source", source), zap.Error(err))
	m.status = err.Error()
}

func (m model) labels() []string {
	list := m.app.sw.Tabs()
	out := make([]string, 0, len(list))
	for i, tab := range list {
		title := runewidth.Truncate(tab.Title, maxTitleWidth, "…")
		out = append(out, tab.ColorState().Style().Render(fmt.Sprintf("%d %s", i+1, title)))
	}
	return out
}

// tabAtX maps a click on the tab bar to a tab index, -1 for the gaps.
func (m model) tabAtX(x int) int {
	pos := 0
	for i, label := range m.labels() {
		w := lipgloss.Width(label)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

// pageContent renders every visible page; with surfaces ignored all pages
// stay visible.
func (m model) pageContent() string {
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ContentFg))
	var parts []string
	for _, tab := range m.app.sw.Tabs() {
		if p, ok := m.app.pages[tab.ID]; ok && p.visible {
			parts = append(parts, body.Render(p.content))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}
	if active := m.app.sw.Active(); active != nil {
		return body.Render(active.Title)
	}
	return body.Render("No tabs")
}

func (m *model) syncViewport() {
	m.viewport.SetContent(m.pageContent())
	m.viewport.GotoTop()
}

func (m model) View() string {
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.BarBg)).
		Width(m.width).
		Render(strings.Join(m.labels(), " "))

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFg))
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = dim.Render(m.status) + "  " + footer
	}
	return bar + "\n" + m.viewport.View() + "\n" + footer
}

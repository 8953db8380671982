// Package app hosts the board's root Bubble Tea model.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/router"
	"github.com/abhisek/transform90/internal/screen"
	"github.com/abhisek/transform90/internal/screens/today"
	"github.com/abhisek/transform90/internal/tracker"
	"github.com/abhisek/transform90/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *tracker.Service
	width  int
	height int
}

// newAppModel creates the model with the today board at the bottom of
// the stack.
func newAppModel(svc *tracker.Service) AppModel {
	return AppModel{
		router: router.New(today.New(svc)),
		svc:    svc,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	st := m.svc.State()
	name := ""
	if def, err := program.Level(st.Level); err == nil {
		name = def.Name
	}
	return layout.HeaderInfo{Day: st.CurrentDay, Level: name, Streak: st.Streak}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.headerInfo(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = append([]layout.KeyHint{{Key: "Esc", Description: "Back"}}, footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the board and blocks until the user quits.
func Run(svc *tracker.Service) error {
	_, err := tea.NewProgram(newAppModel(svc)).Run()
	return err
}

package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/experiment"
)

const (
	stageScenarios = iota
	stageParams
	stageLive
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// menuParam is one adjustable launch value on the parameter screen.
type menuParam struct {
	name string
	step float64
	get  func(c *config.Config) float64
	set  func(c *config.Config, v float64)
}

var menuParams = []menuParam{
	{
		name: "orbiters", step: 10,
		get: func(c *config.Config) float64 { return float64(c.Orbit.OrbiterCount) },
		set: func(c *config.Config, v float64) { c.Orbit.OrbiterCount = max(0, int(v)) },
	},
	{
		name: "damping", step: 0.005,
		get: func(c *config.Config) float64 { return c.Orbit.VelocityDamping },
		set: func(c *config.Config, v float64) { c.Orbit.VelocityDamping = max(0, v) },
	},
	{
		name: "deviation", step: 5,
		get: func(c *config.Config) float64 { return c.Orbit.MaxAngleDeviationDeg },
		set: func(c *config.Config, v float64) { c.Orbit.MaxAngleDeviationDeg = min(180, max(0, v)) },
	},
	{
		name: "seed", step: 1,
		get: func(c *config.Config) float64 { return float64(c.Seed) },
		set: func(c *config.Config, v float64) { c.Seed = int64(v) },
	},
	{
		name: "dt", step: 0.005,
		get: func(c *config.Config) float64 { return c.Dt },
		set: func(c *config.Config, v float64) { c.Dt = max(0.001, v) },
	},
}

// Menu lets the user pick a scenario and tune its launch before handing
// over to a live Model.
type Menu struct {
	stage       int
	cursor      int
	paramCursor int
	scenarios   []experiment.Scenario
	cfg         *config.Config
	opts        Options
	live        Model
	err         error
}

func NewMenu(cfg *config.Config, opts Options) Menu {
	c := *cfg
	return Menu{
		scenarios: experiment.NewRegistry().ListScenarios(),
		cfg:       &c,
		opts:      opts,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stage == stageLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.stage {
	case stageScenarios:
		return m.scenarioKey(key)
	case stageParams:
		return m.paramKey(key)
	}
	return m, nil
}

func (m Menu) scenarioKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg.Scenario = m.scenarios[m.cursor].Name
		m.stage, m.paramCursor, m.err = stageParams, 0, nil
	}
	return m, nil
}

func (m Menu) paramKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	p := menuParams[m.paramCursor]
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.stage = stageScenarios
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(menuParams)-1 {
			m.paramCursor++
		}
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s", "enter":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (Menu, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	exp := experiment.New(experiment.FromConfig(m.cfg))
	if err := exp.Setup(nil); err != nil {
		m.err = err
		return m, nil
	}

	opts := m.opts
	opts.Title = m.cfg.Scenario
	opts.WorldWidth, opts.WorldHeight = m.cfg.World.Width, m.cfg.World.Height
	m.live = NewModel(exp.Engine(), m.cfg.Dt, opts)
	m.stage = stageLive
	return m, m.live.Init()
}

func (m Menu) View() string {
	switch m.stage {
	case stageScenarios:
		return m.viewScenarios()
	case stageParams:
		return m.viewParams()
	}
	return m.live.View()
}

func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, menuKeyStyle.Render(pairs[i])+menuIdle.Render(" "+pairs[i+1]))
	}
	return "    " + strings.Join(parts, "  ") + "\n"
}

func (m Menu) viewScenarios() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ACCRETION") + "\n    " + subtle.Render("anchored gravity with merging") + "\n    " + Separator(25) + "\n\n")
	for i, s := range m.scenarios {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", s.Name)), menuValue.Render(s.Description)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuIdle.Render(fmt.Sprintf("%-12s", s.Name)), menuIdle.Render(s.Description)))
		}
	}
	b.WriteString("\n" + hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (m Menu) viewParams() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.cfg.Scenario)) + "\n    " + Separator(25) + "\n\n")
	for i, p := range menuParams {
		val := fmt.Sprintf("%10.3f", p.get(m.cfg))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-10s", p.name)), menuValue.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", menuIdle.Render(fmt.Sprintf("%-10s", p.name)), menuIdle.Render(val)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + barLow.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back"))
	return b.String()
}

// RunMenu starts the scenario menu full-screen.
func RunMenu(cfg *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewMenu(cfg, opts), tea.WithAltScreen()).Run()
	return err
}

package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

const (
	historyCapacity = 600
	statsWidth      = 45
	minZoom         = 0.25
	maxZoom         = 8
)

type Options struct {
	Title         string
	FrameInterval time.Duration
	// canvas size in cells
	Width, Height int
	WorldWidth    float64
	WorldHeight   float64
	TrailLength   int
	Theme         string
}

func DefaultOptions() Options {
	return Options{
		Title:         "accretion",
		FrameInterval: 15 * time.Millisecond,
		Width:         80,
		Height:        24,
		WorldWidth:    1000,
		WorldHeight:   1000,
		TrailLength:   40,
		Theme:         Themes[0].Name,
	}
}

type TickMsg time.Time

// Model steps an engine once per frame and draws it. Trails are keyed by
// body id; a destroyed id loses its trail in the frame it is reported.
type Model struct {
	engine  *dynamo.Engine
	initial []physics.Body
	dt      float64
	opts    Options

	canvas      *Canvas
	live        []dynamo.BodyView
	trails      map[int][]vecmath.Vec
	liveHistory []float64
	merged      int
	lastMerge   *dynamo.Merge

	running    bool
	showTrails bool
	showHelp   bool
	zoom       float64
	theme      Theme
}

func NewModel(engine *dynamo.Engine, dt float64, opts Options) Model {
	def := DefaultOptions()
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = def.FrameInterval
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.WorldWidth <= 0 || opts.WorldHeight <= 0 {
		opts.WorldWidth, opts.WorldHeight = def.WorldWidth, def.WorldHeight
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}

	return Model{
		engine:      engine,
		initial:     engine.Bodies(),
		dt:          dt,
		opts:        opts,
		canvas:      NewCanvas(opts.Width, opts.Height),
		live:        engine.Views(),
		trails:      make(map[int][]vecmath.Vec),
		liveHistory: make([]float64, 0, historyCapacity),
		running:     true,
		showTrails:  opts.TrailLength > 0,
		zoom:        1,
		theme:       GetTheme(opts.Theme),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.zoom = math.Min(maxZoom, m.zoom*1.25)
		case "-", "_":
			m.zoom = math.Max(minZoom, m.zoom/1.25)
		case "t":
			m.showTrails = !m.showTrails
		case "c":
			names := ThemeNames()
			for i, name := range names {
				if name == m.theme.Name {
					m.theme = GetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-6, 20)
		h := max(msg.Height-4, 10)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the engine one tick and retires visuals of destroyed bodies.
func (m *Model) step() {
	res := m.engine.Step(m.dt)
	m.live = res.Live

	m.merged += len(res.Merges)
	if n := len(res.Merges); n > 0 {
		last := res.Merges[n-1]
		m.lastMerge = &last
	}
	for _, id := range res.Destroyed {
		delete(m.trails, id)
	}

	if m.opts.TrailLength > 0 {
		for _, v := range res.Live {
			tr := append(m.trails[v.ID], v.Position)
			if len(tr) > m.opts.TrailLength {
				tr = tr[len(tr)-m.opts.TrailLength:]
			}
			m.trails[v.ID] = tr
		}
	}

	m.liveHistory = append(m.liveHistory, float64(len(res.Live)))
	if len(m.liveHistory) > historyCapacity {
		m.liveHistory = m.liveHistory[1:]
	}
}

// reset rebuilds the engine from the bodies it started with.
func (m *Model) reset() {
	m.engine = dynamo.NewEngine(m.initial, m.engine.G(), m.engine.Integrator())
	m.live = m.engine.Views()
	m.trails = make(map[int][]vecmath.Vec)
	m.liveHistory = m.liveHistory[:0]
	m.merged = 0
	m.lastMerge = nil
}

// project maps world coordinates to canvas pixels, keeping the world centre
// in the middle of the canvas.
func (m *Model) project(p vecmath.Vec) (int, int) {
	pw, ph := float64(m.canvas.PixelWidth()), float64(m.canvas.PixelHeight())
	scale := m.scale()
	x := pw/2 + (p.X-m.opts.WorldWidth/2)*scale
	y := ph/2 + (p.Y-m.opts.WorldHeight/2)*scale
	return int(math.Round(x)), int(math.Round(y))
}

func (m *Model) scale() float64 {
	pw, ph := float64(m.canvas.PixelWidth()), float64(m.canvas.PixelHeight())
	return math.Min(pw/m.opts.WorldWidth, ph/m.opts.WorldHeight) * m.zoom
}

func (m *Model) draw() {
	m.canvas.Clear()

	if m.showTrails {
		for _, tr := range m.trails {
			for i := 1; i < len(tr); i++ {
				x0, y0 := m.project(tr[i-1])
				x1, y1 := m.project(tr[i])
				m.canvas.DrawLine(x0, y0, x1, y1, InkTrail)
			}
		}
	}

	for _, v := range m.live {
		x, y := m.project(v.Position)
		if v.Category == physics.Anchor {
			m.canvas.DrawDisc(x, y, int(v.Radius/2*m.scale()), InkAnchor)
			continue
		}
		m.canvas.Set(x, y, InkOrbiter)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.inkStyles()))

	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText(strings.ToUpper(m.opts.Title), m.theme.Accent, m.theme.Orbiter)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.liveHistory) > 1 {
		chart := asciigraph.Plot(m.liveHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Bodies"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.engine.Tick()))
	row("Time", fmt.Sprintf("%.2f", m.engine.Time()))
	row("Bodies", fmt.Sprintf("%d", len(m.live)))
	row("Merged", fmt.Sprintf("%d", m.merged))

	anchorMass := 0.0
	for _, v := range m.live {
		if v.Category == physics.Anchor {
			anchorMass = v.Mass
		}
	}
	row("Anchor", fmt.Sprintf("%.6g", anchorMass))
	row("Swept", ProgressBar(m.sweptFraction(anchorMass), 16))
	if m.lastMerge != nil {
		row("Last", fmt.Sprintf("#%d → #%d", m.lastMerge.Absorbed, m.lastMerge.Survivor))
	}
	row("Zoom", fmt.Sprintf("%.2fx", m.zoom))
	row("Theme", m.theme.Name)

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Reset Q:Quit\nT:Trails C:Theme ?:Help\n+/-:Zoom"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

// sweptFraction is the share of the initial orbiter mass the anchor has
// absorbed.
func (m Model) sweptFraction(anchorMass float64) float64 {
	idx := physics.FindAnchor(m.initial)
	if idx < 0 {
		return 0
	}
	orbiters := physics.TotalMass(m.initial) - m.initial[idx].Mass
	if orbiters <= 0 {
		return 0
	}
	return (anchorMass - m.initial[idx].Mass) / orbiters
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to the first tick  ║
║  + / -    - Zoom in / out            ║
║  T        - Toggle trails            ║
║  C        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts a full-screen program for engine and blocks until it quits.
func Run(engine *dynamo.Engine, dt float64, opts Options) error {
	_, err := tea.NewProgram(NewModel(engine, dt, opts), tea.WithAltScreen()).Run()
	return err
}

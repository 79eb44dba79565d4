package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/integrators"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

func collisionEngine() *dynamo.Engine {
	cfg := physics.DefaultOrbitConfig()
	a := physics.NewAnchor(vecmath.Vec{X: 500, Y: 500}, cfg)
	o1 := physics.NewOrbiter(1, a, cfg, cfg.AverageDistance(1000), 0, 200, 0)
	o1.Mass = 1
	o2 := o1
	o2.ID, o2.Mass = 2, 2
	o3 := physics.NewOrbiter(3, a, cfg, cfg.AverageDistance(1000), 3, 300, 0)
	return dynamo.NewEngine([]physics.Body{a, o1, o2, o3}, cfg.G, integrators.NewLeapfrog())
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRetiresDestroyedTrails(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())
	// body 1 gets a trail entry before it is absorbed on the next tick
	m.trails[1] = []vecmath.Vec{{X: 700, Y: 500}}

	m = update(t, m, TickMsg(time.Now()))

	if _, ok := m.trails[1]; ok {
		t.Error("trail of destroyed body 1 was not removed")
	}
	for _, id := range []int{0, 2, 3} {
		if len(m.trails[id]) != 1 {
			t.Errorf("body %d: expected one trail point, got %d", id, len(m.trails[id]))
		}
	}
	if m.merged != 1 || m.lastMerge == nil || m.lastMerge.Survivor != 2 {
		t.Errorf("merge not recorded: %d %+v", m.merged, m.lastMerge)
	}
	if len(m.live) != 3 || len(m.liveHistory) != 1 {
		t.Errorf("unexpected live state: %d bodies, %d history", len(m.live), len(m.liveHistory))
	}
}

func TestModelTrailLength(t *testing.T) {
	opts := DefaultOptions()
	opts.TrailLength = 5
	m := NewModel(collisionEngine(), dynamo.DefaultDt, opts)
	for i := 0; i < 20; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	for id, tr := range m.trails {
		if len(tr) != 5 {
			t.Errorf("body %d: expected 5 trail points, got %d", id, len(tr))
		}
	}
}

func TestModelPause(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())
	m = update(t, m, key(" "))
	if m.running {
		t.Fatal("space should pause")
	}

	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("paused model should keep ticking")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.engine.Tick() != 0 {
		t.Errorf("paused model stepped to tick %d", m.engine.Tick())
	}

	m = update(t, m, key(" "))
	m = update(t, m, TickMsg(time.Now()))
	if m.engine.Tick() != 1 {
		t.Errorf("expected tick 1 after resume, got %d", m.engine.Tick())
	}
}

func TestModelReset(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())
	for i := 0; i < 10; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, key("r"))

	if m.engine.Tick() != 0 || m.engine.Len() != 4 {
		t.Errorf("reset engine at tick %d with %d bodies", m.engine.Tick(), m.engine.Len())
	}
	if len(m.trails) != 0 || len(m.liveHistory) != 0 || m.merged != 0 {
		t.Error("reset kept visual state")
	}

	// the rebuilt engine replays the same first merge
	m = update(t, m, TickMsg(time.Now()))
	if m.merged != 1 {
		t.Errorf("expected replayed merge, got %d", m.merged)
	}
}

func TestModelKeys(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())

	m = update(t, m, key("+"))
	if m.zoom <= 1 {
		t.Errorf("zoom in failed: %f", m.zoom)
	}
	for i := 0; i < 20; i++ {
		m = update(t, m, key("-"))
	}
	if m.zoom != minZoom {
		t.Errorf("zoom should clamp at %f, got %f", minZoom, m.zoom)
	}

	m = update(t, m, key("t"))
	if m.showTrails {
		t.Error("t should hide trails")
	}
	m = update(t, m, key("c"))
	if m.theme.Name != Themes[1].Name {
		t.Errorf("expected theme %s, got %s", Themes[1].Name, m.theme.Name)
	}
	m = update(t, m, key("?"))
	if !m.showHelp || !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())
	m = update(t, m, tea.WindowSizeMsg{Width: 145, Height: 40})
	if m.canvas.Width != 145-statsWidth-6 || m.canvas.Height != 36 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	if m.canvas.Width != 20 || m.canvas.Height != 10 {
		t.Errorf("canvas should clamp to 20x10, got %dx%d", m.canvas.Width, m.canvas.Height)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(collisionEngine(), dynamo.DefaultDt, DefaultOptions())
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"RUNNING", "Bodies", "Merged", "Swept"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// the anchor is drawn at the canvas centre
	x, y := m.project(vecmath.Vec{X: 500, Y: 500})
	if !m.canvas.Lit(x, y) {
		t.Error("anchor not drawn")
	}
}

func TestMenuFlow(t *testing.T) {
	menu := NewMenu(config.DefaultConfig(), DefaultOptions())
	if len(menu.scenarios) != 4 {
		t.Fatalf("expected 4 scenarios, got %d", len(menu.scenarios))
	}

	step := func(msg tea.Msg) {
		next, _ := menu.Update(msg)
		menu = next.(Menu)
	}

	step(key("j"))
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if menu.stage != stageParams || menu.cfg.Scenario != menu.scenarios[1].Name {
		t.Fatalf("enter should open parameters for %s", menu.scenarios[1].Name)
	}
	if !strings.Contains(menu.View(), "orbiters") {
		t.Error("parameter view missing orbiter count")
	}

	before := menu.cfg.Orbit.OrbiterCount
	step(key("l"))
	if menu.cfg.Orbit.OrbiterCount != before+10 {
		t.Errorf("expected %d orbiters, got %d", before+10, menu.cfg.Orbit.OrbiterCount)
	}

	step(key("s"))
	if menu.stage != stageLive {
		t.Fatalf("start failed: %v", menu.err)
	}
	if menu.live.engine == nil || menu.live.opts.Title != menu.cfg.Scenario {
		t.Error("live model not wired")
	}

	step(TickMsg(time.Now()))
	if menu.live.engine.Tick() != 1 {
		t.Error("menu does not forward ticks to the live model")
	}
}

func TestMenuInvalidLaunch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.World.Width = 0
	menu := NewMenu(cfg, DefaultOptions())

	next, _ := menu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ = next.(Menu).Update(key("s"))
	menu = next.(Menu)

	if menu.stage != stageParams || menu.err == nil {
		t.Error("invalid config should stay on the parameter screen with an error")
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("expected empty output")
	}
	out := GradientText("abc", "#ff0000", "not-a-color")
	for _, r := range "abc" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("gradient lost rune %q", r)
		}
	}
}

func TestProgressBar(t *testing.T) {
	for _, f := range []float64{-1, 0, 0.5, 1, 2} {
		bar := ProgressBar(f, 10)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("fraction %f: expected 10 cells, got %d", f, n)
		}
	}
}

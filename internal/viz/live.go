package viz

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fluidlab/internal/brush"
	"github.com/san-kum/fluidlab/internal/config"
	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/history"
	"github.com/san-kum/fluidlab/internal/metrics"
	"github.com/san-kum/fluidlab/internal/render"
)

const (
	frameRate       = 30
	chartCapacity   = 120
	defaultCols     = 64
	defaultRows     = 32
	minBrushSize    = 1
	maxBrushSize    = 64
	pngName         = "fluid-art.png"
	gifName         = "fluid.gif"
	rateFloor       = 1e-6
	tuneUp          = 1.25
	tuneDown        = 0.8
	canvasOffsetCol = 1
	canvasOffsetRow = 1
)

var paramKeys = []string{"dt", "diffusion", "viscosity", "iterations"}

// Palette is the colour cycle behind the C key.
var Palette = []string{"#ff0000", "#ff6600", "#ffdd00", "#00ff66", "#00ccff", "#3355ff", "#cc33ff", "#ffffff"}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the interactive painter. It owns the grid and drives it from the
// Bubble Tea event loop, so nothing else may touch the grid while it runs.
type Model struct {
	log *slog.Logger

	title    string
	grid     *fluid.Grid
	params   fluid.Params
	brush    brush.Brush
	colorIdx int
	history  *history.Manager
	stroke   *brush.Stroke
	canvas   *Canvas
	recorder *render.Recorder
	scale    int
	outDir   string

	paused   bool
	ticks    int
	selected int
	theme    int
	showHelp bool
	notice   string
	noticeOK bool

	massHist   []float64
	energyHist []float64

	width, height int
}

// NewModel builds the painter from a validated configuration. Exports are
// written to outDir.
func NewModel(title string, cfg *config.Config, outDir string, log *slog.Logger) (*Model, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return nil, err
	}
	h, err := history.New(cfg.History.Capacity)
	if err != nil {
		return nil, err
	}

	m := &Model{
		log:        log,
		title:      title,
		grid:       g,
		params:     cfg.Params,
		brush:      cfg.Brush,
		history:    h,
		recorder:   render.NewRecorder(cfg.Record.FPS, cfg.Record.Scale),
		scale:      cfg.Record.Scale,
		outDir:     outDir,
		massHist:   make([]float64, 0, chartCapacity),
		energyHist: make([]float64, 0, chartCapacity),
	}
	m.colorIdx = paletteIndex(cfg.Brush.Color)
	m.setCanvas(NewCanvas(defaultCols, defaultRows))
	return m, nil
}

func paletteIndex(c brush.Color) int {
	for i, hex := range Palette {
		if hex == c.Hex() {
			return i
		}
	}
	return 0
}

func (m *Model) setCanvas(c *Canvas) {
	m.canvas = c
	w, h := c.ViewSize()
	stroke := brush.NewStroke(w, h)
	stroke.OnStart = func() { m.history.Record(m.grid) }
	m.stroke = stroke
}

// SetTheme switches to the named theme. It reports false for an unknown
// name and keeps the current theme.
func (m *Model) SetTheme(name string) bool {
	i, ok := themeIndex(name)
	if ok {
		m.theme = i
	}
	return ok
}

// Grid exposes the live grid, mainly for tests and exports.
func (m *Model) Grid() *fluid.Grid { return m.grid }

func (m *Model) Init() tea.Cmd {
	return tick()
}

// Run starts the painter in the alternate screen with mouse tracking.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if !m.paused {
			m.step()
		}
		m.recorder.Capture(m.grid, time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recorder.Recording() {
			m.stopRecording()
		}
		return tea.Quit
	case " ", "space":
		m.paused = !m.paused
	case "r":
		m.history.Record(m.grid)
		m.grid.Reset()
		m.setNotice("reset", true)
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "e":
		if m.brush.Tool == brush.Erase {
			m.brush.Tool = brush.Paint
		} else {
			m.brush.Tool = brush.Erase
		}
	case "c":
		m.colorIdx = (m.colorIdx + 1) % len(Palette)
		m.brush.Color, _ = brush.ParseHex(Palette[m.colorIdx])
		m.brush.Tool = brush.Paint
	case "[":
		m.brush.Size = max(minBrushSize, m.brush.Size-1)
	case "]":
		m.brush.Size = min(maxBrushSize, m.brush.Size+1)
	case "tab":
		m.selected = (m.selected + 1) % len(paramKeys)
	case "up", "k":
		m.tune(true)
	case "down", "j":
		m.tune(false)
	case "+", "=":
		m.resizeGrid(m.grid.Size() + config.SizeStep)
	case "-", "_":
		m.resizeGrid(m.grid.Size() - config.SizeStep)
	case "p":
		m.exportPNG()
	case "g":
		if m.recorder.Recording() {
			m.stopRecording()
		} else {
			m.recorder.Start()
			m.setNotice("recording", true)
		}
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasOffsetCol, msg.Y-canvasOffsetRow
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.canvas.Contains(col, row) {
			return
		}
		x, y := m.canvas.ViewPoint(col, row)
		m.stroke.Begin(m.grid, m.brush, x, y)
	case tea.MouseActionMotion:
		if !m.stroke.Dragging() {
			return
		}
		x, y := m.canvas.ViewPoint(col, row)
		m.stroke.Move(m.grid, m.brush, x, y)
	case tea.MouseActionRelease:
		m.stroke.End()
	}
}

func (m *Model) step() {
	m.grid.Step()
	m.ticks++
	if !m.grid.Finite() {
		m.log.Warn("grid diverged, resetting", "tick", m.ticks, "params", m.params)
		m.grid.Reset()
		m.setNotice("diverged, grid reset", false)
	}
	mass := metrics.MassOf(m.grid, metrics.Red) + metrics.MassOf(m.grid, metrics.Green) + metrics.MassOf(m.grid, metrics.Blue)
	m.massHist = pushCapped(m.massHist, mass)
	m.energyHist = pushCapped(m.energyHist, metrics.KineticEnergyOf(m.grid))
}

func pushCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > chartCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) undo() {
	ok, err := m.history.Undo(m.grid)
	switch {
	case err != nil:
		m.setNotice(err.Error(), false)
	case !ok:
		m.setNotice("nothing to undo", false)
	default:
		m.setNotice("undo", true)
	}
}

func (m *Model) redo() {
	ok, err := m.history.Redo(m.grid)
	switch {
	case err != nil:
		m.setNotice(err.Error(), false)
	case !ok:
		m.setNotice("nothing to redo", false)
	default:
		m.setNotice("redo", true)
	}
}

// tune scales the selected parameter up or down. Rates of zero start from
// a small floor; iterations move by one.
func (m *Model) tune(up bool) {
	p := m.params
	factor := tuneDown
	if up {
		factor = tuneUp
	}
	switch paramKeys[m.selected] {
	case "dt":
		p.Dt *= factor
	case "diffusion":
		p.Diffusion = scaleRate(p.Diffusion, factor, up)
	case "viscosity":
		p.Viscosity = scaleRate(p.Viscosity, factor, up)
	case "iterations":
		if up {
			p.Iterations++
		} else {
			p.Iterations = max(1, p.Iterations-1)
		}
	}
	if err := m.grid.SetParams(p); err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	m.params = p
}

func scaleRate(v, factor float64, up bool) float64 {
	if v == 0 {
		if up {
			return rateFloor
		}
		return 0
	}
	v *= factor
	if !up && v < rateFloor {
		return 0
	}
	return v
}

// resizeGrid rebuilds the grid at a new resolution. The current parameters
// carry over; history does not.
func (m *Model) resizeGrid(size int) {
	if size < config.MinSize || size > config.MaxSize {
		m.setNotice(fmt.Sprintf("resolution stays within %d..%d", config.MinSize, config.MaxSize), false)
		return
	}
	g, err := fluid.New(size, m.params)
	if err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	m.stroke.End()
	m.grid = g
	m.history.Clear()
	m.massHist = m.massHist[:0]
	m.energyHist = m.energyHist[:0]
	m.log.Info("resolution changed", "size", size)
	m.setNotice(fmt.Sprintf("resolution %dx%d", size, size), true)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(8, w-panelWidth-2)
	rows := max(4, h-2)
	// keep the tank square: a terminal cell is about twice as tall as wide
	side := min(cols, rows*2)
	m.stroke.End()
	m.setCanvas(NewCanvas(side, side/2))
}

func (m *Model) exportPNG() {
	path := filepath.Join(m.outDir, pngName)
	f, err := os.Create(path)
	if err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	defer f.Close()
	if err := render.WritePNG(f, m.grid, m.scale); err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	m.log.Info("exported png", "path", path)
	m.setNotice("saved "+pngName, true)
}

func (m *Model) stopRecording() {
	m.recorder.Stop()
	path := filepath.Join(m.outDir, gifName)
	f, err := os.Create(path)
	if err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	defer f.Close()
	if err := m.recorder.Encode(f); err != nil {
		m.setNotice(err.Error(), false)
		return
	}
	m.log.Info("saved recording", "path", path, "frames", m.recorder.Frames())
	m.setNotice(fmt.Sprintf("saved %s (%d frames)", gifName, m.recorder.Frames()), true)
}

func (m *Model) setNotice(s string, ok bool) {
	m.notice, m.noticeOK = s, ok
}

func (m *Model) paramValue(key string) string {
	switch key {
	case "dt":
		return fmt.Sprintf("%.3g", m.params.Dt)
	case "diffusion":
		return formatRate(m.params.Diffusion)
	case "viscosity":
		return formatRate(m.params.Viscosity)
	case "iterations":
		return fmt.Sprintf("%d", m.params.Iterations)
	}
	return ""
}

func (m *Model) View() string {
	theme := Themes[m.theme]
	st := stylesFor(theme)

	canvasView := st.canvas.Render(m.canvas.Render(m.grid, theme.Background))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")

	status := st.running.Render("RUNNING")
	if m.paused {
		status = st.paused.Render("PAUSED")
	}
	if m.recorder.Recording() {
		status += "  " + st.rec.Render(fmt.Sprintf("● REC %d", m.recorder.Frames()))
	}
	s.WriteString(status + "\n\n")

	n := m.grid.Size()
	s.WriteString(st.label.Render("Tick") + st.value.Render(fmt.Sprintf("%d", m.ticks)) + "\n")
	s.WriteString(st.label.Render("Grid") + st.value.Render(fmt.Sprintf("%dx%d", n, n)) + "\n")

	if len(m.massHist) > 1 {
		chart := asciigraph.Plot(m.massHist, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("ink mass"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if k := len(m.energyHist); k > 0 {
		s.WriteString(st.label.Render("Energy") + st.value.Render(fmt.Sprintf("%.3g", m.energyHist[k-1])) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, key := range paramKeys {
		line := fmt.Sprintf("%-10s %s", key, m.paramValue(key))
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Width(0).Render(line) + "\n")
		}
	}

	s.WriteString("\nBRUSH\n")
	tool := m.brush.Tool.String()
	s.WriteString(st.label.Render("Tool") + st.value.Render(tool) + "\n")
	s.WriteString(st.label.Render("Colour") + Swatch(m.brush.Color.Hex()) + " " + st.value.Render(m.brush.Color.Hex()) + "\n")
	s.WriteString(st.label.Render("Size") + st.value.Render(ProgressBar(float64(m.brush.Size), maxBrushSize, 10)+fmt.Sprintf(" %d", m.brush.Size)) + "\n")
	s.WriteString(st.label.Render("History") + st.value.Render(fmt.Sprintf("%d/%d", m.history.Len(), m.history.Capacity())) + "\n")

	if m.notice != "" {
		style := st.notice
		if !m.noticeOK {
			style = st.errorMsg
		}
		s.WriteString("\n" + style.Render(m.notice) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause R:Reset U:Undo Q:Quit\nE:Eraser C:Colour [ ]:Brush ?:Help"))

	// the canvas stays at the top left, where mouse events expect it
	panel := st.panel.Render(s.String())
	if m.showHelp {
		panel = st.panel.Width(0).Render(strings.TrimPrefix(helpText, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Drag to paint and push   ║
║  Space    - Pause/Resume             ║
║  R        - Reset ink and velocity   ║
║  U / S-U  - Undo / Redo              ║
║  E        - Toggle eraser            ║
║  C        - Cycle colour             ║
║  [ ]      - Brush size               ║
║  Tab      - Select parameter         ║
║  Up/Down  - Tune parameter           ║
║  + / -    - Grid resolution          ║
║  P        - Export PNG               ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

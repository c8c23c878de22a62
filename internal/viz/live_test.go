package viz

import (
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fluidlab/internal/brush"
	"github.com/san-kum/fluidlab/internal/config"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Size = 32
	m, err := NewModel("test", cfg, t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.setCanvas(NewCanvas(32, 16))
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func mouse(m *Model, action tea.MouseAction, col, row int) {
	m.Update(tea.MouseMsg{
		X:      col + canvasOffsetCol,
		Y:      row + canvasOffsetRow,
		Action: action,
		Button: tea.MouseButtonLeft,
	})
}

func totalInk(m *Model) float32 {
	var sum float32
	for _, v := range m.Grid().R {
		sum += v
	}
	return sum
}

func TestMousePaintsAndRecordsOnce(t *testing.T) {
	m := newModel(t)

	mouse(m, tea.MouseActionPress, 10, 5)
	if totalInk(m) == 0 {
		t.Fatal("press should paint")
	}
	mouse(m, tea.MouseActionMotion, 12, 5)
	mouse(m, tea.MouseActionMotion, 14, 6)
	mouse(m, tea.MouseActionRelease, 14, 6)

	if m.history.Len() != 1 {
		t.Errorf("expected one undo point per stroke, got %d", m.history.Len())
	}
	var moving bool
	for _, v := range m.Grid().Vx {
		if v > 0 {
			moving = true
		}
	}
	if !moving {
		t.Error("dragging right should push the fluid right")
	}

	press(m, "u")
	if totalInk(m) != 0 {
		t.Error("undo should remove the stroke")
	}
	press(m, "U")
	if totalInk(m) == 0 {
		t.Error("redo should bring the stroke back")
	}
}

func TestMouseOutsideCanvasIgnored(t *testing.T) {
	m := newModel(t)
	mouse(m, tea.MouseActionPress, 40, 5)
	mouse(m, tea.MouseActionMotion, 10, 5)
	if totalInk(m) != 0 || m.history.Len() != 0 {
		t.Error("press outside the canvas should not start a stroke")
	}
}

func TestPauseStillPaints(t *testing.T) {
	m := newModel(t)
	press(m, " ")
	if !m.paused {
		t.Fatal("space should pause")
	}
	mouse(m, tea.MouseActionPress, 5, 5)
	before := m.Grid().SaveState()
	m.Update(TickMsg(time.Now()))
	if m.ticks != 0 {
		t.Error("paused model should not step")
	}
	after := m.Grid().SaveState()
	for i := range before.R {
		if before.R[i] != after.R[i] {
			t.Fatal("paused tick changed the grid")
		}
	}
	if totalInk(m) == 0 {
		t.Error("painting should work while paused")
	}

	press(m, " ")
	m.Update(TickMsg(time.Now()))
	if m.ticks != 1 || len(m.massHist) != 1 {
		t.Errorf("ticks = %d, chart = %d", m.ticks, len(m.massHist))
	}
}

func TestResetAndUndo(t *testing.T) {
	m := newModel(t)
	m.Grid().AddDensity(5, 5, 1, 1, 1)
	press(m, "r")
	if totalInk(m) != 0 {
		t.Fatal("reset should clear ink")
	}
	press(m, "u")
	if totalInk(m) != 1 {
		t.Errorf("undo after reset: ink = %v", totalInk(m))
	}
	press(m, "u")
	if m.notice != "nothing to undo" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestBrushKeys(t *testing.T) {
	m := newModel(t)
	size := m.brush.Size

	press(m, "]", "]")
	if m.brush.Size != size+2 {
		t.Errorf("size = %d, want %d", m.brush.Size, size+2)
	}
	for i := 0; i < 100; i++ {
		press(m, "[")
	}
	if m.brush.Size != minBrushSize {
		t.Errorf("size = %d, want %d", m.brush.Size, minBrushSize)
	}

	press(m, "e")
	if m.brush.Tool != brush.Erase {
		t.Error("e should select the eraser")
	}
	press(m, "c")
	if m.brush.Tool != brush.Paint || m.brush.Color.Hex() != Palette[1] {
		t.Errorf("c should pick the next colour with the brush, got %v %s", m.brush.Tool, m.brush.Color.Hex())
	}
}

func TestTuneParams(t *testing.T) {
	m := newModel(t)
	dt := m.params.Dt

	press(m, "up")
	if m.params.Dt <= dt || m.Grid().Params().Dt != m.params.Dt {
		t.Errorf("dt = %v, grid dt = %v", m.params.Dt, m.Grid().Params().Dt)
	}

	press(m, "tab")
	press(m, "up")
	if m.params.Diffusion != rateFloor {
		t.Errorf("diffusion = %v, want %v", m.params.Diffusion, rateFloor)
	}
	press(m, "down")
	if m.params.Diffusion != 0 {
		t.Errorf("diffusion = %v, want 0", m.params.Diffusion)
	}

	press(m, "tab", "tab")
	for i := 0; i < 10; i++ {
		press(m, "down")
	}
	if m.params.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", m.params.Iterations)
	}
}

func TestResolutionChange(t *testing.T) {
	m := newModel(t)
	press(m, "tab", "tab", "up")
	mouse(m, tea.MouseActionPress, 5, 5)
	mouse(m, tea.MouseActionRelease, 5, 5)

	press(m, "+")
	if m.Grid().Size() != 32+config.SizeStep {
		t.Fatalf("size = %d", m.Grid().Size())
	}
	if m.history.Len() != 0 {
		t.Error("history should be cleared on resolution change")
	}
	if m.Grid().Params() != m.params {
		t.Error("parameters should carry over")
	}
	if totalInk(m) != 0 {
		t.Error("new grid should be empty")
	}

	press(m, "-", "-")
	if m.Grid().Size() != config.MinSize {
		t.Errorf("size = %d, want %d", m.Grid().Size(), config.MinSize)
	}
	press(m, "-")
	if m.Grid().Size() != config.MinSize || m.noticeOK {
		t.Error("resolution below the minimum should be refused")
	}
}

func TestExportPNG(t *testing.T) {
	m := newModel(t)
	m.Grid().AddDensity(3, 3, 1, 0, 0)
	press(m, "p")
	info, err := os.Stat(filepath.Join(m.outDir, pngName))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty png")
	}
}

func TestRecording(t *testing.T) {
	m := newModel(t)
	press(m, "g")
	if !m.recorder.Recording() {
		t.Fatal("g should start recording")
	}
	now := time.Now()
	m.Update(TickMsg(now))
	m.Update(TickMsg(now.Add(time.Second)))
	press(m, "g")
	if m.recorder.Recording() {
		t.Fatal("g should stop recording")
	}
	if _, err := os.Stat(filepath.Join(m.outDir, gifName)); err != nil {
		t.Errorf("gif not written: %v", err)
	}
}

func TestRecordingAcrossResolutionChange(t *testing.T) {
	m := newModel(t)
	now := time.Now()
	press(m, "g")
	m.Update(TickMsg(now))
	press(m, "+")
	m.Update(TickMsg(now.Add(time.Second)))
	press(m, "-", "-")
	m.Update(TickMsg(now.Add(2 * time.Second)))
	press(m, "g")

	if !m.noticeOK {
		t.Fatalf("stopping the recording failed: %s", m.notice)
	}
	f, err := os.Open(filepath.Join(m.outDir, gifName))
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("frames = %d, want 3", len(anim.Image))
	}
	first := anim.Image[0].Bounds()
	for i, frame := range anim.Image {
		if frame.Bounds() != first {
			t.Errorf("frame %d bounds = %v, want %v", i, frame.Bounds(), first)
		}
	}
}

func TestWindowResizeKeepsCanvasSquare(t *testing.T) {
	m := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.canvas.Width != 76 || m.canvas.Height != 38 {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	w, h := m.canvas.ViewSize()
	if w != h {
		t.Errorf("view = %vx%v, want square", w, h)
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	m.Update(TickMsg(time.Now()))
	m.Update(TickMsg(time.Now()))

	out := m.View()
	for _, want := range []string{"TEST", "RUNNING", "PARAMETERS", "diffusion", "BRUSH", "#ff0000"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	press(m, "?", "t")
	if out := m.View(); !strings.Contains(out, "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}
	if Themes[m.theme].Name != "paper" {
		t.Errorf("theme = %s", Themes[m.theme].Name)
	}
}

func TestHelpKeepsCanvasInPlace(t *testing.T) {
	m := newModel(t)
	press(m, "?")
	lines := strings.Split(m.View(), "\n")
	if !strings.Contains(lines[0], "╭") {
		t.Fatalf("first line should be the canvas border, got %q", lines[0])
	}

	mouse(m, tea.MouseActionPress, 0, 0)
	mouse(m, tea.MouseActionRelease, 0, 0)
	x, y := m.canvas.sample(m.Grid().Size(), 0, 0, 0)
	if m.Grid().R[m.Grid().IX(x, y)] == 0 {
		t.Error("stroke under help should land on the top left cell")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSetTheme(t *testing.T) {
	m := newModel(t)
	if !m.SetTheme("abyss") {
		t.Fatal("abyss should be a known theme")
	}
	if Themes[m.theme].Name != "abyss" {
		t.Errorf("theme = %s, want abyss", Themes[m.theme].Name)
	}
	if m.SetTheme("neon") {
		t.Error("unknown theme accepted")
	}
	if Themes[m.theme].Name != "abyss" {
		t.Errorf("unknown theme changed the theme to %s", Themes[m.theme].Name)
	}
	if got := len(ThemeNames()); got != len(Themes) {
		t.Errorf("ThemeNames() has %d names, want %d", got, len(Themes))
	}
}

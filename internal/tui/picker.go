package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fluidlab/internal/config"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var presetInfo = map[string]string{
	"ink":     "orange jet rising from the floor",
	"smoke":   "slow grey plume, light diffusion",
	"honey":   "viscous amber drip",
	"collide": "two jets meeting head on",
	"still":   "empty tank for painting",
}

type stage int

const (
	stageMenu stage = iota
	stageConfig
)

var fieldNames = []string{"size", "dt", "diffusion", "viscosity", "iterations"}

// Picker is a Bubble Tea model that lets the user choose a preset and tune
// it before a live session starts.
type Picker struct {
	stage   stage
	cursor  int
	presets []string

	selected    string
	cfg         *config.Config
	fieldCursor int
	editing     bool
	editBuf     string
	err         error

	done     bool
	canceled bool
}

func NewPicker() *Picker {
	return &Picker{presets: config.ListPresets()}
}

// Result is the chosen configuration, or nil if the picker was canceled.
func (p *Picker) Result() (string, *config.Config) {
	if !p.done || p.canceled {
		return "", nil
	}
	return p.selected, p.cfg
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.stage {
	case stageMenu:
		return p.menuKey(key)
	case stageConfig:
		return p.configKey(key)
	}
	return p, nil
}

func (p *Picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		p.done, p.canceled = true, true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.selected = p.presets[p.cursor]
		p.cfg = config.GetPreset(p.selected)
		p.fieldCursor = 0
		p.stage = stageConfig
	}
	return p, nil
}

func (p *Picker) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.editing {
		switch msg.String() {
		case "enter":
			p.err = p.setField(fieldNames[p.fieldCursor], p.editBuf)
			p.editing = false
			p.editBuf = ""
		case "esc":
			p.editing = false
			p.editBuf = ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == '-' {
					p.editBuf += s
				}
			}
		}
		return p, nil
	}

	switch msg.String() {
	case "ctrl+c":
		p.done, p.canceled = true, true
		return p, tea.Quit
	case "q", "esc":
		p.stage = stageMenu
		p.err = nil
	case "up", "k":
		if p.fieldCursor > 0 {
			p.fieldCursor--
		}
	case "down", "j":
		if p.fieldCursor < len(fieldNames)-1 {
			p.fieldCursor++
		}
	case "enter", " ":
		p.editing = true
		p.editBuf = p.fieldValue(fieldNames[p.fieldCursor])
	case "s":
		if p.err = p.cfg.Validate(); p.err != nil {
			return p, nil
		}
		p.done = true
		return p, tea.Quit
	}
	return p, nil
}

func (p *Picker) fieldValue(name string) string {
	switch name {
	case "size":
		return strconv.Itoa(p.cfg.Size)
	case "dt":
		return strconv.FormatFloat(p.cfg.Params.Dt, 'g', -1, 64)
	case "diffusion":
		return strconv.FormatFloat(p.cfg.Params.Diffusion, 'g', -1, 64)
	case "viscosity":
		return strconv.FormatFloat(p.cfg.Params.Viscosity, 'g', -1, 64)
	case "iterations":
		return strconv.Itoa(p.cfg.Params.Iterations)
	}
	return ""
}

func (p *Picker) setField(name, value string) error {
	switch name {
	case "size", "iterations":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "size" {
			p.cfg.Size = v
		} else {
			p.cfg.Params.Iterations = v
		}
	default:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "dt":
			p.cfg.Params.Dt = v
		case "diffusion":
			p.cfg.Params.Diffusion = v
		case "viscosity":
			p.cfg.Params.Viscosity = v
		}
	}
	return p.cfg.Validate()
}

func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Bold(true).Render("fluidlab") + dim.Render("  stable fluids") + "\n\n")

	switch p.stage {
	case stageMenu:
		for i, name := range p.presets {
			cursor, style := "  ", white
			if i == p.cursor {
				cursor, style = cyan.Render("▸ "), cyan
			}
			fmt.Fprintf(&b, "  %s%-10s %s\n", cursor, style.Render(name), dim.Render(presetInfo[name]))
		}
		b.WriteString("\n  " + dim.Render("↑/↓ select  enter choose  q quit") + "\n")

	case stageConfig:
		b.WriteString("  " + green.Render(p.selected) + "\n\n")
		for i, name := range fieldNames {
			cursor := "  "
			value := p.fieldValue(name)
			if i == p.fieldCursor {
				cursor = cyan.Render("▸ ")
				if p.editing {
					value = yellow.Render(p.editBuf + "_")
				}
			}
			fmt.Fprintf(&b, "  %s%-12s %s\n", cursor, name, value)
		}
		if p.err != nil {
			b.WriteString("\n  " + yellow.Render(p.err.Error()) + "\n")
		}
		b.WriteString("\n  " + dim.Render("enter edit  s start  esc back") + "\n")
	}
	return b.String()
}

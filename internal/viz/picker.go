package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/drape/internal/scene"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Launcher builds the scene and view options of a named preset.
type Launcher func(name string) (*scene.Scene, LiveOptions, error)

// Picker lists presets and hands over to the live view on enter.
type Picker struct {
	names  []string
	info   map[string]string
	cursor int
	launch Launcher
	err    error
	size   tea.WindowSizeMsg
}

func NewPicker(names []string, info map[string]string, launch Launcher) Picker {
	return Picker{names: names, info: info, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.size = size
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.names) == 0 {
			return p, nil
		}
		s, opts, err := p.launch(p.names[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		live := NewModel(s, opts)
		// the terminal size only arrives once, at startup
		if p.size.Width > 0 && p.size.Height > 0 {
			live.resize(p.size.Width, p.size.Height)
		}
		return live, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render("drape") + dim.Render("  pick a preset") + "\n\n")
	for i, name := range p.names {
		cursor := "  "
		line := fmt.Sprintf("%-10s %s", name, dim.Render(p.info[name]))
		if i == p.cursor {
			cursor = cyan.Render("> ")
			line = cyan.Render(fmt.Sprintf("%-10s", name)) + " " + dim.Render(p.info[name])
		}
		b.WriteString(cursor + line + "\n")
	}
	if p.err != nil {
		b.WriteString("\n" + red.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("↑↓ select  enter start  q quit"))
	return b.String()
}

// RunPicker shows the preset menu, then the live view of the chosen preset.
func RunPicker(names []string, info map[string]string, launch Launcher) error {
	p := tea.NewProgram(NewPicker(names, info, launch), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

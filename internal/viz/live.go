package viz

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/drape/internal/cloth"
	"github.com/san-kum/drape/internal/scene"
	"github.com/san-kum/drape/internal/wind"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	width           = 60
	height          = 24
	panelWidth      = 46
	historyCapacity = 600
	maxGIFFrames    = 600
	tileSpacing     = 1.3
	steerStep       = 0.1
)

type LiveOptions struct {
	Title   string
	FPS     int
	Dt      float64
	Theme   string
	GIFPath string
}

type TickMsg time.Time

// Model is the bubbletea model of the live view. The scene is only ever
// touched from Update, so no locking is needed.
type Model struct {
	scene         *scene.Scene
	opts          LiveOptions
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	st            styles
	running       bool
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
	strainHistory []float64
	energyHistory []float64
	width, height int
}

func NewModel(s *scene.Scene, opts LiveOptions) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Dt <= 0 {
		opts.Dt = cloth.DefaultDt
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "drape.gif"
	}
	theme := GetTheme(opts.Theme)
	m := Model{
		scene:         s,
		opts:          opts,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		theme:         theme,
		st:            newStyles(theme),
		running:       true,
		strainHistory: make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		width:         width + panelWidth,
		height:        height,
	}
	m.draw()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme)
			m.st = newStyles(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "left", "h":
			m.steer(r3.Vec{X: -steerStep})
		case "right", "l":
			m.steer(r3.Vec{X: steerStep})
		case "up", "k":
			m.steer(r3.Vec{Y: steerStep})
		case "down", "j":
			m.steer(r3.Vec{Y: -steerStep})
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.scene.PointerMove(float64(msg.X), float64(msg.Y))
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording && len(m.frames) < maxGIFFrames {
			m.frames = append(m.frames, Rasterize(m.canvas, 8, 16))
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the scene by one display frame worth of ticks.
func (m *Model) step() {
	frame := 1 / float64(m.opts.FPS)
	n := max(1, int(frame/m.opts.Dt+0.5))
	for i := 0; i < n; i++ {
		m.scene.Update(m.opts.Dt)
	}

	t := m.scene.Draped()
	if t == nil {
		return
	}
	m.strainHistory = push(m.strainHistory, t.World().MaxStrain())
	m.energyHistory = push(m.energyHistory, t.World().KineticEnergy())
}

func push(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) steer(delta r3.Vec) {
	t := m.scene.Draped()
	if t == nil || t.Steering() == nil {
		return
	}
	t.Steering().Ease(r3.Add(t.Steering().Direction(), delta))
}

func (m *Model) reset() {
	m.scene.Reset()
	m.camera.Reset()
	m.strainHistory = m.strainHistory[:0]
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas.Resize(max(w-panelWidth-4, 10), max(h-2, 6))
	m.scene.Resize(wind.Size{Width: float64(w), Height: float64(h)})
}

func (m *Model) draw() {
	m.canvas.Clear()
	Render(m.canvas, SceneWireframe(m.scene, tileSpacing), m.camera)
}

func (m *Model) saveGIF() {
	if err := SaveGIF(m.opts.GIFPath, m.frames, 100/m.opts.FPS); err != nil {
		slog.Error("failed to save gif", "path", m.opts.GIFPath, "error", err)
		return
	}
	slog.Info("gif saved", "path", m.opts.GIFPath, "frames", len(m.frames))
}

// View renders the cloth next to a stats panel.
func (m Model) View() string {
	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "drape"
	}
	s.WriteString(m.st.header.Render(strings.ToUpper(title)) + "\n\n")

	status := m.st.running.Render("RUNNING")
	if !m.running {
		status = m.st.paused.Render("PAUSED")
	}
	if m.recording {
		status += m.st.paused.Render(fmt.Sprintf("  REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}

	if t := m.scene.Draped(); t != nil {
		w := t.World()
		row("Time", fmt.Sprintf("%.2fs", w.Time()))
		row("Ticks", fmt.Sprintf("%d", w.Ticks()))
		row("Particles", fmt.Sprintf("%d", w.Particles().Len()))
		row("Strain", fmt.Sprintf("%.2f%%", 100*w.MaxStrain()))
		row("Energy", fmt.Sprintf("%.4f", w.KineticEnergy()))
		if st := t.Steering(); st != nil {
			d := st.Direction()
			row("Wind", fmt.Sprintf("%s (%.2f, %.2f, %.2f)", Compass(d.X, d.Y), d.X, d.Y, d.Z))
		} else {
			row("Wind", "calm")
		}
	} else {
		row("Scene", "no draped tile")
	}

	if len(m.strainHistory) > 1 {
		chart := asciigraph.Plot(m.strainHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Max strain"))
		s.WriteString("\n" + m.st.graph.Render(chart) + "\n")
	}
	s.WriteString("\n" + m.st.label.Render("Kinetic") + Sparkline(m.energyHistory, 24) + "\n")

	s.WriteString(m.st.hint.Render("SP:Pause R:Reset Q:Quit\nMouse/←↑→↓:Wind T:Theme\nXY:Rotate +/-:Zoom G:GIF ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.st.cloth.Render(m.canvas.String()), m.st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
  Space     pause / resume
  R         reset cloth and camera
  Mouse     steer the wind toward the pointer
  Arrows    nudge the wind direction
  X / Y     rotate camera (shift reverses)
  + / -     zoom
  T         cycle themes
  G         start / stop GIF recording
  Q         quit`

// RunLive opens the live view on the alternate screen with mouse motion
// reporting enabled.
func RunLive(s *scene.Scene, opts LiveOptions) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

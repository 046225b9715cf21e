// Package tui is the terminal presentation layer: it renders the two
// joystick pads, the live numeric readouts, and the coalesced event
// log, and feeds mouse input back into the controller. The core never
// sees any of this; it only receives pointer samples and geometry and
// hands back vectors and log entries.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/feed"
	"github.com/AGmitmanipal/AI-PET/internal/app"
	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	frameInterval = 33 * time.Millisecond
	padTop        = 2 // rows above the pads (title)
	padGap        = 6 // columns between the two pads
	padLeftMargin = 2
)

// Model is the bubbletea model driving the leash view.
type Model struct {
	svc       *app.Service
	queue     feed.Queue
	padRadius int

	// dragging tracks which pad the mouse currently owns; each
	// joystick handles exactly one pointer, and the terminal has
	// exactly one.
	dragging model.Source
	hasDrag  bool

	status string
	width  int
	height int
}

// New creates the presentation model. padRadius is the joystick
// interaction radius in rows (columns count double to offset the
// terminal cell aspect ratio).
func New(svc *app.Service, queue feed.Queue, padRadius int) *Model {
	m := &Model{
		svc:       svc,
		queue:     queue,
		padRadius: padRadius,
		width:     80,
		height:    24,
	}
	// The pads never move, so their geometry can be registered once.
	ctx := context.Background()
	for src := model.Source(0); src.Valid(); src++ {
		svc.SetGeometry(ctx, src, m.padGeometry(src))
	}
	return m
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, svc *app.Service, queue feed.Queue, padRadius int) error {
	p := tea.NewProgram(New(svc, queue, padRadius),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd { return frame() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		return m, frame()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "e":
		path := m.svc.ExportName()
		if err := m.svc.ExportToFile(context.Background(), path); err != nil {
			m.status = yellow.Render("export skipped: log is empty")
		} else {
			m.status = green.Render("exported " + path)
		}
	}
	return m, nil
}

// handleMouse translates terminal mouse events into pointer samples.
// Columns are halved into virtual units so the pads behave as circles
// despite the 2:1 cell aspect ratio.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X) / 2
	y := float64(msg.Y)
	ctx := context.Background()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		src, ok := m.hitPad(x, y)
		if !ok {
			return
		}
		m.dragging = src
		m.hasDrag = true
		m.queue.Enqueue(ctx, feed.Sample{Source: src, Kind: model.SampleDown, X: x, Y: y})
	case tea.MouseActionMotion:
		if !m.hasDrag {
			return
		}
		m.queue.Enqueue(ctx, feed.Sample{Source: m.dragging, Kind: model.SampleMove, X: x, Y: y})
	case tea.MouseActionRelease:
		if !m.hasDrag {
			return
		}
		m.queue.Enqueue(ctx, feed.Sample{Source: m.dragging, Kind: model.SampleUp, X: x, Y: y})
		m.hasDrag = false
	}
}

// padGeometry returns the container measurement for a pad in virtual
// units (columns halved).
func (m *Model) padGeometry(src model.Source) geom.Geometry {
	r := float64(m.padRadius)
	boxW := 2*r + 1 // virtual width of one pad
	left := float64(padLeftMargin) / 2
	if src == model.Right {
		left += boxW + float64(padGap)/2
	}
	return geom.Geometry{
		CenterX: left + r,
		CenterY: float64(padTop) + r,
		Radius:  r,
	}
}

// hitPad finds which pad, if any, contains the virtual point.
func (m *Model) hitPad(x, y float64) (model.Source, bool) {
	for src := model.Source(0); src.Valid(); src++ {
		g := m.padGeometry(src)
		dx, dy := x-g.CenterX, y-g.CenterY
		if dx*dx+dy*dy <= g.Radius*g.Radius {
			return src, true
		}
	}
	return 0, false
}

func (m *Model) View() string {
	ctx := context.Background()
	var b strings.Builder

	b.WriteString(cyan.Render(" ai-pet leash") + dim.Render("  ·  drag a pad with the mouse") + "\n\n")

	left := m.renderPad(model.Left)
	right := m.renderPad(model.Right)
	pads := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", padGap), right)
	b.WriteString(pads)
	b.WriteString("\n")

	b.WriteString(m.renderReadout(ctx, model.Left))
	b.WriteString(strings.Repeat(" ", padGap))
	b.WriteString(m.renderReadout(ctx, model.Right))
	b.WriteString("\n\n")

	b.WriteString(m.renderLog(ctx))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(" " + m.status + "\n")
	}
	b.WriteString(dim.Render(" e export · q quit"))
	return b.String()
}

// renderPad draws one joystick as a disc of dots with the knob at the
// live vector position.
func (m *Model) renderPad(src model.Source) string {
	vec := m.svc.Vector(context.Background(), src)
	active := m.svc.Active(context.Background(), src)
	r := m.padRadius

	knobCol := int(float64(r)*vec.X*2+0.5) + 2*r // columns are doubled
	knobRow := r - int(float64(r)*vec.Y+0.5)     // screen rows grow downward

	knob := white.Render("●")
	if active {
		knob = green.Render("●")
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", padLeftMargin))
	for row := 0; row <= 2*r; row++ {
		for col := 0; col <= 4*r; col++ {
			dx := float64(col)/2 - float64(r)
			dy := float64(row) - float64(r)
			switch {
			case row == knobRow && col == knobCol:
				b.WriteString(knob)
			case dx*dx+dy*dy <= float64(r*r):
				b.WriteString(dim.Render("·"))
			default:
				b.WriteString(" ")
			}
		}
		if row < 2*r {
			b.WriteString("\n" + strings.Repeat(" ", padLeftMargin))
		}
	}
	return b.String()
}

func (m *Model) renderReadout(ctx context.Context, src model.Source) string {
	vec := m.svc.Vector(ctx, src)
	label := cyan.Render(fmt.Sprintf(" %-5s", src.String()))
	return label + white.Render(fmt.Sprintf("x %+.2f  y %+.2f", vec.X, vec.Y))
}

// renderLog lists the coalesced event history, oldest first, exactly
// as the store orders it.
func (m *Model) renderLog(ctx context.Context) string {
	entries := m.svc.Snapshot(ctx)
	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf(" log (%d)", len(entries))) + "\n")
	if len(entries) == 0 {
		b.WriteString(dim.Render("  no events yet") + "\n")
		return b.String()
	}
	for _, e := range entries {
		ts := e.Timestamp
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ts = t.Format("15:04:05.000")
		}
		line := fmt.Sprintf("  #%-3d %s %-5s x %+.2f y %+.2f",
			e.ID, ts, e.Source.String(), e.Vector.X, e.Vector.Y)
		b.WriteString(white.Render(line) + "\n")
	}
	return b.String()
}

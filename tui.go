package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// footerRows is the status line under the field.
const footerRows = 1

type model struct {
	width    int
	height   int
	interval time.Duration
	driver   *AnimationDriver
	surface  *TermSurface
	lastErr  error
	ready    bool
}

type tickMsg time.Time

func initialModel(driver *AnimationDriver, surface *TermSurface, fps int) model {
	LogInfo("creating terminal model", "fps", fps)

	// One raster pixel is half a cell whatever the device ratio
	driver.Viewport().SetPixelRatio(1)

	return model{
		interval: time.Second / time.Duration(fps),
		driver:   driver,
		surface:  surface,
	}
}

func (m model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			LogInfo("quit requested", "key", msg.String())
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Half-blocks give two pixels per row
		m.driver.Resize(Size{Width: m.width, Height: max(m.height-footerRows, 0) * 2})
		LogDebug("window size", "cols", m.width, "rows", m.height)

	case tickMsg:
		if m.ready {
			err := m.driver.Tick(time.Time(msg))
			if err != nil && !errors.Is(err, ErrFrameDropped) {
				LogError("tick failed", "error", err)
			}
			m.lastErr = err
		}
		// Always reschedule: a dropped frame never stops the loop
		return m, m.tickCmd()
	}

	return m, nil
}

var footerStyle = lipgloss.NewStyle().
	Faint(true).
	Foreground(lipgloss.Color("#888888"))

func (m model) View() string {
	if !m.ready || m.width == 0 || m.surface.Frames() == 0 {
		return "Initializing point field..."
	}

	status := fmt.Sprintf("q to quit | t=%.1fs | %d points | %d dropped",
		m.driver.Clock().Seconds(), len(m.driver.Vertices()), m.driver.Dropped())
	if m.lastErr != nil {
		status += " | last frame dropped"
	}

	return m.surface.String() + "\n" + footerStyle.Render(status)
}

// Package tui is the terminal front end of the client-driven listing: it
// renders controller snapshots and maps keys to navigation.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Controller is the listing controller as seen by the TUI.
type Controller interface {
	Start(ctx context.Context, initial catalog.Params) uint64
	Snapshot() listing.Snapshot
	Subscribe(o listing.Observer)
	Next() bool
	Prev() bool
	GoTo(n int) bool
	Toggle(category string) uint64
	Stop()
}

// changedMsg signals that the controller published a new snapshot.
type changedMsg struct{}

// startedMsg is sent once the controller has loaded categories.
type startedMsg struct{}

// Model is the Bubble Tea model of the catalog browser.
type Model struct {
	ctx     context.Context
	ctrl    Controller
	initial catalog.Params
	changes chan struct{}

	snap    listing.Snapshot
	cursor  int // index into snap.Categories
	spinner spinner.Model
	keys    keyMap

	// pageInput holds the digits of a page number being typed.
	pageInput string

	width  int
	height int
}

// NewModel creates a model over ctrl. The controller is started from Init.
func NewModel(ctx context.Context, ctrl Controller, initial catalog.Params) Model {
	changes := make(chan struct{}, 1)
	ctrl.Subscribe(func(listing.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		initial: initial,
		changes: changes,
		snap:    ctrl.Snapshot(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:    defaultKeys(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), waitForChange(m.changes), m.spinner.Tick)
}

func (m Model) start() tea.Cmd {
	ctx, ctrl, initial := m.ctx, m.ctrl, m.initial
	return func() tea.Msg {
		ctrl.Start(ctx, initial)
		return startedMsg{}
	}
}

// waitForChange blocks until the controller signals a change. Signals
// coalesce; the model always reads the latest snapshot.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case startedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.cursor >= len(m.snap.Categories) {
		m.cursor = max(len(m.snap.Categories)-1, 0)
	}
}

// maxPageDigits bounds the page number entry.
const maxPageDigits = 6

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pageInput != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if n, err := strconv.Atoi(m.pageInput); err == nil {
				m.ctrl.GoTo(n)
			}
			m.pageInput = ""
			return m, nil
		case key.Matches(msg, m.keys.Erase):
			m.pageInput = m.pageInput[:len(m.pageInput)-1]
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.pageInput = ""
			return m, nil
		case !key.Matches(msg, m.keys.Digit):
			m.pageInput = ""
		}
	}

	switch {
	case key.Matches(msg, m.keys.Digit):
		if len(m.pageInput) < maxPageDigits {
			m.pageInput += msg.String()
		}

	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()

	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Prev()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Categories)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.snap.Categories) {
			m.ctrl.Toggle(m.snap.Categories[m.cursor].Name)
		}
	}

	return m, nil
}

// --- View rendering ---

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	panelStyle    = lipgloss.NewStyle().PaddingRight(3)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pokédex"))
	b.WriteString("  ")
	b.WriteString(m.viewStatus())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.viewCategories()),
		m.viewItems(),
	))
	b.WriteString("\n\n")

	b.WriteString(m.viewPager())
	b.WriteRune('\n')
	b.WriteString(m.viewHelp())

	return b.String()
}

func (m Model) viewStatus() string {
	s := m.snap
	switch s.State {
	case listing.StateIdle, listing.StateFetchingList:
		return m.spinner.View() + " Loading..."
	}

	status := fmt.Sprintf("Page %d of %d · %s", s.Params.Page, s.TotalPages, humanize.Comma(int64(s.Total)))
	if s.LoadingImages {
		status += " " + m.spinner.View()
	}
	return dimStyle.Render(status)
}

func (m Model) viewCategories() string {
	if len(m.snap.Categories) == 0 {
		return dimStyle.Render("Types unavailable")
	}

	lines := make([]string, 0, len(m.snap.Categories))
	for i, cat := range m.snap.Categories {
		mark := "[ ]"
		style := normalStyle
		if m.snap.Params.Has(cat.Name) {
			mark = "[x]"
			style = selectedStyle
		}
		line := mark + " " + cat.Name
		if i == m.cursor {
			lines = append(lines, cursorStyle.Render("> "+line))
			continue
		}
		lines = append(lines, style.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewItems() string {
	s := m.snap
	switch {
	case s.State == listing.StateIdle || s.State == listing.StateFetchingList:
		return dimStyle.Render("Loading...")
	case s.Err != nil:
		return errorStyle.Render("Listing unavailable")
	case len(s.Items) == 0:
		return dimStyle.Render("No creatures match the selected types.")
	}

	lines := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		if !item.Resolved() {
			lines = append(lines, normalStyle.Render(item.Name)+" "+dimStyle.Render("loading..."))
			continue
		}
		lines = append(lines, normalStyle.Render(item.Name)+" "+dimStyle.Render(strings.Join(item.Tags, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewPager() string {
	s := m.snap
	if m.pageInput != "" {
		return "Go to page: " + m.pageInput + "_ " + dimStyle.Render(fmt.Sprintf("(1-%d)", s.TotalPages))
	}
	if len(s.Markers) == 0 {
		return ""
	}

	var parts []string
	if s.HasPrev {
		parts = append(parts, "‹ prev")
	}
	for _, marker := range s.Markers {
		if marker.Page == s.Params.Page {
			parts = append(parts, currentStyle.Render(marker.String()))
			continue
		}
		parts = append(parts, marker.String())
	}
	if s.HasNext {
		parts = append(parts, "next ›")
	}
	return strings.Join(parts, " ")
}

func (m Model) viewHelp() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

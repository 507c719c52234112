package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/panel"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/selection"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		integrations bool
		showHelp     bool
		logFile      string
	)

	cmd := &cobra.Command{
		Use:   "explore [map-file]",
		Short: "Browse a feature map in the terminal",
		Long: `Browse a feature map in the terminal.

Click a feature, or move the cursor with tab/arrows and press enter, to open
its detail panel. Press i for help, esc to close, q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("integrations") {
				integrations = c.cfg.Integrations
			}
			side, err := graph.ParsePanelSide(c.cfg.PanelSide)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("panel-side") {
				s, _ := cmd.Flags().GetString("panel-side")
				if side, err = graph.ParsePanelSide(s); err != nil {
					return err
				}
			}

			m, err := c.loadMap(c.mapPath(args))
			if err != nil {
				return err
			}
			scene, err := graph.Build(m, graph.WithPalette(c.cfg.Palette.Resolve()))
			if err != nil {
				return err
			}
			model := newExploreModel(scene, exploreOptions{
				panel:    panel.Options{ShowIntegrations: integrations},
				side:     side,
				showHelp: showHelp,
				onChange: func(s selection.State) {
					c.Logger.Debug("selection changed", "surface", s.Surface(), "feature", s.Selected.ID)
				},
			})

			restore, err := redirectLogs(c.Logger, c.Err, logFile)
			if err != nil {
				return err
			}
			defer restore()
			c.Logger.Debug("explorer started", "map", m.Title, "features", len(m.Features), "side", side)
			return runExplore(cmd.Context(), model)
		},
	}

	cmd.Flags().BoolVar(&integrations, "integrations", true, "list integration possibilities in the detail panel")
	cmd.Flags().String("panel-side", "", "show the detail panel on the left or right")
	cmd.Flags().BoolVar(&showHelp, "show-help", false, "open with the help overlay shown")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the explorer runs")

	return cmd
}

func runExplore(ctx context.Context, m exploreModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// =============================================================================
// Key Map
// =============================================================================

type exploreKeyMap struct {
	next   key.Binding
	prev   key.Binding
	open   key.Binding
	close  key.Binding
	help   key.Binding
	scroll key.Binding
	quit   key.Binding
}

func newExploreKeyMap() exploreKeyMap {
	return exploreKeyMap{
		next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next feature"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev feature"),
		),
		open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		help: key.NewBinding(
			key.WithKeys("i", "?"),
			key.WithHelp("i", "how to use"),
		),
		scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll details"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.open, k.close, k.help, k.quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.open},
		{k.close, k.scroll},
		{k.help, k.quit},
	}
}

// =============================================================================
// Model
// =============================================================================

const (
	exploreHeaderLines = 2
	exploreFooterLines = 1
	minPanelWidth      = 28
	maxHelpWidth       = 64

	infoButton  = "[i]"
	closeButton = "[x]"

	helpDeniedNotice = "Close the detail panel to open help"
)

var (
	stylePanelTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSeparator  = lipgloss.NewStyle().Foreground(colorDim)
	styleHelpBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan).Padding(0, 1)
)

type exploreOptions struct {
	panel    panel.Options
	side     graph.PanelSide
	showHelp bool                  // open with the help overlay shown
	onChange func(selection.State) // observes every selection change
}

// exploreModel is the bubbletea model of the terminal explorer. All
// selection state lives in the controller; the model only maps input to
// controller calls and draws the controller's state.
type exploreModel struct {
	scene *graph.Scene
	ctrl  *selection.Controller
	opts  exploreOptions

	keys   exploreKeyMap
	help   help.Model
	detail viewport.Model

	md      *glamour.TermRenderer
	mdWidth int

	helpText  string
	helpWidth int

	cursor        int
	shownID       string
	notice        string
	width, height int
}

func newExploreModel(scene *graph.Scene, opts exploreOptions) exploreModel {
	if opts.side == "" {
		opts.side = graph.PanelRight
	}
	var ctrlOpts []selection.Option
	if opts.showHelp {
		ctrlOpts = append(ctrlOpts, selection.WithHelpVisible())
	}
	if opts.onChange != nil {
		ctrlOpts = append(ctrlOpts, selection.WithOnChange(opts.onChange))
	}
	return exploreModel{
		scene:  scene,
		ctrl:   selection.New(ctrlOpts...),
		opts:   opts,
		keys:   newExploreKeyMap(),
		help:   help.New(),
		detail: viewport.New(minPanelWidth, 10),
		width:  80,
		height: 24,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.shownID, m.helpWidth = "", 0
	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.prev):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.open):
			if len(m.scene.Nodes) > 0 {
				m.ctrl.Select(m.scene.Nodes[m.cursor].Feature)
			}
		case key.Matches(msg, m.keys.close):
			m.dismiss()
		case key.Matches(msg, m.keys.help):
			m.toggleHelp()
		case key.Matches(msg, m.keys.scroll):
			if m.ctrl.Surface() == selection.SurfaceDetail {
				m.detail, cmd = m.detail.Update(msg)
			}
		}
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	}
	m.syncDetail()
	return m, cmd
}

func (m *exploreModel) moveCursor(delta int) {
	n := len(m.scene.Nodes)
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// dismiss closes whichever surface is open.
func (m *exploreModel) dismiss() {
	switch m.ctrl.Surface() {
	case selection.SurfaceDetail:
		m.ctrl.Clear()
	case selection.SurfaceHelp:
		m.ctrl.HideHelp()
	}
}

func (m *exploreModel) toggleHelp() {
	if !m.ctrl.ToggleHelp() {
		m.notice = helpDeniedNotice
	}
}

func (m *exploreModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	surface := m.ctrl.Surface()

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if surface == selection.SurfaceDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return cmd
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	m.notice = ""

	if m.onInfoButton(msg.X, msg.Y) {
		m.toggleHelp()
		return nil
	}
	if surface == selection.SurfaceHelp {
		m.ctrl.HideHelp()
		return nil
	}

	row := msg.Y - exploreHeaderLines
	col := msg.X - m.mapOffset()
	if surface == selection.SurfaceDetail && m.inPanel(msg.X) {
		if row == 0 && m.onCloseButton(msg.X) {
			m.ctrl.Clear()
		}
		return nil
	}

	cols, rows := m.mapSize()
	if f, ok := m.featureAt(col, row, cols, rows); ok {
		m.ctrl.Select(f)
		m.cursor = m.scene.Map.Index(f.ID)
	}
	return nil
}

// =============================================================================
// Geometry
// =============================================================================

func (m exploreModel) bodyRows() int {
	return max(1, m.height-exploreHeaderLines-exploreFooterLines)
}

func (m exploreModel) panelWidth() int {
	return max(minPanelWidth, m.width/3)
}

// mapSize returns the character size of the map area. An open detail panel
// and its separator take columns from it.
func (m exploreModel) mapSize() (cols, rows int) {
	cols = m.width
	if m.ctrl.Surface() == selection.SurfaceDetail {
		cols -= m.panelWidth() + 1
	}
	return max(1, cols), m.bodyRows()
}

// mapOffset is the first screen column of the map area.
func (m exploreModel) mapOffset() int {
	if m.ctrl.Surface() == selection.SurfaceDetail && m.opts.side == graph.PanelLeft {
		return m.panelWidth() + 1
	}
	return 0
}

func (m exploreModel) inPanel(x int) bool {
	pw := m.panelWidth()
	if m.opts.side == graph.PanelLeft {
		return x < pw
	}
	return x >= m.width-pw
}

func (m exploreModel) onCloseButton(x int) bool {
	end := m.width
	if m.opts.side == graph.PanelLeft {
		end = m.panelWidth()
	}
	return x >= end-len(closeButton) && x < end
}

func (m exploreModel) onInfoButton(x, y int) bool {
	return y == 0 && x >= m.width-len(infoButton) && x < m.width
}

// cellOf maps a scene coordinate to a map-area cell.
func (m exploreModel) cellOf(x, y float64, cols, rows int) (col, row int) {
	col = int(x / m.scene.Width * float64(cols))
	row = int(y / m.scene.Height * float64(rows))
	return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
}

// sceneOf maps the center of a map-area cell back to scene coordinates.
func (m exploreModel) sceneOf(col, row, cols, rows int) (x, y float64) {
	x = (float64(col) + 0.5) * m.scene.Width / float64(cols)
	y = (float64(row) + 0.5) * m.scene.Height / float64(rows)
	return x, y
}

// labelSpan is where a node's label and annotation land in the map area.
type labelSpan struct {
	id       string
	row, col int
	text     string
	noteCol  int
	note     string
}

func (s labelSpan) contains(col, row int) bool {
	if row == s.row && col >= s.col && col < s.col+len([]rune(s.text)) {
		return true
	}
	return s.note != "" && row == s.row+1 && col >= s.noteCol && col < s.noteCol+len([]rune(s.note))
}

func (m exploreModel) labelSpans(cols, rows int) []labelSpan {
	maxLabel := max(6, cols/6)
	spans := make([]labelSpan, 0, len(m.scene.Nodes))
	for _, n := range m.scene.Nodes {
		col, row := m.cellOf(n.X, n.Y, cols, rows)
		s := labelSpan{id: n.Feature.ID, row: row, text: " " + truncate(n.Label, maxLabel) + " "}
		s.col = clampStart(col, len([]rune(s.text)), cols)
		if n.Annotation != "" && row+1 < rows {
			s.note = truncate(n.Annotation, maxLabel)
			s.noteCol = clampStart(col, len([]rune(s.note)), cols)
		}
		spans = append(spans, s)
	}
	return spans
}

// featureAt resolves a click in the map area. Labels are hit first since they
// are wider than the circles they stand for; otherwise the scene hit-tests
// the cell's center.
func (m exploreModel) featureAt(col, row, cols, rows int) (sitemap.Feature, bool) {
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return sitemap.Feature{}, false
	}
	spans := m.labelSpans(cols, rows)
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].contains(col, row) {
			return m.scene.Map.Feature(spans[i].id)
		}
	}
	return m.scene.HitTest(m.sceneOf(col, row, cols, rows))
}

func clampStart(center, width, cols int) int {
	return min(max(center-width/2, 0), max(cols-width, 0))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// =============================================================================
// Panel Content
// =============================================================================

// syncDetail re-renders the detail panel or the help text when the
// selection or the size changed.
func (m *exploreModel) syncDetail() {
	if m.ctrl.HelpVisible() {
		cols, _ := m.mapSize()
		if w := m.helpBoxWidth(cols); w != m.helpWidth {
			m.helpText = m.markdown(panel.Help(m.scene.Map), w-4)
			m.helpWidth = w
		}
	}

	f, ok := m.ctrl.Selected()
	if !ok {
		m.shownID = ""
		return
	}
	if f.ID == m.shownID {
		return
	}
	m.shownID = f.ID

	w := m.panelWidth() - 1
	m.detail.Width = w
	m.detail.Height = max(1, m.bodyRows()-1)
	m.detail.SetContent(m.markdown(panel.Detail(f, m.opts.panel), w))
	m.detail.GotoTop()
}

// markdown renders c through glamour, falling back to plain text.
func (m *exploreModel) markdown(c panel.Content, width int) string {
	if m.md == nil || m.mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return panel.PlainText(c)
		}
		m.md, m.mdWidth = r, width
	}
	out, err := m.md.Render(panel.Markdown(c))
	if err != nil {
		return panel.PlainText(c)
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// View
// =============================================================================

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.bodyView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m exploreModel) headerView() string {
	title := StyleTitle.Render(m.scene.Map.Title)
	if m.scene.Map.Subtitle != "" {
		title += " " + StyleDim.Render(m.scene.Map.Subtitle)
	}
	gap := max(1, m.width-lipgloss.Width(title)-len(infoButton))
	info := StyleTitle.Render(infoButton)
	if !m.ctrl.HelpEnabled() {
		info = StyleDim.Render(infoButton)
	}
	first := title + strings.Repeat(" ", gap) + info

	p := m.scene.Palette
	legend := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Internal)).Render("●") + StyleDim.Render(" internal  ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color(p.External)).Render("●") + StyleDim.Render(" external (recommended tool)")
	if m.notice != "" {
		legend += "  " + StyleWarning.Render(m.notice)
	} else if len(m.scene.Nodes) > 0 {
		legend += "  " + StyleDim.Render(iconInfo+" "+m.scene.Nodes[m.cursor].Label)
	}
	return first + "\n" + legend
}

func (m exploreModel) bodyView() string {
	cols, rows := m.mapSize()

	switch m.ctrl.Surface() {
	case selection.SurfaceHelp:
		return m.helpView(cols, rows)
	case selection.SurfaceDetail:
		mapView := m.mapView(cols, rows)
		sep := styleSeparator.Render(strings.TrimSuffix(strings.Repeat("│\n", rows), "\n"))
		pv := m.panelView(rows)
		if m.opts.side == graph.PanelLeft {
			return lipgloss.JoinHorizontal(lipgloss.Top, pv, sep, mapView)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, mapView, sep, pv)
	}
	return m.mapView(cols, rows)
}

func (m exploreModel) mapView(cols, rows int) string {
	g := newGrid(cols, rows)
	p := m.scene.Palette

	edge := g.addStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(p.Edge)))
	for _, s := range m.scene.Segments {
		c0, r0 := m.cellOf(s.X1, s.Y1, cols, rows)
		c1, r1 := m.cellOf(s.X2, s.Y2, cols, rows)
		g.line(c0, r0, c1, r1, '·', edge)
	}

	selected, _ := m.ctrl.Selected()
	spans := m.labelSpans(cols, rows)
	for i, n := range m.scene.Nodes {
		s := spans[i]
		g.text(s.col, s.row, s.text, g.addStyle(m.labelStyle(i, selected.ID)))
		if s.note != "" {
			g.text(s.noteCol, s.row+1, s.note, g.addStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(n.Fill))))
		}
	}
	return g.String()
}

// labelStyle styles the label of node i: filled by kind, bold for the root,
// underlined under the cursor and reversed when selected.
func (m exploreModel) labelStyle(i int, selectedID string) lipgloss.Style {
	n := m.scene.Nodes[i]
	st := lipgloss.NewStyle().
		Background(lipgloss.Color(n.Fill)).
		Foreground(lipgloss.Color(graph.Hex(m.scene.Palette.Label)))
	if n.Stroke != "" {
		st = st.Bold(true)
	}
	if i == m.cursor {
		st = st.Underline(true)
	}
	if n.Feature.ID == selectedID {
		st = st.Reverse(true)
	}
	return st
}

func (m exploreModel) panelView(rows int) string {
	pw := m.panelWidth()
	f, _ := m.ctrl.Selected()
	head := stylePanelTitle.Render(truncate(f.Name, pw-len(closeButton)-1))
	gap := max(1, pw-lipgloss.Width(head)-len(closeButton))
	head += strings.Repeat(" ", gap) + StyleDim.Render(closeButton)

	return lipgloss.NewStyle().Width(pw).Height(rows).MaxHeight(rows).
		Render(head + "\n" + m.detail.View())
}

func (m exploreModel) helpBoxWidth(cols int) int {
	return max(20, min(cols-4, maxHelpWidth))
}

func (m exploreModel) helpView(cols, rows int) string {
	body := m.helpText + "\n\n" + StyleDim.Render(fmt.Sprintf("Press %s or esc to close.", m.keys.help.Help().Key))
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, styleHelpBox.Width(m.helpBoxWidth(cols)).Render(body))
}

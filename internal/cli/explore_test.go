package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/featuremap/pkg/panel"
	"github.com/matzehuels/featuremap/pkg/render/graph"
	"github.com/matzehuels/featuremap/pkg/selection"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

func newTestExplore(t *testing.T, side graph.PanelSide) exploreModel {
	t.Helper()
	scene, err := graph.Build(sitemap.Default())
	if err != nil {
		t.Fatal(err)
	}
	m := newExploreModel(scene, exploreOptions{panel: panel.DefaultOptions(), side: side})
	return step(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func step(m exploreModel, msg tea.Msg) exploreModel {
	next, _ := m.Update(msg)
	return next.(exploreModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// clickScene clicks the screen cell over scene coordinate (x, y).
func clickScene(m exploreModel, x, y float64) tea.MouseMsg {
	cols, rows := m.mapSize()
	col, row := m.cellOf(x, y, cols, rows)
	return click(col+m.mapOffset(), row+exploreHeaderLines)
}

func TestExploreClickHomeScenario(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)

	m = step(m, clickScene(m, 400, 100))
	f, ok := m.ctrl.Selected()
	if !ok || f.ID != "home" {
		t.Fatalf("Selected() = %q/%v, want home", f.ID, ok)
	}
	view := m.View()
	for _, want := range []string{"Home Page", "Internal", closeButton} {
		if !strings.Contains(view, want) {
			t.Errorf("View() with home selected missing %q", want)
		}
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.ctrl.Selected(); ok {
		t.Error("esc did not clear the selection")
	}

	m = step(m, runes("i"))
	if !m.ctrl.HelpVisible() {
		t.Fatal("i did not open help")
	}
	if !strings.Contains(m.View(), "How to Use This Sitemap") {
		t.Error("help overlay not shown")
	}

	m = step(m, runes("i"))
	if m.ctrl.HelpVisible() {
		t.Error("second i did not close help")
	}
}

func TestExploreKeyboardSelect(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)

	m = step(m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if f, _ := m.ctrl.Selected(); f.ID != "profiles" {
		t.Errorf("Selected() = %q, want profiles", f.ID)
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = step(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.cursor != len(m.scene.Nodes)-1 {
		t.Errorf("cursor = %d, want wrap to %d", m.cursor, len(m.scene.Nodes)-1)
	}
}

func TestExploreHelpBlockedBySelection(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)

	m = step(m, clickScene(m, 600, 550))
	m = step(m, runes("?"))
	if m.ctrl.HelpVisible() {
		t.Error("help opened while a feature is selected")
	}
	if m.notice != helpDeniedNotice {
		t.Errorf("notice = %q, want %q", m.notice, helpDeniedNotice)
	}
	if m.ctrl.Surface() != selection.SurfaceDetail {
		t.Errorf("Surface() = %s, want detail", m.ctrl.Surface())
	}
}

func TestExploreSelectClosesHelp(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)

	m = step(m, runes("i"))
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ctrl.HelpVisible() {
		t.Error("selecting a feature left help open")
	}
	if f, _ := m.ctrl.Selected(); f.ID != "home" {
		t.Errorf("Selected() = %q, want home", f.ID)
	}
}

func TestExploreClickEmptySpace(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	m = step(m, clickScene(m, 20, 590))
	if _, ok := m.ctrl.Selected(); ok {
		t.Error("click on empty space selected a feature")
	}
}

func TestExploreClickLabel(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	cols, rows := m.mapSize()

	var span labelSpan
	for _, s := range m.labelSpans(cols, rows) {
		if s.id == "forum" {
			span = s
		}
	}
	m = step(m, click(span.col, span.row+exploreHeaderLines))
	if f, _ := m.ctrl.Selected(); f.ID != "forum" {
		t.Errorf("Selected() = %q, want forum", f.ID)
	}
	if m.cursor != m.scene.Map.Index("forum") {
		t.Errorf("cursor = %d, want forum's index", m.cursor)
	}
}

func TestExploreInfoButtonAndDismiss(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)

	m = step(m, click(m.width-1, 0))
	if !m.ctrl.HelpVisible() {
		t.Fatal("info button did not open help")
	}
	m = step(m, click(10, 10))
	if m.ctrl.HelpVisible() {
		t.Error("click did not dismiss help")
	}
}

func TestExploreCloseButton(t *testing.T) {
	tests := []struct {
		side   graph.PanelSide
		closeX func(m exploreModel) int
	}{
		{graph.PanelRight, func(m exploreModel) int { return m.width - 1 }},
		{graph.PanelLeft, func(m exploreModel) int { return m.panelWidth() - 1 }},
	}
	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			m := newTestExplore(t, tt.side)
			m = step(m, clickScene(m, 400, 100))
			if _, ok := m.ctrl.Selected(); !ok {
				t.Fatal("home not selected")
			}

			if tt.side == graph.PanelLeft && m.mapOffset() != m.panelWidth()+1 {
				t.Errorf("mapOffset() = %d, want %d", m.mapOffset(), m.panelWidth()+1)
			}

			m = step(m, click(tt.closeX(m), exploreHeaderLines))
			if _, ok := m.ctrl.Selected(); ok {
				t.Error("close button did not clear the selection")
			}
		})
	}
}

func TestExploreWithoutIntegrations(t *testing.T) {
	scene, err := graph.Build(sitemap.Default())
	if err != nil {
		t.Fatal(err)
	}
	m := newExploreModel(scene, exploreOptions{panel: panel.Options{ShowIntegrations: false}})
	m = step(m, tea.WindowSizeMsg{Width: 120, Height: 60})
	m = step(m, clickScene(m, 600, 550))

	view := m.View()
	if strings.Contains(view, "Integration Possibilities") {
		t.Error("lean panel lists integrations")
	}
	if !strings.Contains(view, "Airtable") {
		t.Error("lean panel dropped the recommended tool")
	}
}

func TestExploreSmallTerminal(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	m = step(m, tea.WindowSizeMsg{Width: 30, Height: 6})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.View() == "" {
		t.Error("empty view")
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = step(m, runes("i"))
	if m.View() == "" {
		t.Error("empty help view")
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestSceneCellRoundTrip(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	cols, rows := m.mapSize()
	for _, n := range m.scene.Nodes {
		col, row := m.cellOf(n.X, n.Y, cols, rows)
		x, y := m.sceneOf(col, row, cols, rows)
		if !n.Contains(x, y) {
			t.Errorf("%s: cell (%d,%d) maps to (%g,%g), outside the node", n.Feature.ID, col, row, x, y)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Home Page", 20, "Home Page"},
		{"Home Page", 9, "Home Page"},
		{"Funding Opportunities", 8, "Funding…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestExploreShowHelpAndObserver(t *testing.T) {
	scene, err := graph.Build(sitemap.Default())
	if err != nil {
		t.Fatal(err)
	}
	var surfaces []selection.Surface
	m := newExploreModel(scene, exploreOptions{
		panel:    panel.DefaultOptions(),
		showHelp: true,
		onChange: func(s selection.State) { surfaces = append(surfaces, s.Surface()) },
	})
	m = step(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.ctrl.Surface() != selection.SurfaceHelp {
		t.Fatalf("surface = %v, want help on start", m.ctrl.Surface())
	}
	if !strings.Contains(m.View(), panel.HelpTitle) {
		t.Error("help overlay not drawn on start")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = step(m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})

	want := []selection.Surface{selection.SurfaceNone, selection.SurfaceDetail}
	if len(surfaces) != len(want) {
		t.Fatalf("observer saw %v, want %v", surfaces, want)
	}
	for i := range want {
		if surfaces[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, surfaces[i], want[i])
		}
	}
	if m.ctrl.HelpEnabled() {
		t.Error("info toggle should be disabled while a feature is selected")
	}
}

func TestExploreLabelStyleUsesHexLabel(t *testing.T) {
	m := newTestExplore(t, graph.PanelRight)
	st := m.labelStyle(0, "")
	if got := st.GetForeground(); got != lipgloss.Color("#ffffff") {
		t.Errorf("label foreground = %v, want #ffffff", got)
	}
	if !st.GetBold() {
		t.Error("root label should be bold")
	}
	if !m.labelStyle(0, "home").GetReverse() {
		t.Error("selected label should be reversed")
	}
}

package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/alexanderramin/firmdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardLoadedMsg signals that the snapshot behind the dashboard has
// been loaded.
type dashboardLoadedMsg struct {
	target  *dashboardView
	summary service.Summary
	err     error
}

const dashLeftPaneWidth = 40

// dashboardView is the home screen: totals for both tables side by side.
type dashboardView struct {
	state   *SharedState
	summary *service.Summary
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "all clients")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new clients")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if app.Loader == nil {
			return dashboardLoadedMsg{target: v, err: fmt.Errorf("no data source configured")}
		}
		snap, err := app.Loader.Load(context.Background())
		if err != nil {
			return dashboardLoadedMsg{target: v, err: err}
		}
		return dashboardLoadedMsg{target: v, summary: service.Summarize(snap, app.now())}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.target != v {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			s := msg.summary
			v.summary = &s
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case hoursLoggedMsg:
		if msg.err == nil {
			return v, v.loadData()
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e", "1":
			return v, pushView(newEngagementListView(v.state))
		case "p", "2":
			return v, pushView(newProspectListView(v.state))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.summary == nil {
		if !v.loading {
			return ""
		}
		return "\n  " + formatter.Dim("Loading dashboard...")
	}
	s := v.summary

	leftPane := v.renderEngagementPane(s)
	rightPane := v.renderProspectPane(s)

	rightWidth := max(v.state.Width-dashLeftPaneWidth-3, 20)
	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol)
}

func (v *dashboardView) renderEngagementPane(s *service.Summary) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("ALL CLIENTS") + "\n\n")
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Engagements", formatter.StyleBold.Render(fmt.Sprint(s.Engagements))))

	late := formatter.StyleGreen.Render("0")
	if s.Late > 0 {
		late = formatter.StyleRed.Render(fmt.Sprint(s.Late))
	}
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Late", late))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "No deadline", formatter.Dim(fmt.Sprint(s.Undated))))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Hours logged", formatter.Hours(s.LoggedHours)))

	if len(s.ByStatus) > 0 {
		b.WriteString("\n" + formatter.StyleHeader.Render("BY STATUS") + "\n\n")
		statuses := v.state.App.Settings.Catalog.Statuses
		for _, st := range orderedStatuses(s.ByStatus, statuses) {
			b.WriteString(fmt.Sprintf("  %s %d\n",
				formatter.PadVisible(formatter.StatusPill(st, statuses), 26), s.ByStatus[st]))
		}
	}
	return b.String()
}

func (v *dashboardView) renderProspectPane(s *service.Summary) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("NEW CLIENTS") + "\n\n")
	b.WriteString(fmt.Sprintf("  %-20s %s\n", "Prospects", formatter.StyleBold.Render(fmt.Sprint(s.Prospects))))
	b.WriteString(fmt.Sprintf("  %-20s %s\n", "Projected revenue", formatter.StyleGreen.Render(formatter.Money(s.ProjectedRevenue))))
	return b.String()
}

// orderedStatuses lists statuses in workflow order, then any statuses
// outside the catalog alphabetically.
func orderedStatuses(counts map[string]int, workflow []string) []string {
	var out []string
	seen := make(map[string]bool, len(workflow))
	for _, st := range workflow {
		seen[st] = true
		if counts[st] > 0 {
			out = append(out, st)
		}
	}
	var extra []string
	for st := range counts {
		if !seen[st] {
			extra = append(extra, st)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

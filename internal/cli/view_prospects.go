package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type prospectsLoadedMsg struct {
	target *prospectListView
	rows   []*domain.Prospect
	err    error
}

// prospectListView is the "New Clients" table.
type prospectListView struct {
	state    *SharedState
	dispatch *worker.Dispatcher

	rows     []*domain.Prospect
	filtered []*domain.Prospect
	criteria filter.ProspectCriteria
	options  filter.ProspectOptionSet

	window *paging.Window
	list   virtualList

	loading   bool
	pending   bool
	err       error
	filterErr error

	searching bool
	search    string
}

func newProspectListView(state *SharedState) *prospectListView {
	s := state.App.Settings
	v := &prospectListView{
		state:    state,
		dispatch: worker.NewDispatcher(),
		window:   paging.NewWindow(s.Batch, s.Step),
		loading:  true,
	}
	v.list = newVirtualList(state.RowHeight(), listHeight(state), v.renderRow)
	return v
}

func (v *prospectListView) ID() ViewID          { return ViewProspects }
func (v *prospectListView) Title() string       { return "New Clients" }
func (v *prospectListView) CapturesInput() bool { return v.searching }

func (v *prospectListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	}
}

func (v *prospectListView) Init() tea.Cmd {
	return v.load()
}

func (v *prospectListView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		rows, err := app.Prospects.List(context.Background())
		return prospectsLoadedMsg{target: v, rows: rows, err: err}
	}
}

func (v *prospectListView) submit() tea.Cmd {
	req := v.dispatch.Prospects(v.rows, v.criteria)
	v.pending = true
	return runFilter(v.state.App, req)
}

func (v *prospectListView) setCriteria(c filter.ProspectCriteria) tea.Cmd {
	if c.Equal(v.criteria) {
		return nil
	}
	v.criteria = c
	v.window.Reset()
	v.list.Reset()
	v.syncList()
	return v.submit()
}

func (v *prospectListView) syncList() {
	v.list.SetCount(v.window.Len(len(v.filtered)))
}

func (v *prospectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prospectsLoadedMsg:
		if msg.target != v {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.rows
		v.options = filter.ProspectOptions(v.rows, v.state.App.Settings.OptionSample)
		return v, v.submit()

	case filterResultMsg:
		if msg.resp.Kind != domain.KindProspects || !v.dispatch.Accept(msg.resp) {
			return v, nil
		}
		v.pending = false
		if msg.resp.Err != nil {
			v.filterErr = msg.resp.Err
			return v, nil
		}
		v.filterErr = nil
		v.filtered = msg.resp.Prospects
		v.syncList()
		return v, nil

	case criteriaAppliedMsg:
		if msg.target != v || msg.prospect == nil {
			return v, nil
		}
		v.search = domain.StrOrEmpty(msg.prospect.Search)
		return v, v.setCriteria(*msg.prospect)

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case listActionMsg:
		return v, v.handleAction(msg)

	case tea.WindowSizeMsg:
		v.list.SetHeight(listHeight(v.state))
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			if !editSearch(&v.search, &v.searching, msg) {
				return v, nil
			}
			c := v.criteria
			c.Search = domain.StrPtr(v.search)
			return v, v.setCriteria(c)
		}
		return v, v.updateNormal(msg)
	}
	return v, nil
}

func (v *prospectListView) handleAction(msg listActionMsg) tea.Cmd {
	switch msg.action {
	case "search":
		v.search = msg.arg
		c := v.criteria
		c.Search = domain.StrPtr(v.search)
		return v.setCriteria(c)
	case "clear":
		v.search = ""
		return v.setCriteria(filter.ProspectCriteria{})
	case "more":
		v.window.LoadMore(len(v.filtered))
		v.syncList()
	case "filter":
		return v.openFilterForm()
	}
	return nil
}

func (v *prospectListView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		v.searching = true
		return nil
	case "m":
		v.window.LoadMore(len(v.filtered))
		v.syncList()
		return nil
	case "c":
		v.search = ""
		return v.setCriteria(filter.ProspectCriteria{})
	case "f":
		return v.openFilterForm()
	case "r":
		v.loading = true
		return v.load()
	}
	v.list.Update(msg)
	return nil
}

func (v *prospectListView) openFilterForm() tea.Cmd {
	vals := prospectValuesFrom(v.criteria)
	form := prospectFilterForm(v.options, vals)
	return startWizardCmd(v.state, "Filter", form, func() tea.Cmd {
		c := vals.criteria()
		return applyCriteriaCmd(criteriaAppliedMsg{target: v, prospect: &c})
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *prospectListView) renderRow(i int) string {
	p := v.filtered[i]

	cursor := "  "
	name := formatter.StyleFg.Render(formatter.PadRight(p.ClientName, 22))
	if i == v.list.Cursor() {
		cursor = formatter.StyleGreen.Render("▸ ")
		name = formatter.StyleBold.Render(formatter.PadRight(p.ClientName, 22))
	}
	kind := formatter.StyleBlue.Render(formatter.PadRight("Business", 10))
	if p.IsIndividual {
		kind = formatter.StylePurple.Render(formatter.PadRight("Individual", 10))
	}
	line := fmt.Sprintf("%s%s %s %s %s %s %s %12s",
		cursor,
		name,
		formatter.PadRight(domain.StrOrEmpty(p.BusinessName), 18),
		kind,
		formatter.PadRight(p.Service, 14),
		formatter.PadRight(p.Partner, 12),
		formatter.PadRight(p.ReferredByOrSentinel(), 14),
		formatter.Money(p.ProjectedRevenue),
	)
	if v.state.RowHeight() < 2 {
		return line
	}
	detail := "    added " + formatter.RelativeDateFrom(p.CreatedAt, v.state.App.now())
	return line + "\n" + formatter.Dim(detail)
}

func (v *prospectListView) View() string {
	if v.loading && v.rows == nil {
		return "\n  " + formatter.Dim("Loading prospects...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	if v.searching {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n")
	} else {
		b.WriteString("  " + describeProspectCriteria(v.criteria) + "\n")
	}
	b.WriteString("  " + formatter.StyleHeader.Render(fmt.Sprintf("%-22s %-18s %-10s %-14s %-12s %-14s %12s",
		"CLIENT", "BUSINESS", "TYPE", "SERVICE", "PARTNER", "REFERRED BY", "REVENUE")) + "\n")

	if len(v.filtered) == 0 && !v.pending {
		b.WriteString("  " + formatter.Dim("No prospects match.") + "\n")
	} else {
		b.WriteString(v.list.render() + "\n")
	}

	b.WriteString(listFooter(v.window, len(v.filtered), len(v.rows), v.pending, v.filterErr, ""))
	return b.String()
}

func describeProspectCriteria(c filter.ProspectCriteria) string {
	if c.IsZero() {
		return formatter.Dim("No filters")
	}
	var parts []string
	add := func(name string, val *string) {
		if val != nil && *val != "" {
			parts = append(parts, name+"="+*val)
		}
	}
	add("search", c.Search)
	add("service", c.Service)
	add("partner", c.Partner)
	add("referred-by", c.ReferredBy)
	if c.IndividualOnly != nil {
		if *c.IndividualOnly {
			parts = append(parts, "individuals")
		} else {
			parts = append(parts, "businesses")
		}
	}
	if c.MinRevenue != nil {
		parts = append(parts, "revenue≥"+formatter.Money(*c.MinRevenue))
	}
	return formatter.StyleBlue.Render("Filters: ") + strings.Join(parts, " · ")
}

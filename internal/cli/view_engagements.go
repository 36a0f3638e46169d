package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// engagementsLoadedMsg carries the full engagement set for one view.
type engagementsLoadedMsg struct {
	target *engagementListView
	rows   []*domain.Engagement
	err    error
}

// hoursLoggedMsg reports a LogHours result. Every engagement view patches
// the row; only source shows the notice.
type hoursLoggedMsg struct {
	source View
	row    *domain.Engagement
	hours  float64
	err    error
}

// listChromeLines is the filter line, the column header and the footer.
const listChromeLines = 3

// engagementListView is the "All Clients" table: rows are filtered by the
// worker, capped by a paging window and drawn through a virtual list.
type engagementListView struct {
	state    *SharedState
	dispatch *worker.Dispatcher

	rows     []*domain.Engagement
	filtered []*domain.Engagement
	criteria filter.EngagementCriteria
	options  filter.EngagementOptionSet

	window *paging.Window
	list   virtualList

	loading   bool
	pending   bool
	err       error
	filterErr error
	notice    string

	searching bool
	search    string
}

func newEngagementListView(state *SharedState) *engagementListView {
	s := state.App.Settings
	v := &engagementListView{
		state:    state,
		dispatch: worker.NewDispatcher(),
		window:   paging.NewWindow(s.Batch, s.Step),
		loading:  true,
	}
	v.list = newVirtualList(state.RowHeight(), listHeight(state), v.renderRow)
	return v
}

func listHeight(state *SharedState) int {
	return max(state.ContentHeight()-listChromeLines, 1)
}

func (v *engagementListView) ID() ViewID          { return ViewEngagements }
func (v *engagementListView) Title() string       { return "All Clients" }
func (v *engagementListView) CapturesInput() bool { return v.searching }

func (v *engagementListView) ShortHelp() []key.Binding {
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
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "log hours")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	}
}

func (v *engagementListView) Init() tea.Cmd {
	return v.load()
}

func (v *engagementListView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		rows, err := app.Engagements.List(context.Background())
		return engagementsLoadedMsg{target: v, rows: rows, err: err}
	}
}

// submit asks for a filter pass over the loaded rows with the current
// criteria. Only the newest submission's result is applied.
func (v *engagementListView) submit() tea.Cmd {
	app := v.state.App
	req := v.dispatch.Engagements(v.rows, v.criteria, app.now())
	v.pending = true
	return runFilter(app, req)
}

// setCriteria swaps the criteria snapshot. Any change resets the window to
// one batch and scrolls back to the top.
func (v *engagementListView) setCriteria(c filter.EngagementCriteria) tea.Cmd {
	if c.Equal(v.criteria) {
		return nil
	}
	v.criteria = c
	v.window.Reset()
	v.list.Reset()
	v.syncList()
	return v.submit()
}

func (v *engagementListView) syncList() {
	v.list.SetCount(v.window.Len(len(v.filtered)))
}

func (v *engagementListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engagementsLoadedMsg:
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
		v.options = filter.EngagementOptions(v.rows, v.state.App.Settings.OptionSample)
		return v, v.submit()

	case filterResultMsg:
		if msg.resp.Kind != domain.KindEngagements || !v.dispatch.Accept(msg.resp) {
			return v, nil
		}
		v.pending = false
		if msg.resp.Err != nil {
			v.filterErr = msg.resp.Err
			return v, nil
		}
		v.filterErr = nil
		v.filtered = msg.resp.Engagements
		v.syncList()
		return v, nil

	case criteriaAppliedMsg:
		if msg.target != v || msg.engagement == nil {
			return v, nil
		}
		v.search = domain.StrOrEmpty(msg.engagement.Search)
		return v, v.setCriteria(*msg.engagement)

	case hoursLoggedMsg:
		if msg.err != nil {
			if msg.source == v {
				v.notice = formatter.StyleRed.Render("Log hours failed: " + msg.err.Error())
			}
			return v, nil
		}
		// rows may still be shared with an in-flight filter request.
		v.rows = replaceEngagement(v.rows, msg.row)
		v.filtered = replaceEngagement(v.filtered, msg.row)
		if msg.source == v {
			v.notice = formatter.StyleGreen.Render(fmt.Sprintf("Logged %s on %s (total %s)",
				formatter.Hours(msg.hours), msg.row.ClientName, formatter.Hours(msg.row.LoggedHours)))
		}
		return v, nil

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
			return v, v.updateSearch(msg)
		}
		return v, v.updateNormal(msg)
	}
	return v, nil
}

func (v *engagementListView) handleAction(msg listActionMsg) tea.Cmd {
	switch msg.action {
	case "search":
		v.search = msg.arg
		c := v.criteria
		c.Search = domain.StrPtr(v.search)
		return v.setCriteria(c)
	case "clear":
		v.search = ""
		return v.setCriteria(filter.EngagementCriteria{})
	case "more":
		v.loadMore()
	case "filter":
		return v.openFilterForm()
	}
	return nil
}

func (v *engagementListView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	v.notice = ""
	switch msg.String() {
	case "/":
		v.searching = true
		return nil
	case "m":
		v.loadMore()
		return nil
	case "c":
		v.search = ""
		return v.setCriteria(filter.EngagementCriteria{})
	case "f":
		return v.openFilterForm()
	case "h":
		return v.openLogHours()
	case "r":
		v.loading = true
		return v.load()
	}
	v.list.Update(msg)
	return nil
}

func (v *engagementListView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	if !editSearch(&v.search, &v.searching, msg) {
		return nil
	}
	c := v.criteria
	c.Search = domain.StrPtr(v.search)
	return v.setCriteria(c)
}

// editSearch applies one key to a live search box and reports whether the
// text changed. Esc clears and closes the box; enter only closes it.
func editSearch(search *string, searching *bool, msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		*searching = false
		*search = ""
	case tea.KeyEnter:
		*searching = false
		return false
	case tea.KeyBackspace:
		r := []rune(*search)
		if len(r) == 0 {
			return false
		}
		*search = string(r[:len(r)-1])
	case tea.KeySpace:
		*search += " "
	case tea.KeyRunes:
		*search += string(msg.Runes)
	default:
		return false
	}
	return true
}

// loadMore grows the window by one step. Scrolling alone never does.
func (v *engagementListView) loadMore() {
	v.window.LoadMore(len(v.filtered))
	v.syncList()
}

func (v *engagementListView) openFilterForm() tea.Cmd {
	vals := engagementValuesFrom(v.criteria)
	form := engagementFilterForm(v.options, vals)
	return startWizardCmd(v.state, "Filter", form, func() tea.Cmd {
		c := vals.criteria()
		return applyCriteriaCmd(criteriaAppliedMsg{target: v, engagement: &c})
	})
}

func (v *engagementListView) openLogHours() tea.Cmd {
	row := v.selected()
	if row == nil {
		return nil
	}
	hours := new(string)
	form := wizardInputHours(row.ClientName, hours)
	app := v.state.App
	return startWizardCmd(v.state, "Log Hours", form, func() tea.Cmd {
		h, err := strconv.ParseFloat(*hours, 64)
		if err != nil {
			return nil
		}
		return logHoursCmd(app, v, row.ID, h)
	})
}

func logHoursCmd(app *App, source View, id string, hours float64) tea.Cmd {
	return func() tea.Msg {
		row, err := app.Engagements.LogHours(context.Background(), id, hours)
		return hoursLoggedMsg{source: source, row: row, hours: hours, err: err}
	}
}

func (v *engagementListView) selected() *domain.Engagement {
	i := v.list.Cursor()
	if i < 0 || i >= v.window.Len(len(v.filtered)) {
		return nil
	}
	return v.filtered[i]
}

func replaceEngagement(rows []*domain.Engagement, updated *domain.Engagement) []*domain.Engagement {
	for i, r := range rows {
		if r.ID == updated.ID {
			out := slices.Clone(rows)
			out[i] = updated
			return out
		}
	}
	return rows
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *engagementListView) renderRow(i int) string {
	e := v.filtered[i]
	now := v.state.App.now()

	cursor := "  "
	name := formatter.StyleFg.Render(formatter.PadRight(e.ClientName, 22))
	if i == v.list.Cursor() {
		cursor = formatter.StyleGreen.Render("▸ ")
		name = formatter.StyleBold.Render(formatter.PadRight(e.ClientName, 22))
	}
	line := fmt.Sprintf("%s%s %s %s %s %s %s",
		cursor,
		name,
		formatter.PadRight(domain.StrOrEmpty(e.BusinessName), 18),
		formatter.PadRight(e.Service, 14),
		formatter.PadRight(e.Partner, 12),
		formatter.PadVisible(formatter.StatusPill(e.Status, v.state.App.Settings.Catalog.Statuses), 22),
		formatter.DueDate(e.DueDate, now),
	)
	if v.state.RowHeight() < 2 {
		return line
	}
	detail := fmt.Sprintf("    referral %s · %d docs · %s logged",
		e.ReferralOrSentinel(), e.DocumentCount, formatter.Hours(e.LoggedHours))
	return line + "\n" + formatter.Dim(detail)
}

func (v *engagementListView) View() string {
	if v.loading && v.rows == nil {
		return "\n  " + formatter.Dim("Loading engagements...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	if v.searching {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█\n")
	} else {
		b.WriteString("  " + describeEngagementCriteria(v.criteria) + "\n")
	}
	b.WriteString("  " + formatter.StyleHeader.Render(fmt.Sprintf("%-22s %-18s %-14s %-12s %-22s %s",
		"CLIENT", "BUSINESS", "SERVICE", "PARTNER", "STATUS", "DUE")) + "\n")

	if len(v.filtered) == 0 && !v.pending {
		b.WriteString("  " + formatter.Dim("No engagements match.") + "\n")
	} else {
		b.WriteString(v.list.render() + "\n")
	}

	b.WriteString(listFooter(v.window, len(v.filtered), len(v.rows), v.pending, v.filterErr, v.notice))
	return b.String()
}

func describeEngagementCriteria(c filter.EngagementCriteria) string {
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
	add("status", c.Status)
	add("referral", c.Referral)
	if c.From != nil {
		parts = append(parts, "from="+c.From.Format(dateLayout))
	}
	if c.To != nil {
		parts = append(parts, "to="+c.To.Format(dateLayout))
	}
	if c.LateOnly {
		parts = append(parts, "late")
	}
	return formatter.StyleBlue.Render("Filters: ") + strings.Join(parts, " · ")
}

// listFooter reports how much of the filtered set is shown, the load-more
// hint, and the state of the latest filter request.
func listFooter(w *paging.Window, matched, total int, pending bool, filterErr error, notice string) string {
	line := fmt.Sprintf("Showing %d of %d", w.Len(matched), matched)
	if matched != total {
		line += fmt.Sprintf(" (%d total)", total)
	}
	if w.HasMore(matched) {
		line += " · press m for more"
	}
	if pending {
		line += " · filtering…"
	}
	out := "  " + formatter.Dim(line)
	if filterErr != nil {
		out += "  " + formatter.StyleRed.Render("Filter failed: "+filterErr.Error())
	}
	if notice != "" {
		out += "  " + notice
	}
	return out
}

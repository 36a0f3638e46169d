package cli

import (
	"testing"

	"github.com/alexanderramin/firmdesk/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state, command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init,
// which loads the dashboard synchronously from the in-memory database.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newSizedTestDriver(t, app, 120, 40)
}

func newSizedTestDriver(t *testing.T, app *App, w, h int) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(w, h))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// Command focuses the command bar, types input and presses Enter, then
// blurs the bar if the command left it focused.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack, or nil.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.Title()
	}
	return ""
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Engagements returns the engagement view on top of the stack, or nil.
func (d *TestDriver) Engagements() *engagementListView {
	m := d.appModel()
	v, _ := m.activeView().(*engagementListView)
	return v
}

// Prospects returns the prospect view on top of the stack, or nil.
func (d *TestDriver) Prospects() *prospectListView {
	m := d.appModel()
	v, _ := m.activeView().(*prospectListView)
	return v
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports a quit from q/Ctrl+C or a quit command.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

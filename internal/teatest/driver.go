// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd on the test
// goroutine's behalf, feeding the resulting messages back in until nothing
// is left. Cmds that do not return within a short timeout (cursor blinks,
// tickers) are dropped, so a drained model is quiescent.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many messages a single Send may chain.
const MaxDrainDepth = 100

// cmdTimeout separates real work (database reads, filter passes) from
// timer-driven Cmds. Blink timers wait ~530ms.
const cmdTimeout = 50 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg has been produced.
	Quitting bool

	// Seen counts delivered messages by Go type name, for assertions about
	// what a key press triggered.
	Seen map[string]int
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for model. Call DrainInit to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, Seen: make(map[string]int)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers an initial WindowSizeMsg before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// DrainInit runs the model's Init command to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains everything it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// Resize delivers a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// ── keys ─────────────────────────────────────────────────────────────────────

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"ctrl+c":    tea.KeyCtrlC,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"backspace": tea.KeyBackspace,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
}

// Key builds the KeyMsg for a key name such as "enter", "pgdown" or a
// single character.
func Key(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// PressKeys sends each named key in order.
func (d *Driver) PressKeys(names ...string) {
	d.T.Helper()
	for _, n := range names {
		d.Send(Key(n))
	}
}

// PressKey sends a single character.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.PressKeys("enter") }
func (d *Driver) PressEsc()   { d.T.Helper(); d.PressKeys("esc") }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.PressKeys("ctrl+c") }
func (d *Driver) PressUp()    { d.T.Helper(); d.PressKeys("up") }
func (d *Driver) PressDown()  { d.T.Helper(); d.PressKeys("down") }

// Type sends s one character at a time. Spaces are sent as KeySpace.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		if r == ' ' {
			d.PressKeys("space")
			continue
		}
		d.PressKey(r)
	}
}

// ── inspection ───────────────────────────────────────────────────────────────

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains reports whether the rendered output contains every substring.
func (d *Driver) ViewContains(subs ...string) bool {
	v := d.View()
	for _, s := range subs {
		if !strings.Contains(v, s) {
			return false
		}
	}
	return true
}

// SeenCount returns how many messages of the given type name (as printed
// by %T, e.g. "cli.filterResultMsg") were delivered.
func (d *Driver) SeenCount(typeName string) int {
	return d.Seen[typeName]
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	d.Seen[fmt.Sprintf("%T", msg)]++
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, depth+1)
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Seen[fmt.Sprintf("%T", msg)]++
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}
	if isTimerMsg(msg) {
		return
	}
	d.deliver(msg, depth)
}

// runWithTimeout returns nil when cmd blocks past cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isTimerMsg detects blink messages from bubbles/cursor, whose follow-up
// Cmds wait on timers.
func isTimerMsg(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}

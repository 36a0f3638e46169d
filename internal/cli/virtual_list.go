package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// virtualList lays out count fixed-height rows in a viewport and renders
// only the rows that intersect it. Offsets are measured in lines, so a row
// can be partly scrolled out at the top.
type virtualList struct {
	rowHeight int
	height    int
	offset    int
	count     int
	cursor    int

	// row renders row i. It is only called for visible indices.
	row func(i int) string
}

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

var listKeys = listKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
}

func newVirtualList(rowHeight, height int, row func(i int) string) virtualList {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if height < 1 {
		height = 1
	}
	return virtualList{rowHeight: rowHeight, height: height, row: row}
}

// SetCount changes the number of rows, keeping cursor and offset in range.
func (l *virtualList) SetCount(n int) {
	l.count = max(n, 0)
	l.cursor = min(l.cursor, max(l.count-1, 0))
	l.follow()
}

// SetHeight resizes the viewport.
func (l *virtualList) SetHeight(h int) {
	l.height = max(h, 1)
	l.follow()
}

// Reset scrolls back to the first row.
func (l *virtualList) Reset() {
	l.cursor = 0
	l.offset = 0
}

func (l *virtualList) Cursor() int { return l.cursor }

// visibleRange returns the half-open index range [first, last) of rows
// whose lines intersect the viewport.
func (l *virtualList) visibleRange() (int, int) {
	if l.count == 0 {
		return 0, 0
	}
	first := l.offset / l.rowHeight
	last := (l.offset + l.height + l.rowHeight - 1) / l.rowHeight
	return min(first, l.count), min(last, l.count)
}

// rowAt renders row i, or reports false when i is out of range.
func (l *virtualList) rowAt(i int) (string, bool) {
	if i < 0 || i >= l.count || l.row == nil {
		return "", false
	}
	return l.row(i), true
}

// render assembles the viewport: exactly the visible rows, each fitted to
// rowHeight lines, clipped to the viewport.
func (l *virtualList) render() string {
	first, last := l.visibleRange()
	if first == last {
		return ""
	}
	lines := make([]string, 0, (last-first)*l.rowHeight)
	for i := first; i < last; i++ {
		s, ok := l.rowAt(i)
		if !ok {
			continue
		}
		lines = append(lines, fitLines(s, l.rowHeight)...)
	}
	skip := l.offset - first*l.rowHeight
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]
	if len(lines) > l.height {
		lines = lines[:l.height]
	}
	return strings.Join(lines, "\n")
}

func fitLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// Update moves the cursor for navigation keys and reports whether the key
// was handled. Scrolling never asks for more rows.
func (l *virtualList) Update(msg tea.KeyMsg) bool {
	page := max(l.height/l.rowHeight, 1)
	switch {
	case key.Matches(msg, listKeys.Up):
		l.moveTo(l.cursor - 1)
	case key.Matches(msg, listKeys.Down):
		l.moveTo(l.cursor + 1)
	case key.Matches(msg, listKeys.PageUp):
		l.moveTo(l.cursor - page)
	case key.Matches(msg, listKeys.PageDown):
		l.moveTo(l.cursor + page)
	case key.Matches(msg, listKeys.Home):
		l.moveTo(0)
	case key.Matches(msg, listKeys.End):
		l.moveTo(l.count - 1)
	default:
		return false
	}
	return true
}

func (l *virtualList) moveTo(i int) {
	if l.count == 0 {
		l.cursor = 0
		return
	}
	l.cursor = max(0, min(i, l.count-1))
	l.follow()
}

// follow scrolls just enough to keep the cursor row fully visible.
func (l *virtualList) follow() {
	top := l.cursor * l.rowHeight
	bottom := top + l.rowHeight
	if top < l.offset {
		l.offset = top
	}
	if bottom > l.offset+l.height {
		l.offset = bottom - l.height
	}
	if l.rowHeight >= l.height {
		l.offset = top
	}
	maxOffset := max(l.count*l.rowHeight-l.height, 0)
	l.offset = max(0, min(l.offset, maxOffset))
}

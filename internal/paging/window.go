// Package paging tracks how many filtered rows are materialized for display.
package paging

const (
	DefaultBatch = 100
	DefaultStep  = 100
)

// Window is a growable cap on the number of visible rows. The zero value is
// not usable; construct with NewWindow.
type Window struct {
	batch   int
	step    int
	visible int
}

// NewWindow returns a window showing batch rows and growing by step.
// Non-positive values fall back to the defaults.
func NewWindow(batch, step int) *Window {
	if batch <= 0 {
		batch = DefaultBatch
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Window{batch: batch, step: step, visible: batch}
}

// Visible returns the current cap. It may exceed the number of rows.
func (w *Window) Visible() int { return w.visible }

// Batch returns the initial cap restored by Reset.
func (w *Window) Batch() int { return w.batch }

// Len returns how many of total rows are shown.
func (w *Window) Len(total int) int {
	return min(w.visible, total)
}

// HasMore reports whether rows beyond the cap exist.
func (w *Window) HasMore(total int) bool {
	return w.visible < total
}

// LoadMore grows the cap by one step, never past total. It is a no-op once
// the cap already covers every row.
func (w *Window) LoadMore(total int) {
	if w.visible >= total {
		return
	}
	w.visible = min(w.visible+w.step, total)
}

// Reset restores the initial batch size. Called whenever filters change,
// regardless of how large or small the new result is.
func (w *Window) Reset() {
	w.visible = w.batch
}

// Page returns the visible prefix of rows.
func Page[T any](rows []T, w *Window) []T {
	return rows[:w.Len(len(rows))]
}

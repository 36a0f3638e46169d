package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// RowHeight is the number of terminal lines each table row occupies.
func (s *SharedState) RowHeight() int {
	if s.App == nil || s.App.Settings.RowHeight < 1 {
		return 1
	}
	return s.App.Settings.RowHeight
}

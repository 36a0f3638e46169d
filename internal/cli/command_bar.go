package cli

import (
	"strings"

	"github.com/alexanderramin/firmdesk/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
// History lives for the session only.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

// commandNames lists the command-bar commands, aliases included, for
// suggestions.
var commandNames = []string{
	"clear", "clients", "dashboard", "engagements", "exit", "filter", "help",
	"home", "leads", "more", "prospects", "quit", "reload", "search",
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		input: ti,
		state: state,
	}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len("firmdesk > ") - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("firmdesk") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

// executeCommand dispatches a text command. Commands either navigate, act
// on the active list view, or print output.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch cmd {
	case "engagements", "clients":
		c.Blur()
		return switchList(newEngagementListView(c.state))
	case "prospects", "leads":
		c.Blur()
		return switchList(newProspectListView(c.state))
	case "dashboard", "home":
		c.Blur()
		return func() tea.Msg { return homeMsg{} }
	case "search":
		c.Blur()
		return func() tea.Msg { return listActionMsg{action: "search", arg: arg} }
	case "clear", "more", "filter":
		c.Blur()
		return func() tea.Msg { return listActionMsg{action: cmd} }
	case "reload":
		c.Blur()
		return refreshCmd()
	case "help":
		return outputCmd(commandHelp())
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	}
	return outputCmd(formatter.StyleRed.Render("Unknown command: "+cmd) + "\n" + formatter.Dim("Type help for the command list."))
}

// switchListMsg opens a list view. The app model decides between push and
// replace since it knows the stack.
type switchListMsg struct {
	view View
}

func switchList(v View) tea.Cmd {
	return func() tea.Msg { return switchListMsg{view: v} }
}

func commandHelp() string {
	rows := [][]string{
		{"engagements, clients", "All Clients table"},
		{"prospects, leads", "New Clients table"},
		{"dashboard, home", "Summary of both tables"},
		{"search <text>", "Filter the active table by name"},
		{"filter", "Open the filter form"},
		{"more", "Show the next batch of rows"},
		{"clear", "Remove all filters"},
		{"reload", "Reload rows from the database"},
		{"quit, exit", "Leave firmdesk"},
	}
	return "\n" + formatter.Header("Commands") + "\n" + formatter.RenderTable([]string{"COMMAND", "DESCRIPTION"}, rows)
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" || strings.Contains(text, " ") {
		c.input.SetSuggestions(nil)
		return
	}
	c.input.SetSuggestions(filterSuggestions(commandNames, text))
}

func filterSuggestions(candidates []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, s := range candidates {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

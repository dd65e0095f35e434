package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/duelcore/engine"
	"github.com/nathoo/duelcore/engine/save"
	"github.com/nathoo/duelcore/history"
	"github.com/nathoo/duelcore/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Options configures a new Model.
type Options struct {
	Title    string
	Target   string
	Strategy string
	SaveDir  string
}

// Model is the Bubble Tea model for the replay inspector.
type Model struct {
	engine  *engine.Engine
	title   string
	pending []types.TimeSlice
	applied int

	target   string
	strategy string
	autoPlan bool

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// outputMsg carries lines into the Update loop.
type outputMsg struct {
	input string   // echoed operator input (empty for intro)
	lines []string // output lines
}

// New creates a model that replays pending into eng.
func New(eng *engine.Engine, pending []types.TimeSlice, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 512
	ti.PromptStyle = styleInputPrompt

	saveDir := opts.SaveDir
	if saveDir == "" {
		home, _ := os.UserHomeDir()
		saveDir = filepath.Join(home, ".duelcore", "saves")
	}
	return Model{
		engine:   eng,
		title:    opts.Title,
		pending:  pending,
		target:   opts.Target,
		strategy: opts.Strategy,
		autoPlan: opts.Target != "",
		input:    ti,
		history:  NewHistory(100),
		saveDir:  saveDir,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, pending []types.TimeSlice, opts Options) error {
	m := New(eng, pending, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	title := m.title
	if title == "" {
		title = "duelcore replay"
	}
	n := len(m.pending)
	return func() tea.Msg {
		return outputMsg{lines: []string{
			title,
			fmt.Sprintf("[%d slice(s) queued. Ctrl+N steps, Ctrl+P plans, /help for more.]", n),
		}}
	}
}

// Update handles messages (key presses, window resize, output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "ctrl+n":
			m = m.appendOutput(outputMsg{lines: m.step(1)})
			return m, nil

		case "ctrl+p":
			m = m.appendOutput(outputMsg{lines: m.planLines(m.target, m.strategy)})
			return m, nil

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(outputMsg{input: input, lines: []string{"[Nothing to repeat.]"}})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(outputMsg{input: input, lines: output})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// A typed observation, applied at the current time.
	o, err := history.ParseObservation(input)
	if err != nil {
		m = m.appendOutput(outputMsg{input: input, lines: []string{fmt.Sprintf("[Bad observation: %v]", err)}})
		return m, nil
	}
	tl := m.engine.Timeline
	ts := types.TimeSlice{Time: tl.Time, Me: tl.Me, Observations: []types.Observation{o}}
	m = m.appendOutput(outputMsg{input: input, lines: m.apply(ts)})
	return m, nil
}

// step applies up to n queued slices and returns what they printed.
func (m *Model) step(n int) []string {
	if len(m.pending) == 0 {
		return []string{"[No slices queued.]"}
	}
	var out []string
	for i := 0; i < n && len(m.pending) > 0; i++ {
		ts := m.pending[0]
		m.pending = m.pending[1:]
		m.applied++
		out = append(out, fmt.Sprintf("-- t=%s (slice %d/%d)", seconds(ts.Time), m.applied, m.applied+len(m.pending)))
		out = append(out, m.apply(ts)...)
	}
	return out
}

// apply steps one slice and, with auto-plan on, plans the response.
func (m *Model) apply(ts types.TimeSlice) []string {
	out := append([]string{}, ts.Lines...)
	if m.trace {
		out = append(out, formatTrace(ts)...)
	}
	for _, err := range m.engine.Step(&ts) {
		out = append(out, fmt.Sprintf("[skipped: %v]", err))
	}
	if m.autoPlan && m.target != "" {
		out = append(out, m.planLines(m.target, m.strategy)...)
	}
	return out
}

func (m *Model) planLines(target, tag string) []string {
	if target == "" {
		return []string{"[No target. Use /target <name>.]"}
	}
	plan := m.engine.Plan(target, tag)
	if plan.Empty() {
		return []string{"[Nothing to do.]"}
	}
	out := []string{">> " + plan.String()}
	if m.trace {
		for _, err := range plan.Skipped {
			out = append(out, fmt.Sprintf("[trace] skipped %v", err))
		}
	}
	return out
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, kind: kindInput})
	}

	for _, line := range msg.lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
	}

	// Blank line separator between entries.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, renderLineKind(wordWrap(rl.text, width), rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"[Goodbye.]"}, true

	case "/next":
		n := 1
		if arg != "" {
			if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 {
				return []string{fmt.Sprintf("[Bad count: %s]", arg)}, false
			}
		}
		return m.step(n), false

	case "/run":
		return m.step(len(m.pending)), false

	case "/plan":
		target, tag := m.target, m.strategy
		if arg != "" {
			target = arg
		}
		if len(parts) > 2 {
			tag = parts[2]
		}
		return m.planLines(target, tag), false

	case "/autoplan":
		m.autoPlan = !m.autoPlan
		if m.autoPlan {
			return []string{"[Auto-plan enabled.]"}, false
		}
		return []string{"[Auto-plan disabled.]"}, false

	case "/target":
		if arg == "" {
			return []string{fmt.Sprintf("[Target: %s]", m.target)}, false
		}
		m.target = arg
		return []string{fmt.Sprintf("[Target set to %s.]", arg)}, false

	case "/strategy":
		if arg == "" {
			return []string{fmt.Sprintf("[Strategy: %s (known: %s)]", m.strategyName(),
				strings.Join(m.engine.Registry.Tags(), ", "))}, false
		}
		m.strategy = arg
		return []string{fmt.Sprintf("[Strategy set to %s.]", arg)}, false

	case "/agent":
		return m.cmdAgent(arg), false

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"[Trace output enabled.]"}, false
		}
		return []string{"[Trace output disabled.]"}, false

	default:
		return []string{fmt.Sprintf("[Unknown command: %s. Type /help for available commands.]", cmd)}, false
	}
}

func (m *Model) cmdAgent(name string) []string {
	if name == "" {
		name = m.target
	}
	tl := m.engine.Timeline
	if name == "" || !tl.Known(name) {
		return []string{fmt.Sprintf("[Unknown agent: %q]", name)}
	}
	out := []string{name}
	for _, line := range engine.Describe(tl.Primary(name)) {
		out = append(out, "  "+line)
	}
	return out
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	rng := m.engine.RNG
	data, err := save.Save(m.engine.Timeline, rng.Seed(), rng.Position())
	if err != nil {
		return []string{fmt.Sprintf("[Save failed: %v]", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("[Save failed: %v]", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("[Save failed: %v]", err)}
	}

	return []string{fmt.Sprintf("[Snapshot saved to %s.]", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("[Load failed: %v]", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("[Load failed: %v]", err)}
	}

	if err := save.ApplySave(m.engine.Timeline, sd); err != nil {
		return []string{fmt.Sprintf("[Load failed: %v]", err)}
	}
	m.engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	return []string{fmt.Sprintf("[Snapshot loaded from %s (t=%s).]", name, seconds(sd.Time))}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /next [n]                 Apply the next n queued slices (Ctrl+N)",
		"  /run                      Apply every queued slice",
		"  /plan [target] [strategy] Show the planned command (Ctrl+P)",
		"  /autoplan                 Toggle planning after every slice",
		"  /target [name]            Show or set the target",
		"  /strategy [tag]           Show or set the strategy",
		"  /agent [name]             Show an agent's most plausible state",
		"  /save [name]              Save a snapshot (default: quicksave)",
		"  /load [name]              Load a snapshot (default: quicksave)",
		"  /state                    Show the clock and known agents",
		"  /trace                    Toggle observation trace output",
		"  /help                     Show this help",
		"  /quit                     Exit",
		"",
		"Observations are typed as YAML mappings, e.g.",
		"  {kind: afflicted, who: foe, affliction: asthma}",
		"  again (g) repeats the last line.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for input history",
	}
}

func (m *Model) cmdState() []string {
	tl := m.engine.Timeline
	output := []string{
		fmt.Sprintf("Time: %s", seconds(tl.Time)),
		fmt.Sprintf("Me: %s", tl.Me),
		fmt.Sprintf("Applied: %d, queued: %d", m.applied, len(m.pending)),
	}
	for _, name := range tl.Names() {
		output = append(output, fmt.Sprintf("Agent %s: %d branch(es), %d affliction(s)",
			name, len(tl.Branches(name)), tl.Primary(name).Flags.AfflictionCount()))
	}
	return output
}

func formatTrace(ts types.TimeSlice) []string {
	lines := []string{fmt.Sprintf("[trace] Observations: %d", len(ts.Observations))}
	for _, o := range ts.Observations {
		lines = append(lines, fmt.Sprintf("[trace]   %s %+v", o.Kind(), o))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// Package cli provides the line-oriented replay console: it steps queued
// time slices into the engine, accepts hand-typed observations, and prints
// plans and agent state on request.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/duelcore/engine"
	"github.com/nathoo/duelcore/engine/save"
	"github.com/nathoo/duelcore/history"
	"github.com/nathoo/duelcore/types"
)

// CLI handles terminal interaction with the operator.
type CLI struct {
	Engine *engine.Engine
	// Pending holds the slices not yet applied, in order.
	Pending []types.TimeSlice
	// Store and Session, when set, record every applied slice.
	Store   *history.Store
	Session string

	Target    string
	Strategy  string
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine with slices queued for replay.
func New(eng *engine.Engine, pending []types.TimeSlice) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".duelcore", "saves")
	return &CLI{
		Engine:  eng,
		Pending: pending,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the console loop: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printSystem(fmt.Sprintf("duelcore console, %d slice(s) queued. Type /help for commands.", len(c.Pending)))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.prompt())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last observation or shortcut.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		switch strings.ToLower(input) {
		case "n", "next":
			c.cmdNext("1")
		case "p", "plan":
			c.cmdPlan(nil)
		default:
			c.observe(input)
		}
	}
}

func (c *CLI) prompt() string {
	return fmt.Sprintf("[%s] > ", seconds(c.Engine.Timeline.Time))
}

// handleMeta dispatches meta-commands. Returns true if the console should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/next":
		c.cmdNext(arg)

	case "/run":
		c.cmdNext(strconv.Itoa(len(c.Pending)))

	case "/plan":
		c.cmdPlan(parts[1:])

	case "/lookahead":
		c.cmdLookahead()

	case "/target":
		if arg == "" {
			c.printSystem(fmt.Sprintf("Target: %s", c.Target))
			break
		}
		c.Target = arg
		c.printSystem(fmt.Sprintf("Target set to %s.", arg))

	case "/strategy":
		if arg == "" {
			c.printSystem(fmt.Sprintf("Strategy: %s (known: %s)", c.Strategy,
				strings.Join(c.Engine.Registry.Tags(), ", ")))
			break
		}
		c.Strategy = arg
		c.printSystem(fmt.Sprintf("Strategy set to %s.", arg))

	case "/agent":
		c.cmdAgent(arg)

	case "/branches":
		c.cmdBranches(arg)

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// observe applies one typed observation as its own slice at the current time.
func (c *CLI) observe(input string) {
	o, err := history.ParseObservation(input)
	if err != nil {
		c.printSystem(fmt.Sprintf("Bad observation: %v", err))
		return
	}
	tl := c.Engine.Timeline
	c.apply(types.TimeSlice{Time: tl.Time, Me: tl.Me, Observations: []types.Observation{o}})
}

func (c *CLI) cmdNext(arg string) {
	n := 1
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			c.printSystem(fmt.Sprintf("Bad count: %s", arg))
			return
		}
		n = v
	}
	if len(c.Pending) == 0 {
		c.printSystem("No slices queued.")
		return
	}
	for i := 0; i < n && len(c.Pending) > 0; i++ {
		ts := c.Pending[0]
		c.Pending = c.Pending[1:]
		c.apply(ts)
	}
}

// apply steps one slice, records it and prints what happened.
func (c *CLI) apply(ts types.TimeSlice) {
	for _, line := range ts.Lines {
		c.printLine(line)
	}
	if c.Trace {
		c.printTrace(ts)
	}
	for _, err := range c.Engine.Step(&ts) {
		c.printSystem(fmt.Sprintf("skipped: %v", err))
	}
	if c.Store != nil && c.Session != "" {
		if _, err := c.Store.Append(context.Background(), c.Session, ts); err != nil {
			c.printSystem(fmt.Sprintf("Record failed: %v", err))
		}
	}
}

func (c *CLI) cmdPlan(args []string) {
	target, tag := c.Target, c.Strategy
	if len(args) > 0 {
		target = args[0]
	}
	if len(args) > 1 {
		tag = args[1]
	}
	if target == "" {
		c.printSystem("No target. Use /target <name> or /plan <name>.")
		return
	}
	plan := c.Engine.Plan(target, tag)
	if plan.Empty() {
		c.printSystem("Nothing to do.")
	} else {
		c.printLine(plan.String())
	}
	if c.Trace {
		for _, err := range plan.Skipped {
			c.printSystem(fmt.Sprintf("[trace] skipped %v", err))
		}
	}
}

func (c *CLI) cmdLookahead() {
	if c.Target == "" {
		c.printSystem("No target. Use /target <name>.")
		return
	}
	tl, plan := c.Engine.Lookahead(c.Target, c.Strategy)
	c.printLine(plan.String())
	for _, line := range engine.Describe(tl.Primary(c.Target)) {
		c.printSystem("  " + line)
	}
}

func (c *CLI) cmdAgent(name string) {
	if name == "" {
		name = c.Target
	}
	tl := c.Engine.Timeline
	if name == "" || !tl.Known(name) {
		c.printSystem(fmt.Sprintf("Unknown agent: %q", name))
		return
	}
	c.printSystem(name)
	for _, line := range engine.Describe(tl.Primary(name)) {
		c.printSystem("  " + line)
	}
}

func (c *CLI) cmdBranches(name string) {
	if name == "" {
		name = c.Target
	}
	tl := c.Engine.Timeline
	if name == "" || !tl.Known(name) {
		c.printSystem(fmt.Sprintf("Unknown agent: %q", name))
		return
	}
	for i, b := range tl.Branches(name) {
		var guesses []string
		for _, f := range b.Guesses() {
			guesses = append(guesses, f.String())
		}
		c.printSystem(fmt.Sprintf("%d. %s strikes=%d guesses=[%s]",
			i+1, b.ID.String()[:8], b.Strikes, strings.Join(guesses, ", ")))
	}
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	rng := c.Engine.RNG
	data, err := save.Save(c.Engine.Timeline, rng.Seed(), rng.Position())
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Snapshot saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := save.ApplySave(c.Engine.Timeline, sd); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.Engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	c.printSystem(fmt.Sprintf("Snapshot loaded from %s (t=%s).", name, seconds(sd.Time)))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /next [n]                 Apply the next n queued slices (n, next)",
		"  /run                      Apply every queued slice",
		"  /plan [target] [strategy] Show the planned command (p, plan)",
		"  /lookahead                Plan, predict the outcome and show the target",
		"  /target [name]            Show or set the target",
		"  /strategy [tag]           Show or set the strategy",
		"  /agent [name]             Show an agent's most plausible state",
		"  /branches [name]          List an agent's hypotheses",
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	tl := c.Engine.Timeline
	c.printSystem(fmt.Sprintf("Time: %s", seconds(tl.Time)))
	c.printSystem(fmt.Sprintf("Me: %s", tl.Me))
	c.printSystem(fmt.Sprintf("Queued: %d", len(c.Pending)))
	for _, name := range tl.Names() {
		p := tl.Primary(name)
		c.printSystem(fmt.Sprintf("Agent %s: %d branch(es), %d affliction(s)",
			name, len(tl.Branches(name)), p.Flags.AfflictionCount()))
	}
}

func (c *CLI) printTrace(ts types.TimeSlice) {
	c.printSystem(fmt.Sprintf("[trace] t=%s observations: %d", seconds(ts.Time), len(ts.Observations)))
	for _, o := range ts.Observations {
		c.printSystem(fmt.Sprintf("[trace]   %s %+v", o.Kind(), o))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

func seconds(t types.Time) string {
	return fmt.Sprintf("%.2fs", float64(t)/float64(types.Second))
}

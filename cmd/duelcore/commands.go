package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/duelcore/cli"
	"github.com/nathoo/duelcore/engine"
	"github.com/nathoo/duelcore/engine/save"
	"github.com/nathoo/duelcore/history"
	"github.com/nathoo/duelcore/tui"
	"github.com/nathoo/duelcore/types"
)

// source is a fixture file or a stored session.
type source struct {
	session string
}

func (s *source) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.session, "session", "", "Replay a stored session instead of a fixture file")
}

// load returns the fixture named by args or by --session.
func (s *source) load(ctx context.Context, a *app, args []string) (*history.Fixture, error) {
	if s.session != "" {
		store, err := history.Open(ctx, a.cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Export(ctx, s.session)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a fixture file or --session is required")
	}
	return history.LoadFixture(args[0])
}

// replayed loads a fight and replays all of it into a new engine.
func (s *source) replayed(ctx context.Context, a *app, args []string) (*engine.Engine, *history.Fixture, []error, error) {
	f, err := s.load(ctx, a, args)
	if err != nil {
		return nil, nil, nil, err
	}
	eng, err := a.newEngine(f.Me, f.Seed)
	if err != nil {
		return nil, nil, nil, err
	}
	errs := history.Replay(eng, f.Slices)
	return eng, f, errs, nil
}

func newReplayCmd(a *app) *cobra.Command {
	var src source
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "replay [fixture.yaml]",
		Short: "Replay a fight and print every agent's reconstructed state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, f, errs, err := src.replayed(cmd.Context(), a, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				rng := eng.RNG
				data, err := save.Save(eng.Timeline, rng.Seed(), rng.Position())
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))
				return err
			}

			fmt.Fprintf(out, "Replayed %d slice(s) to t=%.2fs\n", len(f.Slices),
				float64(eng.Timeline.Time)/float64(types.Second))
			for _, err := range errs {
				fmt.Fprintf(out, "skipped: %v\n", err)
			}
			for _, name := range eng.Timeline.Names() {
				fmt.Fprintf(out, "\n%s (%d branch(es))\n", name, len(eng.Timeline.Branches(name)))
				for _, line := range engine.Describe(eng.Timeline.Primary(name)) {
					fmt.Fprintf(out, "  %s\n", line)
				}
			}
			return nil
		},
	}
	src.flags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON snapshot instead")
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	var src source
	var target, strategy string
	var lookahead, explain bool
	cmd := &cobra.Command{
		Use:   "plan [fixture.yaml]",
		Short: "Replay a fight and print the next command against a target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				return fmt.Errorf("--target is required")
			}
			eng, _, _, err := src.replayed(cmd.Context(), a, args)
			if err != nil {
				return err
			}
			if strategy == "" {
				strategy = a.cfg.Strategy
			}
			out := cmd.OutOrStdout()

			if lookahead {
				tl, plan := eng.Lookahead(target, strategy)
				fmt.Fprintln(out, plan.String())
				fmt.Fprintf(out, "\npredicted %s:\n", target)
				for _, line := range engine.Describe(tl.Primary(target)) {
					fmt.Fprintf(out, "  %s\n", line)
				}
				return nil
			}

			plan := eng.Plan(target, strategy)
			fmt.Fprintln(out, plan.String())
			if explain {
				for _, err := range plan.Skipped {
					fmt.Fprintf(out, "skipped: %v\n", err)
				}
				scores, err := eng.ScoreBranches(cmd.Context(), target, engine.Plausibility)
				if err != nil {
					return err
				}
				for i, s := range scores {
					fmt.Fprintf(out, "branch %d plausibility %.3f\n", i+1, s)
				}
			}
			return nil
		},
	}
	src.flags(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "", "Agent to plan against")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Strategy tag (default from DUELCORE_STRATEGY)")
	cmd.Flags().BoolVar(&lookahead, "lookahead", false, "Also predict the outcome and show the target afterwards")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show skipped actions and branch scores")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var src source
	var target, strategy string
	cmd := &cobra.Command{
		Use:   "inspect [fixture.yaml]",
		Short: "Step through a fight in the terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := src.load(cmd.Context(), a, args)
			if err != nil {
				return err
			}
			eng, err := a.newEngine(f.Me, f.Seed)
			if err != nil {
				return err
			}
			if strategy == "" {
				strategy = a.cfg.Strategy
			}
			if !isTerminal() {
				c := cli.New(eng, f.Slices)
				c.Target, c.Strategy = target, strategy
				c.In, c.Out = cmd.InOrStdin(), cmd.OutOrStdout()
				c.Run()
				return nil
			}
			return tui.Run(eng, f.Slices, tui.Options{Title: f.Name, Target: target, Strategy: strategy})
		},
	}
	src.flags(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "", "Agent to plan against")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Strategy tag")
	return cmd
}

func newConsoleCmd(a *app) *cobra.Command {
	var src source
	var target, strategy, script string
	var record, trace bool
	cmd := &cobra.Command{
		Use:   "console [fixture.yaml]",
		Short: "Line console: queue slices, type observations, ask for plans",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := &history.Fixture{Me: a.cfg.Me}
			if len(args) > 0 || src.session != "" {
				var err error
				if f, err = src.load(ctx, a, args); err != nil {
					return err
				}
			}
			eng, err := a.newEngine(f.Me, f.Seed)
			if err != nil {
				return err
			}
			if strategy == "" {
				strategy = a.cfg.Strategy
			}

			c := cli.New(eng, f.Slices)
			c.Target, c.Strategy, c.Trace = target, strategy, trace
			c.Out = cmd.OutOrStdout()
			c.In = cmd.InOrStdin()
			if script != "" {
				file, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer file.Close()
				c.In = file
				c.EchoInput = true
			}
			if record {
				store, err := history.Open(ctx, a.cfg.HistoryDB)
				if err != nil {
					return err
				}
				defer store.Close()
				sess, err := store.CreateSession(ctx, eng.Timeline.Me, eng.RNG.Seed(), "console")
				if err != nil {
					return err
				}
				c.Store, c.Session = store, sess.ID
				fmt.Fprintf(cmd.ErrOrStderr(), "recording session %s\n", sess.ID)
			}
			c.Run()
			return nil
		},
	}
	src.flags(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "", "Agent to plan against")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Strategy tag")
	cmd.Flags().StringVar(&script, "script", "", "Read console input from a file")
	cmd.Flags().BoolVar(&record, "record", false, "Record applied slices as a new session")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print observations as they apply")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <fixture.yaml>...",
		Short: "Store fixtures in the history database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := history.Open(ctx, a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				f, err := history.LoadFixture(path)
				if err != nil {
					return err
				}
				if f.Name == "" {
					f.Name = path
				}
				sess, err := store.Import(ctx, f)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d slices)\n", sess.ID, path, sess.Slices)
			}
			return nil
		},
	}
}

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := history.Open(ctx, a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.Sessions(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No sessions stored.")
				return nil
			}
			for _, s := range list {
				fmt.Fprintf(out, "%s  %s  me=%s slices=%d  %s\n",
					s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.Me, s.Slices, s.Label)
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Write a stored session as a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := history.Open(ctx, a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := store.Export(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return writeSessionJSON(cmd.OutOrStdout(), f)
			}
			return history.WriteFixture(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "summary", false, "Print a JSON summary instead of the fixture")
	return cmd
}

// writeSessionJSON prints the session's size and observation kinds.
func writeSessionJSON(w io.Writer, f *history.Fixture) error {
	kinds := map[types.ObservationKind]int{}
	for _, ts := range f.Slices {
		for _, o := range ts.Observations {
			kinds[o.Kind()]++
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Name   string                        `json:"name"`
		Me     string                        `json:"me"`
		Slices int                           `json:"slices"`
		Kinds  map[types.ObservationKind]int `json:"kinds"`
	}{f.Name, f.Me, len(f.Slices), kinds})
}

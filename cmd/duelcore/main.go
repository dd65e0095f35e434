// duelcore reconstructs combat state from recorded fights and plans the
// controlled agent's next command.
// Usage: duelcore <replay|plan|inspect|console|import|sessions|export> [flags]
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nathoo/duelcore/config"
	"github.com/nathoo/duelcore/engine"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/loader"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state every subcommand shares.
type app struct {
	cfg config.Config
	log *logrus.Logger

	envFile     string
	strategyDir string
	historyDB   string
	me          string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "duelcore",
		Short:         "duelcore - combat state reconstruction and planning",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "Dotenv file to read before the environment")
	pf.StringVar(&a.strategyDir, "strategies", "", "Lua strategy directory (default: built-in)")
	pf.StringVar(&a.historyDB, "db", "", "History database path")
	pf.StringVar(&a.me, "me", "", "Controlled agent name")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newReplayCmd(a),
		newPlanCmd(a),
		newInspectCmd(a),
		newConsoleCmd(a),
		newImportCmd(a),
		newSessionsCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup loads configuration and lets flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.strategyDir != "" {
		cfg.StrategyDir = a.strategyDir
	}
	if a.historyDB != "" {
		cfg.HistoryDB = a.historyDB
	}
	if a.me != "" {
		cfg.Me = a.me
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.Logger()
	a.log.SetOutput(cmd.ErrOrStderr())
	return nil
}

// newEngine loads the strategies and builds an engine. me and seed, when
// set, override the configuration.
func (a *app) newEngine(me string, seed int64) (*engine.Engine, error) {
	var st *loader.Strategies
	var err error
	if a.cfg.StrategyDir != "" {
		st, err = loader.Load(a.cfg.StrategyDir)
	} else {
		st, err = loader.Defaults()
	}
	if err != nil {
		return nil, fmt.Errorf("loading strategies: %w", err)
	}
	for _, w := range st.Warnings {
		a.log.WithField("strategies", a.cfg.StrategyDir).Warn(w)
	}
	if a.cfg.Separator != "" {
		st.Profile.Separator = a.cfg.Separator
	}

	if me == "" {
		me = a.cfg.Me
	}
	if seed == 0 {
		seed = a.cfg.Seed
	}
	return engine.New(engine.Options{
		Me:          me,
		Seed:        seed,
		MaxBranches: a.cfg.MaxBranches,
		Profile:     st.Profile,
		Search:      combo.SearchOptions{NodeCap: a.cfg.SearchNodes},
		Registry:    st.Registry(),
		Graders:     st.Graders,
		Log:         a.log,
	}), nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

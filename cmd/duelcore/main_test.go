package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with an isolated environment and database.
func run(t *testing.T, db string, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"DUELCORE_ME", "DUELCORE_STRATEGY_DIR", "DUELCORE_STRATEGY", "DUELCORE_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--db", db}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReplay(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := run(t, db, "", "replay", "testdata/opener.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "Replayed 2 slice(s) to t=3.00s")
	assert.Contains(t, out, "skipped:")
	assert.Contains(t, out, "not_an_affliction")
	assert.Contains(t, out, "foe (")
	assert.Contains(t, out, "clumsiness")
	assert.Contains(t, out, "asthma")
}

func TestReplayJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := run(t, db, "", "replay", "--json", "testdata/opener.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
	assert.Contains(t, out, "foe")
}

func TestReplayRequiresSource(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	_, err := run(t, db, "", "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--session")
}

func TestPlan(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := run(t, db, "", "plan", "--target", "foe", "--explain", "testdata/opener.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "foe")
	assert.Contains(t, out, "branch 1 plausibility")

	_, err = run(t, db, "", "plan", "testdata/opener.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--target")
}

func TestPlanLookahead(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := run(t, db, "", "plan", "-t", "foe", "--lookahead", "testdata/opener.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "predicted foe:")
}

func TestConsoleScriptFromStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	out, err := run(t, db, "next\n/agent foe\n/quit\n", "console", "testdata/opener.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "2 slice(s) queued")
	assert.Contains(t, out, "clumsiness")
}

func TestConsoleRecordThenExport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	_, err := run(t, db, "/run\n/quit\n", "console", "--record", "testdata/opener.yaml")
	require.NoError(t, err)

	out, err := run(t, db, "", "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "console")
	assert.Contains(t, out, "slices=2")
	id := strings.Fields(out)[0]

	out, err = run(t, db, "", "export", id)
	require.NoError(t, err)
	assert.Contains(t, out, "doublestab")
	assert.Contains(t, out, "asthma")
}

func TestImportSessionsExport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")

	out, err := run(t, db, "", "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions stored.")

	out, err = run(t, db, "", "import", "testdata/opener.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 slices)")
	id := strings.Fields(out)[0]

	out, err = run(t, db, "", "export", "--summary", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"slices": 2`)
	assert.Contains(t, out, `"combat_action": 1`)

	out, err = run(t, db, "", "replay", "--session", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 2 slice(s)")

	_, err = run(t, db, "", "export", "no-such-session")
	require.Error(t, err)
}

func TestBadStrategyDir(t *testing.T) {
	db := filepath.Join(t.TempDir(), "h.db")
	_, err := run(t, db, "", "--strategies", filepath.Join(t.TempDir(), "nope"), "replay", "testdata/opener.yaml")
	require.Error(t, err)
}

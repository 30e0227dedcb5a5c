package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/hookspec/packages/output"
	"github.com/abdul-hamid-achik/hookspec/packages/plan"
)

// resetFlags puts every flag of cmd and its subcommands back to its
// default, since flag values live in package variables between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	// StringToString merges into the existing map once it has been set.
	varsFlag = map[string]string{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitValidateList(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "hookspec project initialized!")

	examplePath := filepath.Join(dir, "example.hookspec.yaml")
	p, err := plan.ParseFile(examplePath)
	require.NoError(t, err)
	assert.Equal(t, "example", p.Suite)
	assert.Equal(t, 2, p.TestCount())

	_, err = execute(t, "init", "--dir", dir, "--force=false")
	assert.ErrorContains(t, err, "file already exists")

	out, err = execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Valid: "+examplePath+" (1 classes, 2 tests)")

	out, err = execute(t, "list", examplePath)
	require.NoError(t, err)
	assert.Contains(t, out, "CheckoutTest")
	assert.Contains(t, out, "hook login [before-method] retry=2 groups: [no-safari]")
	assert.Contains(t, out, "hook clearStorage [after-method, firefox-only]")
	assert.Contains(t, out, "- swipeGallery")
}

func TestValidate_InvalidPlan(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "bad.hookspec.yaml", "suite: bad\nclasses:\n  - name: A\n    hooks:\n      - name: h\n        kinds: [sometimes]\n        run: \"true\"\n")

	_, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitParseError, exitCode(err))
}

func TestRun_JSONReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := writePlan(t, dir, "shop.hookspec.yaml", `suite: shop
classes:
  - name: CartTest
    hooks:
      - name: gridReady
        kinds: [before-suite]
        wait_for:
          url: "{{gridUrl}}/status"
          interval: 10ms
      - name: login
        kinds: [before-method]
        groups: [no-safari]
        run: "true"
    tests:
      - name: addItem
        run: "true"
      - name: swipe
        groups: [no-android]
        run: "true"
`)
	report := filepath.Join(dir, "report.json")

	_, err := execute(t, "run", path,
		"--config", filepath.Join(dir, "missing.json"),
		"--var", "gridUrl="+srv.URL,
		"--driver", "chrome", "--platform", "android",
		"-o", "json", "--output-file", report)
	// The config file does not exist.
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "hookspec.config.json"), []byte(`{"reporters":["console"]}`), 0644))
	_, err = execute(t, "run", path,
		"--config", filepath.Join(dir, "hookspec.config.json"),
		"--var", "gridUrl="+srv.URL,
		"--driver", "chrome", "--platform", "android",
		"-o", "json", "--output-file", report)
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var doc output.JSONOutput
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, output.JSONSummary{Total: 2, Passed: 1, Skipped: 1}, doc.Summary)
	require.Len(t, doc.Suites, 1)
	assert.Equal(t, "android", doc.Suites[0].Environment.PlatformName)
	assert.Equal(t, "excluded by no-android", doc.Suites[0].Tests[1].SkipReason)
}

func TestRun_StoppedSuite(t *testing.T) {
	dir := t.TempDir()
	path := writePlan(t, dir, "down.hookspec.yaml", `suite: down
classes:
  - name: A
    hooks:
      - name: boot
        kinds: [before-suite]
        run: "exit 3"
    tests:
      - name: t1
        run: "true"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hookspec.config.json"), []byte(`{}`), 0644))

	out, err := execute(t, "run", path,
		"--config", filepath.Join(dir, "hookspec.config.json"),
		"-o", "tap", "--output-file", "")
	require.Error(t, err)
	assert.Equal(t, ExitStopped, exitCode(err))
	assert.Contains(t, out, "not ok 1 - A.t1")
}

func TestRun_NoPlans(t *testing.T) {
	_, err := execute(t, "run", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestRun_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	path := writePlan(t, dir, "ok.hookspec.yaml", "suite: ok\nclasses:\n  - name: A\n    tests:\n      - name: t1\n        run: \"true\"\n")
	cfg := filepath.Join(dir, "hookspec.config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{}`), 0644))

	_, err := execute(t, "run", path, "--config", cfg, "--driver", "safari", "--var", "a=1", "-o", "tap")
	require.NoError(t, err)
	require.NoError(t, os.Remove(cfg))

	_, err = execute(t, "run", t.TempDir())
	assert.Equal(t, ExitUsageError, exitCode(err))
	assert.Empty(t, configFlag)
	assert.Empty(t, varsFlag)
	assert.Equal(t, "console", outputFlag)
	assert.False(t, runCmd.Flags().Changed("driver"))
}

func TestRun_InterruptSkipsRemainingPlans(t *testing.T) {
	dir := t.TempDir()
	first := writePlan(t, dir, "a.hookspec.yaml", "suite: a\nclasses:\n  - name: A\n    tests:\n      - name: t1\n        run: \"kill -INT $PPID; sleep 0.2\"\n")
	second := writePlan(t, dir, "b.hookspec.yaml", "suite: b\nclasses:\n  - name: B\n    tests:\n      - name: t2\n        run: \"true\"\n")
	cfg := filepath.Join(dir, "hookspec.config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{}`), 0644))

	out, err := execute(t, "run", first, second, "--config", cfg, "-o", "tap")
	require.Error(t, err)
	assert.Equal(t, ExitStopped, exitCode(err))
	assert.Contains(t, err.Error(), "run interrupted")
	assert.NotContains(t, out, "B.t2")
}

func TestRunSummary_Err(t *testing.T) {
	assert.NoError(t, (&runSummary{passed: 3, skipped: 1}).err())
	assert.Equal(t, ExitTestFailure, exitCode((&runSummary{failed: 1}).err()))
	assert.Equal(t, ExitTestFailure, exitCode((&runSummary{groupFailures: 1}).err()))
	assert.Equal(t, ExitStopped, exitCode((&runSummary{failed: 1, stopped: 1}).err()))
	assert.Equal(t, ExitSessionError, exitCode((&runSummary{sessionErrors: 1, stopped: 1}).err()))
	assert.Equal(t, ExitParseError, exitCode((&runSummary{parseErrors: 1, configErrors: 1}).err()))
	assert.Equal(t, ExitStopped, exitCode((&runSummary{passed: 2, interrupted: true}).err()))
	assert.True(t, (&runSummary{interrupted: true}).failing())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitUsageError, exitCode(errors.New("unknown flag")))
	err := exitWith(ExitConfigError, "bad %s", "config")
	assert.Equal(t, ExitConfigError, exitCode(err))
	assert.EqualError(t, err, "bad config")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"console", "junit"}, splitList(" console, ,junit "))
	assert.Nil(t, splitList(""))
}

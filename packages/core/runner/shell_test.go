package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

func TestShellCommand_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cmd := &ShellCommand{Command: "true"}
		assert.NoError(t, cmd.Run(context.Background()))
	})

	t.Run("failure", func(t *testing.T) {
		cmd := &ShellCommand{Command: "echo broken && exit 3"}
		err := cmd.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("ignored failure", func(t *testing.T) {
		cmd := &ShellCommand{Command: "- exit 1"}
		assert.NoError(t, cmd.Run(context.Background()))
	})

	t.Run("empty", func(t *testing.T) {
		cmd := &ShellCommand{Command: "   "}
		assert.NoError(t, cmd.Run(context.Background()))
	})
}

func TestShellCommand_ExportsEnvironment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "env.txt")

	st := environment.NewState(environment.NewHolder(&fakeDriver{id: "s-42"}, "ie11", "windows", nil))
	ctx := environment.WithState(context.Background(), st)

	cmd := &ShellCommand{
		Command: `echo "$HOOKSPEC_DRIVER $HOOKSPEC_PLATFORM $HOOKSPEC_SESSION_ID $HOOKSPEC_SUBSTITUTE $BASE_URL" > ` + out,
		Dir:     dir,
		Vars:    map[string]string{"BASE_URL": "http://shop.local"},
	}
	require.NoError(t, cmd.Run(ctx))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ie11 windows s-42 false http://shop.local", strings.TrimSpace(string(data)))
}

func TestShellCommand_RelativeScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "seed.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho seeded > \"$1\"\n"), 0755))

	target := filepath.Join(dir, "seeded.txt")
	cmd := &ShellCommand{Command: "./seed.sh " + target, Dir: dir}
	require.NoError(t, cmd.Run(context.Background()))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}

func TestResolveExecutable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local-only-script"), []byte("#!/bin/sh\n"), 0755))

	assert.Equal(t, filepath.Join(dir, "run.sh")+" a", resolveExecutable("./run.sh a", dir))
	assert.Equal(t, filepath.Join(dir, "local-only-script"), resolveExecutable("local-only-script", dir))
	assert.Equal(t, "sh -c true", resolveExecutable("sh -c true", dir))
	assert.Equal(t, "./run.sh", resolveExecutable("./run.sh", ""))
}

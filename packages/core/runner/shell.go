package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

// Environment variables exported to shell commands.
const (
	EnvDriver     = "HOOKSPEC_DRIVER"
	EnvPlatform   = "HOOKSPEC_PLATFORM"
	EnvSessionID  = "HOOKSPEC_SESSION_ID"
	EnvSubstitute = "HOOKSPEC_SUBSTITUTE"
)

// ShellCommand is a hook or test body executed through sh -c.
type ShellCommand struct {
	Command string
	// Dir is the working directory and the base for relative executables.
	Dir    string
	Vars   map[string]string
	Logger *zap.Logger
}

// Run executes the command. A leading "-" ignores a non-zero exit.
func (s *ShellCommand) Run(ctx context.Context) error {
	cmdStr := strings.TrimSpace(s.Command)
	if cmdStr == "" {
		return nil
	}

	ignoreError := strings.HasPrefix(cmdStr, "-")
	if ignoreError {
		cmdStr = strings.TrimSpace(strings.TrimPrefix(cmdStr, "-"))
	}
	cmdStr = resolveExecutable(cmdStr, s.Dir)

	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), s.environ(ctx)...)

	output, err := cmd.CombinedOutput()
	if s.Logger != nil && len(output) > 0 {
		s.Logger.Debug("command output", zap.String("command", s.Command), zap.ByteString("output", output))
	}
	if err != nil && !ignoreError {
		return fmt.Errorf("command %q failed: %v\nOutput: %s", s.Command, err, string(output))
	}
	return nil
}

func (s *ShellCommand) environ(ctx context.Context) []string {
	var env []string
	for k, v := range s.Vars {
		env = append(env, k+"="+v)
	}
	if st, ok := environment.StateFrom(ctx); ok {
		d := st.Descriptor()
		env = append(env,
			EnvDriver+"="+d.DriverName,
			EnvPlatform+"="+d.PlatformName,
			EnvSessionID+"="+d.SessionID,
			EnvSubstitute+"="+strconv.FormatBool(d.SubstituteActive),
		)
	}
	return env
}

// resolveExecutable makes a relative executable, or a script that only
// exists in baseDir, relative to baseDir.
func resolveExecutable(cmdStr, baseDir string) string {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 || baseDir == "" {
		return cmdStr
	}

	executable := parts[0]
	switch {
	case strings.HasPrefix(executable, "./") || strings.HasPrefix(executable, "../"):
		parts[0] = filepath.Join(baseDir, executable)
	case !filepath.IsAbs(executable) && !isInPath(executable):
		potentialPath := filepath.Join(baseDir, executable)
		if _, err := os.Stat(potentialPath); err != nil {
			return cmdStr
		}
		parts[0] = potentialPath
	default:
		return cmdStr
	}
	return strings.Join(parts, " ")
}

// isInPath checks if a command is available in the system PATH
func isInPath(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

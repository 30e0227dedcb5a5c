package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	env := result.Environment
	fmt.Fprintf(f.writer, "\n%s %s\n", bold("Suite: "+result.Suite), cyan(fmt.Sprintf("[%s on %s]", env.DriverName, env.PlatformName)))

	if f.verbose {
		f.formatHooks(result.Hooks, "  ")
	}

	class := ""
	for _, r := range result.Results {
		if r.Class != class {
			class = r.Class
			fmt.Fprintf(f.writer, "\n  %s\n", bold(class))
		}

		if r.Skipped {
			fmt.Fprintf(f.writer, "    %s %s", yellow("-"), r.Name)
			if reason := reportedSkipReason(r.SkipReason); reason != "" {
				fmt.Fprintf(f.writer, " (%s)", reason)
			}
			fmt.Fprintf(f.writer, "\n")
			continue
		}

		symbol := green("✓")
		if !r.Passed {
			symbol = red("✗")
		}
		fmt.Fprintf(f.writer, "    %s %s %s\n", symbol, r.Name, cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds())))

		if f.verbose {
			f.formatHooks(r.Hooks, "      ")
		}
		if r.Error != nil {
			fmt.Fprintf(f.writer, "      %s %s\n", red("→"), firstLine(r.Error.Error()))
		}
		for _, msg := range r.Failures {
			fmt.Fprintf(f.writer, "      %s %s\n", red("→"), firstLine(msg))
		}
	}

	if len(result.GroupFailures) > 0 {
		fmt.Fprintf(f.writer, "\n%s\n", red("Suite hook failures:"))
		for _, msg := range result.GroupFailures {
			fmt.Fprintf(f.writer, "  %s %s\n", red("→"), firstLine(msg))
		}
	}
	if result.Fatal != nil {
		fmt.Fprintf(f.writer, "\n%s %s\n", red("Execution stopped:"), firstLine(result.Fatal.Error()))
	}

	if f.verbose && len(result.Stats) > 0 {
		fmt.Fprintf(f.writer, "\n%s\n", bold("Hooks:"))
		for _, s := range result.Stats {
			fmt.Fprintf(f.writer, "  %-14s %d run, %d attempts, p50 %s, p99 %s\n", s.Kind, s.Hooks, s.Attempts, s.P50, s.P99)
		}
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Tests: ")
	if result.Passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", result.Passed)))
	}
	if result.Failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", result.Failed)))
	}
	if result.Skipped > 0 {
		fmt.Fprintf(f.writer, "%s, ", yellow(fmt.Sprintf("%d skipped", result.Skipped)))
	}
	total := result.Passed + result.Failed + result.Skipped
	fmt.Fprintf(f.writer, "%d total\n", total)
	fmt.Fprintf(f.writer, "Time:  %dms\n", result.Duration.Milliseconds())
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) formatHooks(results []*runner.KindResult, indent string) {
	faint := color.New(color.Faint).SprintFunc()
	for _, kr := range results {
		if kr.Abandoned {
			fmt.Fprintf(f.writer, "%s%s\n", indent, faint(fmt.Sprintf("%s abandoned (%s)", kr.Kind, kr.SkipReason)))
			continue
		}
		for _, o := range kr.Outcomes {
			line := fmt.Sprintf("%s %s: %s", kr.Kind, o.Hook, o.Status)
			if o.Attempts > 1 {
				line += fmt.Sprintf(" after %d attempts", o.Attempts)
			}
			if o.Substituted {
				line += " [substitute driver]"
			}
			if o.SkipReason != "" {
				line += " (" + o.SkipReason + ")"
			}
			fmt.Fprintf(f.writer, "%s%s\n", indent, faint(line))
		}
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("hookspec"), version)
}

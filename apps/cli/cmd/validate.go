package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/hookspec/packages/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan|directory>...",
	Short: "Validate plans without running them",
	Long: `Validate .hookspec.yaml plans against the plan schema without running them.

Examples:
  hookspec validate checkout.hookspec.yaml
  hookspec validate ./plans/`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := plan.Find(args)
	if err != nil {
		return &ExitError{Code: ExitUsageError, Err: err}
	}

	if len(files) == 0 {
		return exitWith(ExitUsageError, "no %s files found", strings.Join(plan.Extensions, " or "))
	}

	invalid := 0
	for _, file := range files {
		p, err := plan.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			invalid++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d classes, %d tests)\n", file, len(p.Classes), p.TestCount())
	}

	if invalid > 0 {
		return exitWith(ExitParseError, "validation failed for %d of %d plan(s)", invalid, len(files))
	}

	return nil
}

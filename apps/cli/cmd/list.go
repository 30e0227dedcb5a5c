package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/plan"
)

var listCmd = &cobra.Command{
	Use:   "list <plan|directory>...",
	Short: "List the classes, hooks and tests of plans",
	Long: `List the classes, hooks and tests declared in .hookspec.yaml plans.

Examples:
  hookspec list checkout.hookspec.yaml
  hookspec list ./plans/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := plan.Find(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no %s files found", strings.Join(plan.Extensions, " or "))
	}

	out := cmd.OutOrStdout()
	for _, file := range files {
		p, err := plan.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(out, "\n%s (suite %s):\n", file, p.Suite)
		for _, c := range p.Classes {
			fmt.Fprintf(out, "  %s\n", c.Name)
			for _, h := range c.Hooks {
				fmt.Fprintf(out, "    hook %s [%s]", h.Name, kindList(h.Kinds))
				if h.Retry != nil {
					fmt.Fprintf(out, " retry=%d", *h.Retry)
				}
				if len(h.Groups) > 0 {
					fmt.Fprintf(out, " groups: %v", h.Groups)
				}
				fmt.Fprintln(out)
			}
			for _, t := range c.Tests {
				fmt.Fprintf(out, "    - %s\n", t.Name)
				if len(t.Groups) > 0 {
					fmt.Fprintf(out, "      groups: %v\n", t.Groups)
				}
			}
		}
	}

	return nil
}

func kindList(kinds []hooks.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/hookspec/packages/core/config"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/plan"
)

var (
	forceInit bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hookspec project",
	Long: `Initialize a new hookspec project.

This creates:
  - .hookspec.config.json   - Configuration file with driver and reporters
  - example.hookspec.yaml   - Example suite plan

Examples:
  hookspec init
  hookspec init --dir e2e --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to initialize")
}

// examplePlan shows every hook style: a readiness wait, a retried login
// excluded on safari, and a firefox-only cleanup.
func examplePlan() *plan.Plan {
	retries := 2
	return &plan.Plan{
		Suite: "example",
		Variables: map[string]string{
			"baseUrl": "http://localhost:3000",
		},
		Environments: map[string]map[string]string{
			"staging": {"baseUrl": "https://staging.example.com"},
		},
		Classes: []plan.ClassSpec{{
			Name: "CheckoutTest",
			Hooks: []plan.HookSpec{
				{
					Name:    "appReady",
					Kinds:   []hooks.Kind{hooks.BeforeSuite},
					WaitFor: &plan.WaitForSpec{URL: "{{baseUrl}}/health"},
				},
				{
					Name:   "login",
					Kinds:  []hooks.Kind{hooks.BeforeMethod},
					Groups: []string{"no-safari"},
					Retry:  &retries,
					Run:    `echo "logging in on $HOOKSPEC_DRIVER ({{baseUrl}})"`,
				},
				{
					Name:  "clearStorage",
					Kinds: []hooks.Kind{hooks.AfterMethod, hooks.FirefoxOnly},
					Run:   "-echo clearing storage in session $HOOKSPEC_SESSION_ID",
				},
			},
			Tests: []plan.TestSpec{
				{Name: "addToCart", Groups: []string{"smoke"}, Run: "true"},
				{Name: "swipeGallery", Groups: []string{"no-android"}, Run: "true"},
			},
		}},
	}
}

func initCommand(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(initDir, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(initDir, config.ConfigFilenames[0])
	exampleFile := filepath.Join(initDir, "example"+plan.Extensions[0])

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Reporters = []string{"console", "junit"}
	cfg.OutputDir = "reports"
	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	planYAML, err := yaml.Marshal(examplePlan())
	if err != nil {
		return fmt.Errorf("encoding example plan: %w", err)
	}
	if err := os.WriteFile(exampleFile, planYAML, 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nhookspec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'hookspec run %s' to execute the example suite.\n", exampleFile)

	return nil
}

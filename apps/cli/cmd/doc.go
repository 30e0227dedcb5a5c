// Package cmd implements the hookspec CLI commands using Cobra.
//
// Available commands:
//   - run: Execute suite plans
//   - validate: Check plans against the plan schema without running them
//   - list: Display the classes, hooks and tests of plans
//   - init: Create an example plan and config file
//   - version: Show hookspec version information
//   - completion: Generate shell completion scripts
package cmd

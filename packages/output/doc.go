// Package output reports suite results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//   - JUnit: JUnit XML format for CI integration
//   - TAP: Test Anything Protocol format
//
// Every formatter implements Formatter. JSON, JUnit and TAP accumulate
// results and write them on Flush.
package output

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

// Formatter reports run results.
type Formatter interface {
	FormatHeader(version string)
	FormatResult(result *runner.RunResult)
	FormatError(err error)
}

// Flushable is implemented by formatters that write their output at the end
// of a run.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// Names lists the supported formatter names.
var Names = []string{"console", "json", "junit", "tap", "html"}

// New returns the formatter called name writing to w.
func New(name string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "junit":
		return NewJUnitFormatter(JUnitWithWriter(w)), nil
	case "tap":
		return NewTAPFormatter(TAPWithWriter(w)), nil
	case "html":
		return NewHTMLFormatter(HTMLWithWriter(w)), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Names, ", "))
}

// testName is the display name of a test, qualified by its class.
func testName(r *runner.TestResult) string {
	if r.Class == "" {
		return r.Name
	}
	return r.Class + "." + r.Name
}

// reportedSkipReason hides the reason of tests removed by name or group
// filters.
func reportedSkipReason(reason string) string {
	if reason == "filtered out" {
		return ""
	}
	return reason
}

// firstLine trims a failure message to its first non-empty line.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

// JUnitTestSuites is the root element
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite holds the tests of one class.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr,omitempty"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitProblem `xml:"failure,omitempty"`
	Error     *JUnitProblem `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitProblem is the body of a failure or error element.
type JUnitProblem struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

func newProblem(kind, text string) *JUnitProblem {
	return &JUnitProblem{Message: firstLine(text), Type: kind, Content: text}
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitFormatter formats test results as JUnit XML
type JUnitFormatter struct {
	writer     io.Writer
	testSuites []JUnitTestSuite
}

type JUnitOption func(*JUnitFormatter)

func NewJUnitFormatter(opts ...JUnitOption) *JUnitFormatter {
	f := &JUnitFormatter{
		writer:     os.Stdout,
		testSuites: make([]JUnitTestSuite, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitFormatter) {
		f.writer = w
	}
}

// FormatResult adds one testsuite per class, plus a testsuite for suite and
// group hook failures when there are any.
func (f *JUnitFormatter) FormatResult(result *runner.RunResult) {
	timestamp := time.Now().Format(time.RFC3339)
	props := []JUnitProperty{
		{Name: "driver", Value: result.Environment.DriverName},
		{Name: "platform", Value: result.Environment.PlatformName},
		{Name: "run", Value: result.RunID},
	}

	index := make(map[string]int)
	for _, r := range result.Results {
		i, ok := index[r.Class]
		if !ok {
			i = len(f.testSuites)
			index[r.Class] = i
			f.testSuites = append(f.testSuites, JUnitTestSuite{
				Name:       r.Class,
				Timestamp:  timestamp,
				Properties: props,
			})
		}
		suite := &f.testSuites[i]

		tc := JUnitTestCase{
			Name:      r.Name,
			ClassName: r.Class,
			Time:      r.Duration.Seconds(),
		}

		switch {
		case r.Skipped:
			suite.Skipped++
			tc.Skipped = &JUnitSkipped{Message: reportedSkipReason(r.SkipReason)}
		case r.Error != nil:
			suite.Errors++
			tc.Error = newProblem("Error", r.Error.Error())
		case !r.Passed:
			suite.Failures++
			tc.Failure = newProblem("HookFailure", strings.Join(r.Failures, "\n"))
		}

		suite.Tests++
		suite.Time += r.Duration.Seconds()
		suite.TestCases = append(suite.TestCases, tc)
	}

	if len(result.GroupFailures) == 0 && result.Fatal == nil {
		return
	}

	hooksSuite := JUnitTestSuite{
		Name:       result.Suite + " hooks",
		Timestamp:  timestamp,
		Properties: props,
	}
	for i, msg := range result.GroupFailures {
		hooksSuite.Tests++
		hooksSuite.Failures++
		hooksSuite.TestCases = append(hooksSuite.TestCases, JUnitTestCase{
			Name:      fmt.Sprintf("group failure %d", i+1),
			ClassName: result.Suite,
			Failure:   newProblem("HookFailure", msg),
		})
	}
	if result.Fatal != nil {
		hooksSuite.Tests++
		hooksSuite.Errors++
		hooksSuite.TestCases = append(hooksSuite.TestCases, JUnitTestCase{
			Name:      "execution stopped",
			ClassName: result.Suite,
			Error:     newProblem("StopExecution", result.Fatal.Error()),
		})
	}
	f.testSuites = append(f.testSuites, hooksSuite)
}

func (f *JUnitFormatter) FormatError(err error) {
	// Errors are included in individual test cases
}

func (f *JUnitFormatter) FormatHeader(version string) {
	// No header needed for JUnit XML
}

// Flush writes the accumulated JUnit XML output
func (f *JUnitFormatter) Flush(totalDuration time.Duration) error {
	var totalTests, totalFailures, totalErrors, totalSkipped int
	for _, suite := range f.testSuites {
		totalTests += suite.Tests
		totalFailures += suite.Failures
		totalErrors += suite.Errors
		totalSkipped += suite.Skipped
	}

	suites := JUnitTestSuites{
		Name:       "hookspec",
		Tests:      totalTests,
		Failures:   totalFailures,
		Errors:     totalErrors,
		Skipped:    totalSkipped,
		Time:       totalDuration.Seconds(),
		Timestamp:  time.Now().Format(time.RFC3339),
		TestSuites: f.testSuites,
	}

	fmt.Fprintf(f.writer, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	return encoder.Encode(suites)
}

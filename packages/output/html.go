package output

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
	"github.com/abdul-hamid-achik/hookspec/packages/stats"
)

// HTMLOutput is the data the HTML report template renders.
type HTMLOutput struct {
	Version        string
	Summary        JSONSummary
	Suites         []HTMLSuite
	Stats          []stats.Summary
	Duration       float64
	Time           string
	PassedPercent  float64
	FailedPercent  float64
	SkippedPercent float64
}

type HTMLSuite struct {
	Name          string
	RunID         string
	Driver        string
	Platform      string
	Hooks         []JSONHook
	GroupFailures []string
	Fatal         string
	Tests         []HTMLTest
}

type HTMLTest struct {
	Name        string
	Groups      []string
	StatusClass string
	SkipReason  string
	Duration    float64
	Error       string
	Failures    []string
	Hooks       []JSONHook
}

// HTMLFormatter formats test results as a standalone HTML page
type HTMLFormatter struct {
	writer  io.Writer
	suites  []HTMLSuite
	stats   []stats.Summary
	version string
}

// HTMLOption is a functional option for HTMLFormatter
type HTMLOption func(*HTMLFormatter)

func NewHTMLFormatter(opts ...HTMLOption) *HTMLFormatter {
	f := &HTMLFormatter{writer: os.Stdout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func HTMLWithWriter(w io.Writer) HTMLOption {
	return func(f *HTMLFormatter) {
		f.writer = w
	}
}

func (f *HTMLFormatter) FormatResult(result *runner.RunResult) {
	suite := HTMLSuite{
		Name:          result.Suite,
		RunID:         result.RunID,
		Driver:        result.Environment.DriverName,
		Platform:      result.Environment.PlatformName,
		Hooks:         jsonHooks(result.Hooks),
		GroupFailures: result.GroupFailures,
	}
	if result.Fatal != nil {
		suite.Fatal = result.Fatal.Error()
	}

	for _, r := range result.Results {
		test := HTMLTest{
			Name:       testName(r),
			Groups:     r.Groups,
			SkipReason: reportedSkipReason(r.SkipReason),
			Duration:   float64(r.Duration.Milliseconds()),
			Failures:   r.Failures,
			Hooks:      jsonHooks(r.Hooks),
		}

		// CSS class of the row
		switch {
		case r.Skipped:
			test.StatusClass = "skipped"
		case r.Passed:
			test.StatusClass = "passed"
		default:
			test.StatusClass = "failed"
		}

		if r.Error != nil {
			test.Error = r.Error.Error()
		}
		suite.Tests = append(suite.Tests, test)
	}

	f.suites = append(f.suites, suite)
	f.stats = append(f.stats, result.Stats...)
}

// FormatError is a no-op; failures are rendered with their suite.
func (f *HTMLFormatter) FormatError(err error) {}

// FormatHeader captures the version for the page footer
func (f *HTMLFormatter) FormatHeader(version string) {
	f.version = version
}

// Flush renders the accumulated suites
func (f *HTMLFormatter) Flush(totalDuration time.Duration) error {
	var summary JSONSummary
	for _, s := range f.suites {
		for _, t := range s.Tests {
			summary.Total++
			switch t.StatusClass {
			case "skipped":
				summary.Skipped++
			case "passed":
				summary.Passed++
			default:
				summary.Failed++
			}
		}
	}

	out := HTMLOutput{
		Version:  f.version,
		Summary:  summary,
		Suites:   f.suites,
		Stats:    f.stats,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format("2006-01-02 15:04:05"),
	}
	if summary.Total > 0 {
		total := float64(summary.Total)
		out.PassedPercent = float64(summary.Passed) / total * 100
		out.FailedPercent = float64(summary.Failed) / total * 100
		out.SkippedPercent = float64(summary.Skipped) / total * 100
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}
	return tmpl.Execute(f.writer, out)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>hookspec report</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
.bar { display: flex; height: 8px; border-radius: 4px; overflow: hidden; margin: 1rem 0; }
.bar .passed { background: #2da44e; } .bar .failed { background: #cf222e; } .bar .skipped { background: #bf8700; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #ddd; vertical-align: top; }
tr.passed td.status { color: #2da44e; } tr.failed td.status { color: #cf222e; } tr.skipped td.status { color: #bf8700; }
pre { white-space: pre-wrap; margin: .2rem 0; font-size: .85em; }
.muted { color: #666; font-size: .85em; }
.fatal { background: #ffebe9; padding: .6rem; border-radius: 4px; }
</style>
</head>
<body>
<h1>hookspec report</h1>
<p>{{.Summary.Total}} tests: {{.Summary.Passed}} passed, {{.Summary.Failed}} failed, {{.Summary.Skipped}} skipped in {{.Duration}}ms</p>
<div class="bar">
<div class="passed" style="width: {{printf "%.1f" .PassedPercent}}%"></div>
<div class="failed" style="width: {{printf "%.1f" .FailedPercent}}%"></div>
<div class="skipped" style="width: {{printf "%.1f" .SkippedPercent}}%"></div>
</div>
{{range .Suites}}
<h2>{{.Name}}</h2>
<p class="muted">driver {{.Driver}}{{if .Platform}} on {{.Platform}}{{end}}, run {{.RunID}}</p>
{{if .Fatal}}<div class="fatal"><strong>Execution stopped:</strong><pre>{{.Fatal}}</pre></div>{{end}}
{{if .GroupFailures}}
<h3>Suite hook failures</h3>
{{range .GroupFailures}}<pre>{{.}}</pre>{{end}}
{{end}}
<table>
<tr><th>Test</th><th>Status</th><th>Duration</th><th>Details</th></tr>
{{range .Tests}}
<tr class="{{.StatusClass}}">
<td>{{.Name}}{{if .Groups}}<div class="muted">{{range .Groups}}{{.}} {{end}}</div>{{end}}</td>
<td class="status">{{.StatusClass}}</td>
<td>{{.Duration}}ms</td>
<td>
{{if .SkipReason}}<div class="muted">{{.SkipReason}}</div>{{end}}
{{if .Error}}<pre>{{.Error}}</pre>{{end}}
{{range .Failures}}<pre>{{.}}</pre>{{end}}
{{range .Hooks}}{{if ne .Status "passed"}}<div class="muted">{{.Kind}} {{.Name}}: {{.Status}}{{if .Attempts}} after {{.Attempts}} attempt(s){{end}}{{if .Substituted}} [substitute driver]{{end}}{{if .SkipReason}} ({{.SkipReason}}){{end}}</div>{{end}}{{end}}
</td>
</tr>
{{end}}
</table>
{{end}}
{{if .Stats}}
<h2>Hook statistics</h2>
<table>
<tr><th>Kind</th><th>Hooks</th><th>Passed</th><th>Failed</th><th>Skipped</th><th>Attempts</th><th>p50</th><th>p95</th><th>Max</th></tr>
{{range .Stats}}
<tr><td>{{.Kind}}</td><td>{{.Hooks}}</td><td>{{.Passed}}</td><td>{{.Failed}}</td><td>{{.Skipped}}</td><td>{{.Attempts}}</td><td>{{.P50}}</td><td>{{.P95}}</td><td>{{.Max}}</td></tr>
{{end}}
</table>
{{end}}
<p class="muted">Generated {{.Time}}{{if .Version}} by hookspec {{.Version}}{{end}}</p>
</body>
</html>
`

package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
	"github.com/abdul-hamid-achik/hookspec/packages/stats"
)

// JSONOutput is the document written by JSONFormatter.
type JSONOutput struct {
	Summary  JSONSummary     `json:"summary"`
	Suites   []JSONSuite     `json:"suites"`
	Stats    []stats.Summary `json:"stats,omitempty"`
	Duration float64         `json:"duration"`
	Time     string          `json:"time"`
}

type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type JSONSuite struct {
	Name          string                 `json:"name"`
	RunID         string                 `json:"runId"`
	Environment   environment.Descriptor `json:"environment"`
	Hooks         []JSONHook             `json:"hooks,omitempty"`
	GroupFailures []string               `json:"groupFailures,omitempty"`
	Fatal         string                 `json:"fatal,omitempty"`
	Tests         []JSONTest             `json:"tests"`
	Duration      float64                `json:"duration"`
}

type JSONTest struct {
	Class      string     `json:"class"`
	Name       string     `json:"name"`
	Groups     []string   `json:"groups,omitempty"`
	Passed     bool       `json:"passed"`
	Skipped    bool       `json:"skipped,omitempty"`
	SkipReason string     `json:"skipReason,omitempty"`
	Duration   float64    `json:"duration"`
	Error      string     `json:"error,omitempty"`
	Failures   []string   `json:"failures,omitempty"`
	Hooks      []JSONHook `json:"hooks,omitempty"`
}

// JSONHook is one dispatched hook.
type JSONHook struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name,omitempty"`
	Status      string   `json:"status"`
	Attempts    int      `json:"attempts,omitempty"`
	SkipReason  string   `json:"skipReason,omitempty"`
	Substituted bool     `json:"substituted,omitempty"`
	Failures    []string `json:"failures,omitempty"`
	Duration    float64  `json:"duration"`
}

// JSONFormatter formats test results as JSON
type JSONFormatter struct {
	writer io.Writer
	suites []JSONSuite
	stats  []stats.Summary
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		suites: make([]JSONSuite, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	suite := JSONSuite{
		Name:          result.Suite,
		RunID:         result.RunID,
		Environment:   result.Environment,
		Hooks:         jsonHooks(result.Hooks),
		GroupFailures: result.GroupFailures,
		Tests:         make([]JSONTest, 0, len(result.Results)),
		Duration:      float64(result.Duration.Milliseconds()),
	}
	if result.Fatal != nil {
		suite.Fatal = result.Fatal.Error()
	}

	for _, r := range result.Results {
		test := JSONTest{
			Class:      r.Class,
			Name:       r.Name,
			Groups:     r.Groups,
			Passed:     r.Passed,
			Skipped:    r.Skipped,
			SkipReason: reportedSkipReason(r.SkipReason),
			Duration:   float64(r.Duration.Milliseconds()),
			Failures:   r.Failures,
			Hooks:      jsonHooks(r.Hooks),
		}
		if r.Error != nil {
			test.Error = r.Error.Error()
		}
		suite.Tests = append(suite.Tests, test)
	}

	f.suites = append(f.suites, suite)
	f.stats = append(f.stats, result.Stats...)
}

func jsonHooks(results []*runner.KindResult) []JSONHook {
	var out []JSONHook
	for _, kr := range results {
		if kr.Abandoned {
			out = append(out, JSONHook{
				Kind:       kr.Kind.String(),
				Status:     runner.StatusSkipped.String(),
				SkipReason: kr.SkipReason,
				Duration:   float64(kr.Duration.Milliseconds()),
			})
			continue
		}
		for _, o := range kr.Outcomes {
			h := JSONHook{
				Kind:        kr.Kind.String(),
				Name:        o.Hook,
				Status:      o.Status.String(),
				Attempts:    o.Attempts,
				SkipReason:  o.SkipReason,
				Substituted: o.Substituted,
				Duration:    float64(o.Duration.Milliseconds()),
			}
			for _, fr := range o.Failures {
				h.Failures = append(h.Failures, fr.Message)
			}
			out = append(out, h)
		}
	}
	return out
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual test results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var summary JSONSummary
	for _, s := range f.suites {
		for _, t := range s.Tests {
			summary.Total++
			switch {
			case t.Skipped:
				summary.Skipped++
			case t.Passed:
				summary.Passed++
			default:
				summary.Failed++
			}
		}
	}

	output := JSONOutput{
		Summary:  summary,
		Suites:   f.suites,
		Stats:    f.stats,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

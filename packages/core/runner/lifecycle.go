package runner

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/core/skip"
	"github.com/abdul-hamid-achik/hookspec/packages/stats"
)

type RunResult struct {
	Suite         string
	RunID         string
	Environment   environment.Descriptor
	Results       []*TestResult
	Hooks         []*KindResult
	GroupFailures []string
	Stats         []stats.Summary
	Duration      time.Duration
	Passed        int
	Failed        int
	Skipped       int
	// Fatal is the first execution-stopping hook failure of the run.
	Fatal error
}

type TestResult struct {
	Class      string
	Name       string
	Groups     []string
	Passed     bool
	Skipped    bool
	SkipReason string
	Duration   time.Duration
	Hooks      []*KindResult
	Failures   []string
	Error      error
}

// RunSuite runs the whole lifecycle of suite. Suite and group hooks run on
// a dedicated session; classes run sequentially on one more session, or in
// parallel with a session per class.
func (r *Runner) RunSuite(ctx context.Context, suite *Suite) (*RunResult, error) {
	start := time.Now()
	r.stats.Reset()

	main, err := r.sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	defer r.closeSession(ctx, main)

	result := &RunResult{
		Suite:       suite.Name(),
		RunID:       uuid.NewString(),
		Environment: main.Env.Descriptor(),
	}
	logger := r.logger.With(zap.String("suite", suite.Name()), zap.String("run", result.RunID))
	logger.Info("suite started", zap.Int("classes", len(suite.Classes())))

	if len(suite.Classes()) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	var fatal error
	for _, kind := range []hooks.Kind{hooks.BeforeSuite, hooks.BeforeGroup} {
		kr, err := r.RunHooksForKind(ctx, main, nil, kind, nil, suite)
		if kr != nil {
			result.Hooks = append(result.Hooks, kr)
		}
		if err != nil {
			fatal = err
			break
		}
	}

	if fatal == nil {
		results, hookResults, err := r.runClasses(ctx, suite)
		result.Results = results
		result.Hooks = append(result.Hooks, hookResults...)
		fatal = err
	} else {
		result.Results = failAll(suite.Classes(), fatal)
	}

	for _, kind := range []hooks.Kind{hooks.AfterGroup, hooks.AfterSuite} {
		kr, err := r.RunHooksForKind(ctx, main, nil, kind, nil, suite)
		if kr != nil {
			result.Hooks = append(result.Hooks, kr)
		}
		if err != nil && fatal == nil {
			fatal = err
		}
	}

	result.Fatal = fatal
	result.GroupFailures = suite.TakeGroupFailures()
	result.Stats = r.stats.Summaries()
	for _, tr := range result.Results {
		switch {
		case tr.Skipped:
			result.Skipped++
		case tr.Passed:
			result.Passed++
		default:
			result.Failed++
		}
	}
	result.Duration = time.Since(start)

	logger.Info("suite finished",
		zap.Int("passed", result.Passed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (r *Runner) runClasses(ctx context.Context, suite *Suite) ([]*TestResult, []*KindResult, error) {
	if r.config.Parallel {
		return r.runParallel(ctx, suite)
	}

	sess, err := r.sessions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}
	defer r.closeSession(ctx, sess)

	var results []*TestResult
	var hookResults []*KindResult
	var fatal error
	for _, class := range suite.Classes() {
		tr, kr, err := r.runClass(ctx, sess, class, suite)
		results = append(results, tr...)
		hookResults = append(hookResults, kr...)
		if err != nil && fatal == nil {
			fatal = err
		}
		if r.config.Bail && hasFailure(tr) {
			break
		}
	}
	return results, hookResults, fatal
}

func (r *Runner) runParallel(ctx context.Context, suite *Suite) ([]*TestResult, []*KindResult, error) {
	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	classes := suite.Classes()
	type classRun struct {
		tests []*TestResult
		hooks []*KindResult
		err   error
	}
	runs := make([]classRun, len(classes))
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, class := range classes {
		wg.Add(1)
		sem <- struct{}{} // acquire semaphore

		go func(idx int, c *Class) {
			defer wg.Done()
			defer func() { <-sem }() // release semaphore

			sess, err := r.sessions(ctx)
			if err != nil {
				err = fmt.Errorf("creating session: %w", err)
				runs[idx] = classRun{tests: failAll([]*Class{c}, err), err: err}
				return
			}
			defer r.closeSession(ctx, sess)

			tests, kinds, err := r.runClass(ctx, sess, c, suite)
			runs[idx] = classRun{tests: tests, hooks: kinds, err: err}
		}(i, class)
	}

	wg.Wait()

	var results []*TestResult
	var hookResults []*KindResult
	var fatal error
	for _, run := range runs {
		results = append(results, run.tests...)
		hookResults = append(hookResults, run.hooks...)
		if run.err != nil && fatal == nil {
			fatal = run.err
		}
	}
	return results, hookResults, fatal
}

// runClass runs the class hooks around every selected test of class on one
// instance.
func (r *Runner) runClass(ctx context.Context, sess *Session, class *Class, rc RunnerContext) ([]*TestResult, []*KindResult, error) {
	inst := class.newInstance()
	tracker, _ := inst.(TestTracker)
	if tracker != nil {
		tracker.SetCurrentTestMethod(nil)
	}

	var hookResults []*KindResult
	var fatal error

	kr, err := r.RunHooksForKind(ctx, sess, class, hooks.BeforeClass, inst, rc)
	if kr != nil {
		hookResults = append(hookResults, kr)
	}

	var results []*TestResult
	if err != nil {
		fatal = err
		results = failAll([]*Class{class}, err)
		if tracker != nil {
			// Failures recorded by the class hooks belong to no test.
			tracker.TakePostponedFailures()
		}
	} else {
		for _, test := range class.Tests {
			if !r.shouldRun(test) {
				results = append(results, &TestResult{
					Class:      class.Name,
					Name:       test.Method.Name,
					Groups:     test.Method.Groups,
					Skipped:    true,
					SkipReason: "filtered out",
				})
				continue
			}

			tr, err := r.runTest(ctx, sess, class, inst, test, rc)
			results = append(results, tr)
			if err != nil && fatal == nil {
				fatal = err
			}
			if r.config.Bail && !tr.Passed && !tr.Skipped {
				break
			}
		}
	}

	if tracker != nil {
		tracker.SetCurrentTestMethod(nil)
	}
	kr, err = r.RunHooksForKind(ctx, sess, class, hooks.AfterClass, inst, rc)
	if kr != nil {
		hookResults = append(hookResults, kr)
	}
	if err != nil && fatal == nil {
		fatal = err
	}

	return results, hookResults, fatal
}

// runTest runs one test method with its method hooks and preconditions.
// The returned error is set only for execution-stopping hook failures.
func (r *Runner) runTest(ctx context.Context, sess *Session, class *Class, inst Instance, test *Test, rc RunnerContext) (*TestResult, error) {
	start := time.Now()
	tr := &TestResult{
		Class:  class.Name,
		Name:   test.Method.Name,
		Groups: test.Method.Groups,
	}
	defer func() { tr.Duration = time.Since(start) }()

	if reason, skipped := skip.Reason(test.Method.Groups, sess.Env.Descriptor()); skipped {
		tr.Skipped = true
		tr.SkipReason = "excluded by " + reason
		return tr, nil
	}

	tracker, _ := inst.(TestTracker)
	if tracker != nil {
		method := test.Method
		tracker.SetCurrentTestMethod(&method)
		tracker.TakePostponedFailures()
	}
	if r.config.ResetRetries {
		sess.Retry.Reset()
	}

	var stop error
	for _, kind := range []hooks.Kind{hooks.BeforeMethod, hooks.Precondition} {
		kr, err := r.RunHooksForKind(ctx, sess, class, kind, inst, rc)
		if kr != nil {
			tr.Hooks = append(tr.Hooks, kr)
		}
		if err != nil {
			stop = err
			break
		}
	}

	if stop != nil {
		tr.Error = stop
	} else if test.Fn != nil {
		tr.Error = r.runBody(ctx, sess, inst, test)
	}

	kr, err := r.RunHooksForKind(ctx, sess, class, hooks.AfterMethod, inst, rc)
	if kr != nil {
		tr.Hooks = append(tr.Hooks, kr)
	}
	if err != nil {
		if tr.Error == nil {
			tr.Error = err
		}
		if stop == nil {
			stop = err
		}
	}

	if tracker != nil {
		tr.Failures = tracker.TakePostponedFailures()
		tracker.SetCurrentTestMethod(nil)
	}
	tr.Passed = tr.Error == nil && len(tr.Failures) == 0

	r.logger.Debug("test finished",
		zap.String("class", class.Name),
		zap.String("test", test.Method.Name),
		zap.Bool("passed", tr.Passed),
		zap.String("session", sess.ID),
	)
	return tr, stop
}

func (r *Runner) runBody(ctx context.Context, sess *Session, inst Instance, test *Test) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return test.Fn(environment.WithState(ctx, sess.Env), inst)
}

func (r *Runner) shouldRun(test *Test) bool {
	if r.config.NameFilter != "" {
		if !matchesPattern(test.Method.Name, r.config.NameFilter) {
			return false
		}
	}

	if len(r.config.GroupFilter) > 0 {
		if !hasAnyGroup(test.Method.Groups, r.config.GroupFilter) {
			return false
		}
	}

	return true
}

func (r *Runner) closeSession(ctx context.Context, sess *Session) {
	ctx, cancel := cleanupContext(ctx)
	defer cancel()
	if err := sess.Close(ctx); err != nil {
		r.logger.Warn("closing session", zap.String("session", sess.ID), zap.Error(err))
	}
}

func failAll(classes []*Class, err error) []*TestResult {
	var results []*TestResult
	for _, class := range classes {
		for _, test := range class.Tests {
			results = append(results, &TestResult{
				Class:  class.Name,
				Name:   test.Method.Name,
				Groups: test.Method.Groups,
				Error:  err,
			})
		}
	}
	return results
}

func hasFailure(results []*TestResult) bool {
	for _, tr := range results {
		if !tr.Passed && !tr.Skipped {
			return true
		}
	}
	return false
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if len(pattern) > 1 && pattern[0] == '*' && pattern[len(pattern)-1] == '*' {
		return strings.Contains(name, pattern[1:len(pattern)-1])
	}

	if pattern[0] == '*' {
		return strings.HasSuffix(name, pattern[1:])
	}

	if pattern[len(pattern)-1] == '*' {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}

func hasAnyGroup(groups []string, filters []string) bool {
	for _, filter := range filters {
		for _, g := range groups {
			if g == filter {
				return true
			}
		}
	}
	return false
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/stats"
)

const (
	// DefaultConcurrency is the default number of classes run at once in
	// parallel mode
	DefaultConcurrency = 4

	// CleanupTimeout bounds quitting a driver once the run context is done
	CleanupTimeout = 30 * time.Second
)

// ErrKindMismatch is returned when a convenience runner is given a kind of
// the wrong scope.
var ErrKindMismatch = errors.New("hook kind does not match scope")

type Runner struct {
	config     *Config
	logger     *zap.Logger
	collector  *Collector
	dispatcher *Dispatcher
	stats      *stats.Recorder
	sessions   SessionFactory
}

type Config struct {
	Verbose     bool
	Bail        bool
	NameFilter  string
	GroupFilter []string
	Parallel    bool
	Concurrency int
	// ResetRetries zeroes the session retry counter before each test's hook
	// sequence. Off by default: the counter is shared by every hook a
	// session dispatches.
	ResetRetries bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used by the runner and its dispatcher.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStats sets the recorder hook outcomes are reported to.
func WithStats(rec *stats.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.stats = rec
		}
	}
}

// WithSessionFactory sets how RunSuite creates worker sessions.
func WithSessionFactory(f SessionFactory) Option {
	return func(r *Runner) {
		r.sessions = f
	}
}

func NewRunner(cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runner{
		config:    cfg,
		logger:    zap.NewNop(),
		collector: &Collector{},
		stats:     stats.NewRecorder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dispatcher = NewDispatcher(r.logger)
	if r.sessions == nil {
		r.sessions = localSessions
	}
	return r
}

// Stats returns the recorder hook outcomes are reported to.
func (r *Runner) Stats() *stats.Recorder {
	return r.stats
}

// KindResult holds the outcomes of the hooks of one kind.
type KindResult struct {
	Class      string
	Kind       hooks.Kind
	Outcomes   []Outcome
	Abandoned  bool
	SkipReason string
	Duration   time.Duration
}

// Count returns the number of outcomes with status s.
func (k *KindResult) Count(s Status) int {
	n := 0
	for _, o := range k.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed reports whether any hook ended in a recoverable or fatal failure.
func (k *KindResult) Failed() bool {
	return k.Count(StatusRecoverable) > 0 || k.Count(StatusFatal) > 0
}

// RunHooksForKind runs every hook of kind declared by class, in declaration
// order, on the given session. A fatal failure stops the remaining hooks and
// is returned as a *StopExecutionError together with the partial result.
func (r *Runner) RunHooksForKind(ctx context.Context, sess *Session, class *Class, kind hooks.Kind, inst Instance, rc RunnerContext) (*KindResult, error) {
	start := time.Now()

	ic, err := r.collector.Collect(class, kind, inst, rc, sess.Env.Descriptor())
	if err != nil {
		return nil, fmt.Errorf("collecting %s hooks: %w", kind, err)
	}

	result := &KindResult{Class: ic.Class.Name, Kind: kind}
	defer func() { result.Duration = time.Since(start) }()

	if ic.Abandoned {
		result.Abandoned = true
		result.SkipReason = ic.SkipReason
		r.logger.Debug("hooks abandoned",
			zap.String("class", ic.Class.Name),
			zap.String("kind", kind.String()),
			zap.String("group", ic.SkipReason),
		)
		return result, nil
	}

	for _, h := range ic.Hooks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out := r.dispatcher.Invoke(ctx, sess, ic, h)
		result.Outcomes = append(result.Outcomes, out)
		r.stats.Record(kind.String(), out.Status.String(), out.Attempts, out.Duration)

		if out.Status == StatusFatal {
			return result, &StopExecutionError{Record: *out.LastFailure()}
		}
	}

	return result, nil
}

// RunSuiteHooks runs before-suite or after-suite hooks.
func (r *Runner) RunSuiteHooks(ctx context.Context, sess *Session, kind hooks.Kind, rc RunnerContext) (*KindResult, error) {
	if kind != hooks.BeforeSuite && kind != hooks.AfterSuite {
		return nil, fmt.Errorf("%w: %s is not a suite kind", ErrKindMismatch, kind)
	}
	return r.RunHooksForKind(ctx, sess, nil, kind, nil, rc)
}

// RunGroupHooks runs before-group or after-group hooks.
func (r *Runner) RunGroupHooks(ctx context.Context, sess *Session, kind hooks.Kind, rc RunnerContext) (*KindResult, error) {
	if kind != hooks.BeforeGroup && kind != hooks.AfterGroup {
		return nil, fmt.Errorf("%w: %s is not a group kind", ErrKindMismatch, kind)
	}
	return r.RunHooksForKind(ctx, sess, nil, kind, nil, rc)
}

// RunInstanceHooks runs class, method, precondition or firefox-only hooks
// bound to inst.
func (r *Runner) RunInstanceHooks(ctx context.Context, sess *Session, class *Class, kind hooks.Kind, inst Instance, rc RunnerContext) (*KindResult, error) {
	if kind.IsGroupLevel() {
		return nil, fmt.Errorf("%w: %s is not an instance kind", ErrKindMismatch, kind)
	}
	return r.RunHooksForKind(ctx, sess, class, kind, inst, rc)
}

// cleanupContext keeps the values of ctx but not its cancellation, so
// drivers are still quit after an interrupt.
func cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), CleanupTimeout)
}

func localSessions(context.Context) (*Session, error) {
	return NewSession(environment.NewHolder(nil, "", "", nil)), nil
}

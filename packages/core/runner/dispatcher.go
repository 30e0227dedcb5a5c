package runner

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/core/retry"
	"github.com/abdul-hamid-achik/hookspec/packages/core/skip"
	"github.com/abdul-hamid-achik/hookspec/packages/core/substitution"
)

// Dispatcher invokes one hook under the skip policy, driver substitution
// and the retry policy.
type Dispatcher struct {
	guard  *substitution.Guard
	retry  *retry.Controller
	logger *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger disables logging.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		guard:  substitution.NewGuard(logger),
		retry:  retry.NewController(logger),
		logger: logger,
	}
}

// Invoke dispatches h until it succeeds or is skipped, or until the retry
// policy or a done ctx stops it. Every failed attempt is reported to the
// receiver of ic.
func (d *Dispatcher) Invoke(ctx context.Context, sess *Session, ic *InvocationContext, h *hooks.Hook) (out Outcome) {
	start := time.Now()
	out = Outcome{Hook: h.QualifiedName(), Kind: ic.Kind}
	defer func() { out.Duration = time.Since(start) }()

	for {
		if reason, skipped := skip.Reason(h.Groups, sess.Env.Descriptor()); skipped {
			d.logger.Debug("hook skipped",
				zap.String("hook", out.Hook),
				zap.String("kind", ic.Kind.String()),
				zap.String("group", reason),
			)
			out.Status = StatusSkipped
			out.SkipReason = reason
			return out
		}

		if cerr := ctx.Err(); cerr != nil {
			out.Failures = append(out.Failures, d.interrupted(sess, ic, h, cerr))
			out.Status = StatusFatal
			return out
		}

		out.Attempts++
		substituted, err := d.attempt(ctx, sess, h)
		out.Substituted = out.Substituted || substituted
		if err == nil {
			out.Status = StatusSucceeded
			return out
		}

		record := d.report(ctx, sess, ic, h, out.Attempts, err)

		switch d.retry.OnFailure(h, sess.Retry) {
		case retry.RetryNow:
			out.Failures = append(out.Failures, record)
			continue
		case retry.GiveUp:
			out.Failures = append(out.Failures, record)
			out.Status = StatusRecoverable
			return out
		default:
			record.Fatal = true
			out.Failures = append(out.Failures, record)
			out.Status = StatusFatal
			return out
		}
	}
}

// attempt runs h once inside a substitution window. Panics are returned as
// *PanicError; the window is closed on every path.
func (d *Dispatcher) attempt(ctx context.Context, sess *Session, h *hooks.Hook) (substituted bool, err error) {
	win, err := d.guard.Acquire(ctx, sess.Env, h)
	defer func() {
		cctx, cancel := cleanupContext(ctx)
		defer cancel()
		if cerr := win.Close(cctx); cerr != nil {
			d.logger.Warn("restoring driver", zap.String("hook", h.QualifiedName()), zap.Error(cerr))
		}
	}()
	substituted = win.Substituted()
	if err != nil {
		return substituted, err
	}

	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()

	err = h.Fn(environment.WithState(ctx, sess.Env))
	return substituted, err
}

// report captures diagnostics and records the failure on the receiver.
func (d *Dispatcher) report(ctx context.Context, sess *Session, ic *InvocationContext, h *hooks.Hook, attempt int, err error) FailureRecord {
	msg := FormatFailure(h.Name, err)

	if recv := ic.Receiver; recv != nil {
		recv.CaptureDiagnostic(ctx, msg, h.Name)
		if ic.GroupLevel {
			recv.RecordGroupFailure(msg, ic.Runner)
		} else {
			recv.RecordTestFailure(msg)
		}
	}

	d.logger.Error("hook failed",
		zap.String("hook", h.QualifiedName()),
		zap.String("kind", ic.Kind.String()),
		zap.Int("attempt", attempt),
		zap.String("session", sess.ID),
		zap.Error(err),
	)

	return FailureRecord{Hook: h.QualifiedName(), Message: msg, Err: fmt.Errorf("%s: %w", h.QualifiedName(), err)}
}

// interrupted records that the run context ended before h could be
// attempted again. Nothing is reported to the receiver.
func (d *Dispatcher) interrupted(sess *Session, ic *InvocationContext, h *hooks.Hook, err error) FailureRecord {
	d.logger.Warn("hook interrupted",
		zap.String("hook", h.QualifiedName()),
		zap.String("kind", ic.Kind.String()),
		zap.String("session", sess.ID),
		zap.Error(err),
	)
	return FailureRecord{
		Hook:    h.QualifiedName(),
		Message: FormatFailure(h.Name, err),
		Fatal:   true,
		Err:     fmt.Errorf("%s: %w", h.QualifiedName(), err),
	}
}

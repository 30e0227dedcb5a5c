package plan

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/env"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

// BindOptions controls how a plan is turned into runner classes.
type BindOptions struct {
	// Environment selects one of the plan environments.
	Environment string
	// Vars override plan and environment variables.
	Vars map[string]string
	// DotEnv loads .env files from the plan directory.
	DotEnv bool
	Logger *zap.Logger
	Client *http.Client
}

// Bind creates a runner suite from p. Commands and URLs are interpolated
// once, at bind time.
func Bind(p *Plan, opts BindOptions) (*runner.Suite, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver, err := newResolver(p, opts, logger)
	if err != nil {
		return nil, err
	}

	classes := make([]*runner.Class, 0, len(p.Classes))
	for _, cs := range p.Classes {
		registry := hooks.NewRegistry()
		for _, hs := range cs.Hooks {
			h := &hooks.Hook{
				Name:   hs.Name,
				Class:  cs.Name,
				Kinds:  hs.Kinds,
				Groups: hs.Groups,
				Fn:     bindHookFunc(hs, p.Dir(), resolver, opts.Client, logger),
			}
			if hs.Retry != nil {
				h.Retry = &hooks.RetryPolicy{MaxRetries: *hs.Retry}
			}
			if err := registry.Register(h); err != nil {
				return nil, fmt.Errorf("class %s: hook %s: %w", cs.Name, hs.Name, err)
			}
		}

		class := &runner.Class{
			Name:  cs.Name,
			Hooks: runner.StaticHooks(registry),
		}
		for _, ts := range cs.Tests {
			class.Tests = append(class.Tests, &runner.Test{
				Method: hooks.Method{Name: ts.Name, Groups: ts.Groups},
				Fn:     bindTestFunc(ts, p.Dir(), resolver, logger),
			})
		}
		classes = append(classes, class)
	}

	return runner.NewSuite(p.Suite, classes...), nil
}

func newResolver(p *Plan, opts BindOptions, logger *zap.Logger) (*env.Resolver, error) {
	selected, err := env.Select(opts.Environment, p.Environments)
	if err != nil {
		return nil, err
	}

	var dotenv map[string]string
	if opts.DotEnv && p.Dir() != "" {
		dotenv, err = env.LoadDotEnvFiles(p.Dir())
		if err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	resolver := env.NewResolver()
	resolver.SetVariables(env.MergeVariables(p.Variables, selected.Variables, dotenv, opts.Vars))
	resolver.SetWarnFunc(func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...), zap.String("plan", p.Path))
	})
	return resolver, nil
}

func bindHookFunc(hs HookSpec, dir string, resolver *env.Resolver, client *http.Client, logger *zap.Logger) hooks.Func {
	if hs.WaitFor != nil {
		w := &runner.WaitFor{
			URL:      resolver.Resolve(hs.WaitFor.URL),
			Status:   hs.WaitFor.Status,
			Timeout:  hs.WaitFor.Timeout,
			Interval: hs.WaitFor.Interval,
			Client:   client,
			Logger:   logger,
		}
		return w.Run
	}

	cmd := &runner.ShellCommand{
		Command: resolver.Resolve(hs.Run),
		Dir:     dir,
		Vars:    resolver.Variables(),
		Logger:  logger,
	}
	return cmd.Run
}

func bindTestFunc(ts TestSpec, dir string, resolver *env.Resolver, logger *zap.Logger) func(context.Context, runner.Instance) error {
	if ts.Run == "" {
		return nil
	}
	cmd := &runner.ShellCommand{
		Command: resolver.Resolve(ts.Run),
		Dir:     dir,
		Vars:    resolver.Variables(),
		Logger:  logger,
	}
	return func(ctx context.Context, _ runner.Instance) error {
		return cmd.Run(ctx)
	}
}

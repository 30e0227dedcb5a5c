package runner

import (
	"context"
	"sync"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=instance.go -destination=mock_instance.gen.go -package=runner

// Instance is a test object hooks are bound to.
type Instance interface {
	// CurrentTestMethod returns the test method being run, or nil outside
	// of a test method.
	CurrentTestMethod() *hooks.Method
	// CaptureDiagnostic asks the test object to save diagnostics such as a
	// screenshot for a failure in methodName.
	CaptureDiagnostic(ctx context.Context, message, methodName string)
	// RecordGroupFailure records a non-fatal failure of a suite or group
	// level hook.
	RecordGroupFailure(message string, rc RunnerContext)
	// RecordTestFailure records a non-fatal failure that fails the current
	// test once it finishes.
	RecordTestFailure(message string)
}

// TestTracker is implemented by instances that let the lifecycle set the
// current test method and collect postponed failures.
type TestTracker interface {
	SetCurrentTestMethod(m *hooks.Method)
	TakePostponedFailures() []string
}

// RunnerContext exposes the classes declared for a run.
type RunnerContext interface {
	Name() string
	Classes() []*Class
}

// Class is a declared test class.
type Class struct {
	Name  string
	Tests []*Test
	// New creates a receiver instance. Nil means a BaseInstance is used.
	New func() Instance
	// Hooks declares the hooks of the class bound to inst.
	Hooks func(inst Instance) *hooks.Registry
}

func (c *Class) newInstance() Instance {
	if c.New == nil {
		return &BaseInstance{}
	}
	return c.New()
}

func (c *Class) registry(inst Instance) *hooks.Registry {
	if c.Hooks == nil {
		return nil
	}
	return c.Hooks(inst)
}

// StaticHooks returns a Class.Hooks function that ignores the instance.
func StaticHooks(r *hooks.Registry) func(Instance) *hooks.Registry {
	return func(Instance) *hooks.Registry { return r }
}

// Test is a test method of a class.
type Test struct {
	Method hooks.Method
	Fn     func(ctx context.Context, inst Instance) error
}

// DiagnosticFunc receives diagnostic capture requests.
type DiagnosticFunc func(ctx context.Context, message, methodName string)

// BaseInstance is an Instance that keeps postponed failures in memory.
// Embed it in test objects that need their own state.
type BaseInstance struct {
	OnDiagnostic DiagnosticFunc

	mu        sync.Mutex
	method    *hooks.Method
	postponed []string
	group     []string
}

func (b *BaseInstance) CurrentTestMethod() *hooks.Method {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.method
}

func (b *BaseInstance) SetCurrentTestMethod(m *hooks.Method) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.method = m
}

func (b *BaseInstance) CaptureDiagnostic(ctx context.Context, message, methodName string) {
	if b.OnDiagnostic != nil {
		b.OnDiagnostic(ctx, message, methodName)
	}
}

// RecordGroupFailure forwards to rc when it collects group failures and
// keeps the message otherwise.
func (b *BaseInstance) RecordGroupFailure(message string, rc RunnerContext) {
	if collector, ok := rc.(interface{ AddGroupFailure(string) }); ok {
		collector.AddGroupFailure(message)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.group = append(b.group, message)
}

func (b *BaseInstance) RecordTestFailure(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.postponed = append(b.postponed, message)
}

// TakePostponedFailures returns and clears the postponed test failures.
func (b *BaseInstance) TakePostponedFailures() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	failures := b.postponed
	b.postponed = nil
	return failures
}

// GroupFailures returns group failures that had no runner context to go to.
func (b *BaseInstance) GroupFailures() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.group...)
}

// Suite is a RunnerContext holding an ordered list of classes.
type Suite struct {
	name    string
	classes []*Class

	mu            sync.Mutex
	groupFailures []string
}

// NewSuite creates a Suite.
func NewSuite(name string, classes ...*Class) *Suite {
	return &Suite{name: name, classes: classes}
}

func (s *Suite) Name() string      { return s.name }
func (s *Suite) Classes() []*Class { return s.classes }

// AddGroupFailure records a postponed suite or group failure.
func (s *Suite) AddGroupFailure(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupFailures = append(s.groupFailures, message)
}

// GroupFailures returns the recorded suite and group failures.
func (s *Suite) GroupFailures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.groupFailures...)
}

// TakeGroupFailures returns and clears the recorded failures.
func (s *Suite) TakeGroupFailures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	failures := s.groupFailures
	s.groupFailures = nil
	return failures
}

package runner

import (
	"errors"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/core/skip"
)

var (
	ErrNoClasses = errors.New("runner context declares no classes")
	ErrNoClass   = errors.New("no class given for instance-level hooks")
)

// InvocationContext binds the hooks of one kind to their class, receiver
// and runner context.
type InvocationContext struct {
	Class *Class
	// Instance is nil for suite and group level dispatch.
	Instance   Instance
	Kind       hooks.Kind
	Runner     RunnerContext
	GroupLevel bool
	// Receiver is the instance failures are recorded on. For group level
	// dispatch it is a fresh instance of Class.
	Receiver Instance
	Hooks    []*hooks.Hook
	// Abandoned is set when the receiver's current test method is excluded
	// from the environment; no hook may run.
	Abandoned  bool
	SkipReason string
}

// Collector builds invocation contexts.
type Collector struct{}

// Collect resolves the hooks of kind for class and inst. For suite and group
// kinds the class is the first class of rc and inst is ignored.
func (c *Collector) Collect(class *Class, kind hooks.Kind, inst Instance, rc RunnerContext, d environment.Descriptor) (*InvocationContext, error) {
	ic := &InvocationContext{
		Kind:       kind,
		Runner:     rc,
		GroupLevel: kind.IsGroupLevel(),
	}

	if ic.GroupLevel {
		if rc == nil || len(rc.Classes()) == 0 {
			return nil, ErrNoClasses
		}
		ic.Class = rc.Classes()[0]
		ic.Receiver = ic.Class.newInstance()
	} else {
		if class == nil {
			return nil, ErrNoClass
		}
		ic.Class = class
		ic.Instance = inst
		ic.Receiver = inst
	}

	if ic.Receiver != nil {
		if m := ic.Receiver.CurrentTestMethod(); m != nil {
			if reason, skipped := skip.Reason(m.Groups, d); skipped {
				ic.Abandoned = true
				ic.SkipReason = reason
				return ic, nil
			}
		}
	}

	ic.Hooks = ic.Class.registry(ic.Receiver).ForKind(kind)
	return ic, nil
}

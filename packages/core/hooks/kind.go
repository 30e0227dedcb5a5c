package hooks

import (
	"fmt"
	"strings"
)

// Kind identifies the lifecycle phase a hook is declared for.
type Kind int

const (
	BeforeSuite Kind = iota + 1
	AfterSuite
	BeforeGroup
	AfterGroup
	BeforeClass
	AfterClass
	BeforeMethod
	AfterMethod
	Precondition
	// FirefoxOnly marks a hook that must run on a firefox-family driver.
	// It is declared alongside a phase kind.
	FirefoxOnly
)

var kindNames = map[Kind]string{
	BeforeSuite:  "before-suite",
	AfterSuite:   "after-suite",
	BeforeGroup:  "before-group",
	AfterGroup:   "after-group",
	BeforeClass:  "before-class",
	AfterClass:   "after-class",
	BeforeMethod: "before-method",
	AfterMethod:  "after-method",
	Precondition: "precondition",
	FirefoxOnly:  "firefox-only",
}

// AllKinds returns every kind in lifecycle order.
func AllKinds() []Kind {
	return []Kind{
		BeforeSuite, BeforeGroup, BeforeClass, BeforeMethod, Precondition,
		AfterMethod, AfterClass, AfterGroup, AfterSuite, FirefoxOnly,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name such as "before-method" into a Kind.
// Underscores and case are ignored.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown hook kind %q", s)
}

// IsAfter reports whether k is a teardown phase.
func (k Kind) IsAfter() bool {
	switch k {
	case AfterMethod, AfterClass, AfterGroup, AfterSuite:
		return true
	}
	return false
}

// IsGroupLevel reports whether k runs outside of a test instance.
func (k Kind) IsGroupLevel() bool {
	switch k {
	case BeforeSuite, AfterSuite, BeforeGroup, AfterGroup:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

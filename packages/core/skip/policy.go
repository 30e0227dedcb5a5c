// Package skip decides whether a hook or test is excluded from the current
// platform or driver by its declared groups.
package skip

import (
	"strings"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

// Exclusion groups
const (
	NoAndroid = "no-android"
	NoIOS     = "no-ios"
	NoWindows = "no-windows"
	NoMac     = "no-mac"
	NoChrome  = "no-chrome"
	NoSafari  = "no-safari"
	NoIE      = "no-ie"
	NoFirefox = "no-ff"
)

type rule struct {
	group   string
	applies func(d environment.Descriptor) bool
}

func platformIs(name string) func(environment.Descriptor) bool {
	return func(d environment.Descriptor) bool { return d.PlatformName == name }
}

func driverIs(name string) func(environment.Descriptor) bool {
	return func(d environment.Descriptor) bool { return d.DriverName == name }
}

// "ie" is matched by containment so versioned names like "ie11" count.
func driverContains(name string) func(environment.Descriptor) bool {
	return func(d environment.Descriptor) bool { return strings.Contains(d.DriverName, name) }
}

var rules = []rule{
	{NoAndroid, platformIs(environment.Android)},
	{NoIOS, platformIs(environment.IOS)},
	{NoWindows, platformIs(environment.Windows)},
	{NoMac, platformIs(environment.Mac)},
	{NoChrome, driverIs(environment.Chrome)},
	{NoSafari, driverIs(environment.Safari)},
	{NoIE, driverContains(environment.IE)},
	{NoFirefox, driverIs(environment.Firefox)},
}

// Groups returns every exclusion group the policy knows about.
func Groups() []string {
	groups := make([]string, len(rules))
	for i, r := range rules {
		groups[i] = r.group
	}
	return groups
}

// ShouldSkip reports whether any of groups excludes the environment d.
func ShouldSkip(groups []string, d environment.Descriptor) bool {
	_, skipped := Reason(groups, d)
	return skipped
}

// Reason returns the first exclusion group, in pairing-table order, that
// excludes d.
func Reason(groups []string, d environment.Descriptor) (string, bool) {
	if len(groups) == 0 {
		return "", false
	}
	for _, r := range rules {
		if r.applies(d) && hasGroup(groups, r.group) {
			return r.group, true
		}
	}
	return "", false
}

func hasGroup(groups []string, group string) bool {
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}
